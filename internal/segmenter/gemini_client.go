package segmenter

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements InsightClient with the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient connects to Gemini with apiKey and the named model.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Insight asks Gemini for a two-sentence marketing suggestion.
func (g *GeminiClient) Insight(ctx context.Context, c models.Customer, seg models.Segment) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildInsightPrompt(c, seg)))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	insight := strings.TrimSpace(b.String())
	if insight == "" {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	g.logger.Debug("Gemini insight received",
		logging.Field{Key: logging.FieldClusterID, Value: seg.ID},
		logging.Field{Key: "chars", Value: len(insight)})
	return insight, nil
}

// Close releases the underlying client.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func buildInsightPrompt(c models.Customer, seg models.Segment) string {
	return fmt.Sprintf(`A retail customer was placed in the segment "%s".
Segment profile: %s

Customer:
Age: %d (%s)
Gender: %s
Annual income: %dk$
Spending score (1-100): %d
Estimated savings: %sk$
Credit score: %d
Loyalty years: %d
Preferred category: %s

In at most two sentences, suggest one concrete marketing action for this specific customer.
Respond with the suggestion only.`,
		seg.Label, seg.Description,
		c.Age, c.AgeGroup(), c.Gender, c.AnnualIncome, c.SpendingScore,
		c.EstimatedSavings.StringFixed(1), c.CreditScore, c.LoyaltyYears, c.PreferredCategory)
}
