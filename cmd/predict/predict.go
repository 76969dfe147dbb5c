// Package predict assigns a single customer to a segment
package predict

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/customer-grouper/cmd/common"
	"fjacquet/customer-grouper/cmd/root"
	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Options holds the predict command flags.
type Options struct {
	Age               int
	AnnualIncome      int
	SpendingScore     int
	EstimatedSavings  string
	CreditScore       int
	LoyaltyYears      int
	Gender            string
	PreferredCategory string
	Project           bool
	Format            string
}

// Segmenter is the part of the inference adapter predict needs.
type Segmenter interface {
	Assign(ctx context.Context, c models.Customer) (models.Assignment, error)
	Project(c models.Customer) ([]float64, error)
}

var opts = defaultOptions()

// Cmd represents the predict command
var Cmd = &cobra.Command{
	Use:   "predict",
	Short: "Assign one customer to a segment",
	Long: `Assign one customer to a segment and print the segment id, label and description.

Unset flags take the dashboard defaults.

Example:
  customer-grouper predict --age 30 --income 50 --spending 50 --savings 25.0 \
    --credit 600 --loyalty 3 --gender Female --category Electronics`,
	Run: predictFunc,
}

func init() {
	f := Cmd.Flags()
	f.IntVar(&opts.Age, "age", opts.Age, "Age (18-70)")
	f.IntVar(&opts.AnnualIncome, "income", opts.AnnualIncome, "Annual income in k$ (10-137)")
	f.IntVar(&opts.SpendingScore, "spending", opts.SpendingScore, "Spending score (1-99)")
	f.StringVar(&opts.EstimatedSavings, "savings", opts.EstimatedSavings, "Estimated savings in k$ (2.0-125.0)")
	f.IntVar(&opts.CreditScore, "credit", opts.CreditScore, "Credit score (300-850)")
	f.IntVar(&opts.LoyaltyYears, "loyalty", opts.LoyaltyYears, "Loyalty years (0-10)")
	f.StringVar(&opts.Gender, "gender", opts.Gender, "Gender (Female, Male)")
	f.StringVar(&opts.PreferredCategory, "category", opts.PreferredCategory, "Preferred category (Budget, Electronics, Fashion, Luxury)")
	f.BoolVar(&opts.Project, "project", false, "Also print the customer's PCA coordinates")
	f.StringVarP(&opts.Format, "format", "f", common.FormatText, "Output format (text, json, yaml)")
}

func defaultOptions() Options {
	d := models.DefaultCustomer()
	return Options{
		Age:               d.Age,
		AnnualIncome:      d.AnnualIncome,
		SpendingScore:     d.SpendingScore,
		EstimatedSavings:  d.EstimatedSavings.StringFixed(1),
		CreditScore:       d.CreditScore,
		LoyaltyYears:      d.LoyaltyYears,
		Gender:            string(d.Gender),
		PreferredCategory: string(d.PreferredCategory),
		Format:            common.FormatText,
	}
}

func predictFunc(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c := root.MustContainer(ctx)
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	if err := Run(ctx, c.GetSegmenter(), opts, os.Stdout); err != nil {
		root.Log.Fatalf("Prediction failed: %v", err)
	}
}

// Customer converts the flag values into a validated Customer.
func (o Options) Customer() (models.Customer, error) {
	savings, err := decimal.NewFromString(o.EstimatedSavings)
	if err != nil {
		return models.Customer{}, fmt.Errorf("invalid --savings %q: %w", o.EstimatedSavings, err)
	}
	gender, err := models.ParseGender(o.Gender)
	if err != nil {
		return models.Customer{}, err
	}
	category, err := models.ParsePreferredCategory(o.PreferredCategory)
	if err != nil {
		return models.Customer{}, err
	}

	customer := models.Customer{
		Age:               o.Age,
		AnnualIncome:      o.AnnualIncome,
		SpendingScore:     o.SpendingScore,
		EstimatedSavings:  savings,
		CreditScore:       o.CreditScore,
		LoyaltyYears:      o.LoyaltyYears,
		Gender:            gender,
		PreferredCategory: category,
	}
	if err := validation.ValidateStruct(customer); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// Run assigns the customer described by o and writes the result to w.
func Run(ctx context.Context, seg Segmenter, o Options, w io.Writer) error {
	customer, err := o.Customer()
	if err != nil {
		return err
	}

	assignment, err := seg.Assign(ctx, customer)
	if err != nil {
		return err
	}

	if o.Project {
		coords, err := seg.Project(customer)
		if err != nil {
			return fmt.Errorf("error projecting customer: %w", err)
		}
		assignment.Projection = coords
	}

	return common.WriteAssignment(w, assignment, o.Format)
}
