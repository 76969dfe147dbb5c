package server

import (
	"embed"
	"html/template"
	"strconv"

	"fjacquet/customer-grouper/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type numberInput struct {
	Name  string
	Label string
	Min   string
	Max   string
	Step  string
}

var numberInputs = []numberInput{
	{"age", "Age", strconv.Itoa(models.MinAge), strconv.Itoa(models.MaxAge), "1"},
	{"annual_income", "Annual Income (k$)", strconv.Itoa(models.MinAnnualIncome), strconv.Itoa(models.MaxAnnualIncome), "1"},
	{"estimated_savings", "Estimated Savings (k$)", "2.0", "125.0", "0.5"},
	{"credit_score", "Credit Score", strconv.Itoa(models.MinCreditScore), strconv.Itoa(models.MaxCreditScore), "1"},
	{"spending_score", "Spending Score (1-100)", strconv.Itoa(models.MinSpendingScore), strconv.Itoa(models.MaxSpendingScore), "1"},
	{"loyalty_years", "Loyalty Years", strconv.Itoa(models.MinLoyaltyYears), strconv.Itoa(models.MaxLoyaltyYears), "1"},
}

type pageData struct {
	Title      string
	Inputs     []numberInput
	Genders    []models.Gender
	Categories []models.PreferredCategory
	Form       map[string]string
	Errors     []string
	Result     *models.Assignment
}

func newPageData(c models.Customer) pageData {
	return pageData{
		Title:      "Customer Grouper Dashboard",
		Inputs:     numberInputs,
		Genders:    models.Genders,
		Categories: models.PreferredCategories,
		Form: map[string]string{
			"age":                strconv.Itoa(c.Age),
			"annual_income":      strconv.Itoa(c.AnnualIncome),
			"estimated_savings":  c.EstimatedSavings.StringFixed(1),
			"credit_score":       strconv.Itoa(c.CreditScore),
			"spending_score":     strconv.Itoa(c.SpendingScore),
			"loyalty_years":      strconv.Itoa(c.LoyaltyYears),
			"gender":             string(c.Gender),
			"preferred_category": string(c.PreferredCategory),
		},
	}
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"str": func(v interface{}) string {
			switch t := v.(type) {
			case models.Gender:
				return string(t)
			case models.PreferredCategory:
				return string(t)
			default:
				return ""
			}
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
