package validation

import (
	"errors"
	"testing"

	"fjacquet/customer-grouper/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_DefaultCustomerIsValid(t *testing.T) {
	assert.NoError(t, ValidateStruct(models.DefaultCustomer()))
}

func TestValidateStruct_Boundaries(t *testing.T) {
	c := models.DefaultCustomer()
	c.Age = models.MaxAge
	c.AnnualIncome = models.MinAnnualIncome
	c.SpendingScore = models.MaxSpendingScore
	c.EstimatedSavings = decimal.NewFromFloat(models.MaxSavings)
	c.CreditScore = models.MinCreditScore
	c.LoyaltyYears = models.MinLoyaltyYears
	assert.NoError(t, ValidateStruct(c))
}

func TestValidateStruct_OutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *models.Customer)
		field   string
		message string
	}{
		{"age too low", func(c *models.Customer) { c.Age = 17 }, "age", "age must be at least 18"},
		{"age too high", func(c *models.Customer) { c.Age = 71 }, "age", "age must be at most 70"},
		{"income", func(c *models.Customer) { c.AnnualIncome = 138 }, "annual_income", "annual_income must be at most 137"},
		{"spending", func(c *models.Customer) { c.SpendingScore = 0 }, "spending_score", "spending_score must be at least 1"},
		{"savings", func(c *models.Customer) { c.EstimatedSavings = decimal.RequireFromString("1.5") }, "estimated_savings", "estimated_savings must be at least 2"},
		{"savings off step", func(c *models.Customer) { c.EstimatedSavings = decimal.RequireFromString("25.3") }, "estimated_savings", "estimated_savings must be a multiple of 0.5"},
		{"credit", func(c *models.Customer) { c.CreditScore = 851 }, "credit_score", "credit_score must be at most 850"},
		{"loyalty", func(c *models.Customer) { c.LoyaltyYears = -1 }, "loyalty_years", "loyalty_years must be at least 0"},
		{"gender", func(c *models.Customer) { c.Gender = "Other" }, "gender", "gender must be one of [Female, Male]"},
		{"missing category", func(c *models.Customer) { c.PreferredCategory = "" }, "preferred_category", "preferred_category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.DefaultCustomer()
			tt.mutate(&c)

			err := ValidateStruct(c)
			require.Error(t, err)

			var rve *RequestValidationError
			require.True(t, errors.As(err, &rve))
			require.Len(t, rve.Fields, 1)
			assert.Equal(t, tt.field, rve.Fields[0].Field)
			assert.Equal(t, tt.message, rve.Fields[0].Message)
		})
	}
}

func TestValidateStruct_SavingsHalfSteps(t *testing.T) {
	for _, v := range []string{"2", "2.5", "25.0", "110.5", "124.50", "125"} {
		t.Run(v, func(t *testing.T) {
			c := models.DefaultCustomer()
			c.EstimatedSavings = decimal.RequireFromString(v)
			assert.NoError(t, ValidateStruct(c))
		})
	}
	for _, v := range []string{"2.1", "25.25", "99.99"} {
		t.Run(v, func(t *testing.T) {
			c := models.DefaultCustomer()
			c.EstimatedSavings = decimal.RequireFromString(v)
			err := ValidateStruct(c)
			require.Error(t, err)
			assert.Equal(t, "estimated_savings must be a multiple of 0.5", err.Error())
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	c := models.DefaultCustomer()
	c.Age = 5
	c.CreditScore = 10

	err := ValidateStruct(c)
	require.Error(t, err)
	assert.Equal(t, "age must be at least 18; credit_score must be at least 300", err.Error())
}

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
