package server

import (
	"fjacquet/customer-grouper/internal/models"

	"github.com/shopspring/decimal"
)

// predictRequest is the JSON body of POST /api/v1/predict. Fields are
// pointers so an absent key fails "required" instead of decoding to zero.
type predictRequest struct {
	Age               *int                      `json:"age" validate:"required,gte=18,lte=70"`
	AnnualIncome      *int                      `json:"annual_income" validate:"required,gte=10,lte=137"`
	SpendingScore     *int                      `json:"spending_score" validate:"required,gte=1,lte=99"`
	EstimatedSavings  *decimal.Decimal          `json:"estimated_savings" validate:"required,gte=2,lte=125,half_step"`
	CreditScore       *int                      `json:"credit_score" validate:"required,gte=300,lte=850"`
	LoyaltyYears      *int                      `json:"loyalty_years" validate:"required,gte=0,lte=10"`
	Gender            *models.Gender            `json:"gender" validate:"required,oneof=Female Male"`
	PreferredCategory *models.PreferredCategory `json:"preferred_category" validate:"required,oneof=Budget Electronics Fashion Luxury"`
}

// customer dereferences the request. Call it only after validation.
func (r predictRequest) customer() models.Customer {
	return models.Customer{
		Age:               *r.Age,
		AnnualIncome:      *r.AnnualIncome,
		SpendingScore:     *r.SpendingScore,
		EstimatedSavings:  *r.EstimatedSavings,
		CreditScore:       *r.CreditScore,
		LoyaltyYears:      *r.LoyaltyYears,
		Gender:            *r.Gender,
		PreferredCategory: *r.PreferredCategory,
	}
}
