// Package models holds the customer record, its enumerations and the segment
// types shared by the adapter, the input surfaces and batch processing.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Gender is the customer's gender as captured by the input form.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// Genders lists the gender options in feature-column order.
var Genders = []Gender{GenderFemale, GenderMale}

// PreferredCategory is the product category the customer buys most.
type PreferredCategory string

const (
	CategoryBudget      PreferredCategory = "Budget"
	CategoryElectronics PreferredCategory = "Electronics"
	CategoryFashion     PreferredCategory = "Fashion"
	CategoryLuxury      PreferredCategory = "Luxury"
)

// PreferredCategories lists the category options in feature-column order.
var PreferredCategories = []PreferredCategory{
	CategoryBudget,
	CategoryElectronics,
	CategoryFashion,
	CategoryLuxury,
}

// AgeGroup is the bucket an age falls into. It is always derived, never entered.
type AgeGroup string

const (
	AgeGroup18To25 AgeGroup = "18-25"
	AgeGroup26To35 AgeGroup = "26-35"
	AgeGroup36To50 AgeGroup = "36-50"
	AgeGroup51To65 AgeGroup = "51-65"
	AgeGroup65Plus AgeGroup = "65+"
)

// AgeGroups lists the buckets in feature-column order.
var AgeGroups = []AgeGroup{
	AgeGroup18To25,
	AgeGroup26To35,
	AgeGroup36To50,
	AgeGroup51To65,
	AgeGroup65Plus,
}

// Input ranges accepted by the input surfaces.
const (
	MinAge           = 18
	MaxAge           = 70
	MinAnnualIncome  = 10
	MaxAnnualIncome  = 137
	MinSpendingScore = 1
	MaxSpendingScore = 99
	MinSavings       = 2.0
	MaxSavings       = 125.0
	MinCreditScore   = 300
	MaxCreditScore   = 850
	MinLoyaltyYears  = 0
	MaxLoyaltyYears  = 10
)

// AgeGroupFor buckets an age. Anything outside the first four closed ranges,
// including ages below 18, lands in "65+".
func AgeGroupFor(age int) AgeGroup {
	switch {
	case age >= 18 && age <= 25:
		return AgeGroup18To25
	case age >= 26 && age <= 35:
		return AgeGroup26To35
	case age >= 36 && age <= 50:
		return AgeGroup36To50
	case age >= 51 && age <= 65:
		return AgeGroup51To65
	default:
		return AgeGroup65Plus
	}
}

// Customer is a single customer's attributes. Income and savings are in
// thousands of dollars.
type Customer struct {
	Age               int               `json:"age" yaml:"age" validate:"gte=18,lte=70"`
	AnnualIncome      int               `json:"annual_income" yaml:"annual_income" validate:"gte=10,lte=137"`
	SpendingScore     int               `json:"spending_score" yaml:"spending_score" validate:"gte=1,lte=99"`
	EstimatedSavings  decimal.Decimal   `json:"estimated_savings" yaml:"estimated_savings" validate:"gte=2,lte=125,half_step"`
	CreditScore       int               `json:"credit_score" yaml:"credit_score" validate:"gte=300,lte=850"`
	LoyaltyYears      int               `json:"loyalty_years" yaml:"loyalty_years" validate:"gte=0,lte=10"`
	Gender            Gender            `json:"gender" yaml:"gender" validate:"required,oneof=Female Male"`
	PreferredCategory PreferredCategory `json:"preferred_category" yaml:"preferred_category" validate:"required,oneof=Budget Electronics Fashion Luxury"`
}

// AgeGroup returns the customer's derived age bucket.
func (c Customer) AgeGroup() AgeGroup {
	return AgeGroupFor(c.Age)
}

// DefaultCustomer returns the values the dashboard form starts with.
func DefaultCustomer() Customer {
	return Customer{
		Age:               30,
		AnnualIncome:      50,
		SpendingScore:     50,
		EstimatedSavings:  decimal.NewFromFloat(25.0),
		CreditScore:       600,
		LoyaltyYears:      3,
		Gender:            GenderFemale,
		PreferredCategory: CategoryBudget,
	}
}

// Valid reports whether g is one of Genders.
func (g Gender) Valid() bool {
	for _, o := range Genders {
		if g == o {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of PreferredCategories.
func (p PreferredCategory) Valid() bool {
	for _, o := range PreferredCategories {
		if p == o {
			return true
		}
	}
	return false
}

// ParseGender matches s case-insensitively against Genders.
func ParseGender(s string) (Gender, error) {
	for _, o := range Genders {
		if strings.EqualFold(strings.TrimSpace(s), string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown gender %q (expected one of %v)", s, Genders)
}

// ParsePreferredCategory matches s case-insensitively against PreferredCategories.
func ParsePreferredCategory(s string) (PreferredCategory, error) {
	for _, o := range PreferredCategories {
		if strings.EqualFold(strings.TrimSpace(s), string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown preferred category %q (expected one of %v)", s, PreferredCategories)
}
