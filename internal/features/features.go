// Package features turns a customer record into the fixed 17-column vector the
// clustering model was trained on.
//
// Column order is fixed here at compile time and must match training exactly;
// a reordered vector still produces a cluster id, just the wrong one.
package features

import (
	"fmt"

	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/segerror"
)

const (
	NumNumeric     = 6
	NumCategorical = 11
	Width          = NumNumeric + NumCategorical
)

// Columns is the training-time column order.
var Columns = [Width]string{
	"Age",
	"Annual Income (k$)",
	"Spending Score (1-100)",
	"Estimated Savings (k$)",
	"Credit Score",
	"Loyalty Years",
	"Gender_Female",
	"Gender_Male",
	"Preferred Category_Budget",
	"Preferred Category_Electronics",
	"Preferred Category_Fashion",
	"Preferred Category_Luxury",
	"Age Group_18-25",
	"Age Group_26-35",
	"Age Group_36-50",
	"Age Group_51-65",
	"Age Group_65+",
}

// Offsets of the one-hot blocks inside the vector.
const (
	genderOffset   = NumNumeric
	categoryOffset = genderOffset + 2
	ageGroupOffset = categoryOffset + 4
)

// Names returns a copy of Columns as a slice.
func Names() []string {
	out := make([]string, Width)
	copy(out, Columns[:])
	return out
}

// NumericNames returns the names of the scaled numeric prefix.
func NumericNames() []string {
	out := make([]string, NumNumeric)
	copy(out, Columns[:NumNumeric])
	return out
}

// Vector is one customer in model column order.
type Vector [Width]float64

// Build assembles the unscaled vector for c: the six numeric fields verbatim,
// then one-hot blocks for gender, preferred category and age group.
func Build(c models.Customer) (Vector, error) {
	var v Vector

	gi := indexOf(models.Genders, c.Gender)
	if gi < 0 {
		return v, &segerror.InvalidCustomerError{Field: "gender", Value: string(c.Gender),
			Err: fmt.Errorf("expected one of %v", models.Genders)}
	}
	ci := indexOf(models.PreferredCategories, c.PreferredCategory)
	if ci < 0 {
		return v, &segerror.InvalidCustomerError{Field: "preferred_category", Value: string(c.PreferredCategory),
			Err: fmt.Errorf("expected one of %v", models.PreferredCategories)}
	}
	ai := indexOf(models.AgeGroups, c.AgeGroup())

	v[0] = float64(c.Age)
	v[1] = float64(c.AnnualIncome)
	v[2] = float64(c.SpendingScore)
	v[3] = c.EstimatedSavings.InexactFloat64()
	v[4] = float64(c.CreditScore)
	v[5] = float64(c.LoyaltyYears)

	v[genderOffset+gi] = 1
	v[categoryOffset+ci] = 1
	v[ageGroupOffset+ai] = 1

	return v, nil
}

// Numeric returns a copy of the numeric prefix.
func (v Vector) Numeric() []float64 {
	out := make([]float64, NumNumeric)
	copy(out, v[:NumNumeric])
	return out
}

// Categorical returns a copy of the one-hot suffix.
func (v Vector) Categorical() []float64 {
	out := make([]float64, NumCategorical)
	copy(out, v[NumNumeric:])
	return out
}

// Slice returns the vector as a fresh slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Width)
	copy(out, v[:])
	return out
}

// Combine joins a (scaled) numeric prefix with a categorical suffix, keeping
// slot order.
func Combine(numeric, categorical []float64) (Vector, error) {
	var v Vector
	if len(numeric) != NumNumeric {
		return v, fmt.Errorf("numeric part has %d values, want %d", len(numeric), NumNumeric)
	}
	if len(categorical) != NumCategorical {
		return v, fmt.Errorf("categorical part has %d values, want %d", len(categorical), NumCategorical)
	}
	copy(v[:NumNumeric], numeric)
	copy(v[NumNumeric:], categorical)
	return v, nil
}

// CheckSchema verifies a model's feature names and numeric column names match
// Columns exactly, names and order.
func CheckSchema(featureNames, numericNames []string) error {
	expected := Names()
	if len(featureNames) != Width {
		return &segerror.FeatureSetError{Expected: expected, Actual: featureNames,
			Reason: fmt.Sprintf("model has %d feature columns", len(featureNames))}
	}
	for i, name := range featureNames {
		if name != Columns[i] {
			return &segerror.FeatureSetError{Expected: expected, Actual: featureNames,
				Reason: fmt.Sprintf("column %d is %q, want %q", i, name, Columns[i])}
		}
	}

	if len(numericNames) != NumNumeric {
		return &segerror.FeatureSetError{Expected: expected, Actual: featureNames,
			Reason: fmt.Sprintf("model scales %d numeric columns, want %d", len(numericNames), NumNumeric)}
	}
	for i, name := range numericNames {
		if name != Columns[i] {
			return &segerror.FeatureSetError{Expected: expected, Actual: featureNames,
				Reason: fmt.Sprintf("numeric column %d is %q, want %q", i, name, Columns[i])}
		}
	}
	return nil
}

func indexOf[T comparable](options []T, value T) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return -1
}
