package features

import (
	"errors"
	"testing"

	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/segerror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioCustomer() models.Customer {
	return models.Customer{
		Age:               30,
		AnnualIncome:      50,
		SpendingScore:     50,
		EstimatedSavings:  decimal.RequireFromString("25.0"),
		CreditScore:       600,
		LoyaltyYears:      3,
		Gender:            models.GenderFemale,
		PreferredCategory: models.CategoryElectronics,
	}
}

func TestBuild_Scenario(t *testing.T) {
	v, err := Build(scenarioCustomer())
	require.NoError(t, err)

	expected := Vector{30, 50, 50, 25.0, 600, 3, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}
	assert.Equal(t, expected, v)
	assert.Len(t, v.Slice(), 17)
}

func TestBuild_Age66IsSixtyFivePlus(t *testing.T) {
	c := scenarioCustomer()
	c.Age = 66
	v, err := Build(c)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0, 0, 1}, v.Categorical()[6:])
}

func TestBuild_OneHotBlocksAreExclusive(t *testing.T) {
	for age := models.MinAge; age <= models.MaxAge; age++ {
		for _, g := range models.Genders {
			for _, p := range models.PreferredCategories {
				c := scenarioCustomer()
				c.Age, c.Gender, c.PreferredCategory = age, g, p

				v, err := Build(c)
				require.NoError(t, err)

				cat := v.Categorical()
				assert.Equal(t, 1.0, sum(cat[0:2]), "gender block age=%d", age)
				assert.Equal(t, 1.0, sum(cat[2:6]), "category block age=%d", age)
				assert.Equal(t, 1.0, sum(cat[6:11]), "age block age=%d", age)
				for _, x := range cat {
					assert.True(t, x == 0 || x == 1)
				}
			}
		}
	}
}

func TestBuild_RejectsUnknownCategories(t *testing.T) {
	c := scenarioCustomer()
	c.Gender = "Other"
	_, err := Build(c)
	var ice *segerror.InvalidCustomerError
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, "gender", ice.Field)

	c = scenarioCustomer()
	c.PreferredCategory = "Groceries"
	_, err = Build(c)
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, "preferred_category", ice.Field)
}

func TestColumns_MatchEnumOrder(t *testing.T) {
	for i, g := range models.Genders {
		assert.Equal(t, "Gender_"+string(g), Columns[genderOffset+i])
	}
	for i, p := range models.PreferredCategories {
		assert.Equal(t, "Preferred Category_"+string(p), Columns[categoryOffset+i])
	}
	for i, a := range models.AgeGroups {
		assert.Equal(t, "Age Group_"+string(a), Columns[ageGroupOffset+i])
	}
}

func TestSplitAndCombine(t *testing.T) {
	v, err := Build(scenarioCustomer())
	require.NoError(t, err)

	num, cat := v.Numeric(), v.Categorical()
	assert.Len(t, num, NumNumeric)
	assert.Len(t, cat, NumCategorical)

	back, err := Combine(num, cat)
	require.NoError(t, err)
	assert.Equal(t, v, back)

	_, err = Combine(num[:5], cat)
	assert.Error(t, err)
	_, err = Combine(num, cat[:10])
	assert.Error(t, err)
}

func TestNumeric_ReturnsCopy(t *testing.T) {
	v, err := Build(scenarioCustomer())
	require.NoError(t, err)

	num := v.Numeric()
	num[0] = 999
	assert.Equal(t, 30.0, v[0])
}

func TestCheckSchema(t *testing.T) {
	require.NoError(t, CheckSchema(Names(), NumericNames()))

	swapped := Names()
	swapped[6], swapped[7] = swapped[7], swapped[6]

	tests := []struct {
		name     string
		features []string
		numeric  []string
		reason   string
	}{
		{"too few columns", Names()[:16], NumericNames(), "16 feature columns"},
		{"reordered", swapped, NumericNames(), `column 6 is "Gender_Male"`},
		{"numeric count", Names(), NumericNames()[:5], "5 numeric columns"},
		{"numeric name", Names(), []string{"Age", "Annual Income (k$)", "Spending Score (1-100)", "Savings", "Credit Score", "Loyalty Years"}, `numeric column 3 is "Savings"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSchema(tt.features, tt.numeric)
			require.Error(t, err)
			assert.True(t, errors.Is(err, segerror.ErrUnexpectedFeatureSet))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
