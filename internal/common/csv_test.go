package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCustomersFromCSV(t *testing.T) {
	logger := logging.NewMockLogger()
	rows, err := ReadCustomersFromCSV("../../testdata/customers.csv", logger)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "C001", rows[0].CustomerID)
	assert.Equal(t, 30, rows[0].Age)
	assert.Equal(t, "25.0", rows[0].EstimatedSavings)
	assert.Equal(t, "Electronics", rows[0].PreferredCategory)

	assert.Equal(t, "C002", rows[1].CustomerID)
	assert.Equal(t, 66, rows[1].Age)

	assert.True(t, logger.HasEntry("INFO", "Successfully read CSV data"))
}

func TestReadCSVFile_NonExistent(t *testing.T) {
	_, err := ReadCSVFile[CustomerRow]("non-existent-file.csv", logging.NewMockLogger())
	assert.Error(t, err)
}

func TestCustomerRow_ToCustomer(t *testing.T) {
	row := CustomerRow{
		CustomerID:        "C001",
		Age:               "30",
		AnnualIncome:      "50",
		SpendingScore:     " 50",
		EstimatedSavings:  " 25.0 ",
		CreditScore:       "600",
		LoyaltyYears:      "0",
		Gender:            "female",
		PreferredCategory: "ELECTRONICS",
	}

	c, err := row.ToCustomer()
	require.NoError(t, err)
	assert.Equal(t, models.GenderFemale, c.Gender)
	assert.Equal(t, models.CategoryElectronics, c.PreferredCategory)
	assert.True(t, c.EstimatedSavings.Equal(decimal.NewFromFloat(25)))
	assert.Equal(t, 30, c.Age)
	assert.Equal(t, 50, c.SpendingScore)
	assert.Equal(t, 0, c.LoyaltyYears)
}

func TestCustomerRow_ToCustomerErrors(t *testing.T) {
	base := CustomerRow{
		Age:               "40",
		AnnualIncome:      "60",
		SpendingScore:     "40",
		EstimatedSavings:  "10",
		CreditScore:       "650",
		LoyaltyYears:      "2",
		Gender:            "Male",
		PreferredCategory: "Budget",
	}

	tests := []struct {
		name   string
		mutate func(r *CustomerRow)
		errMsg string
	}{
		{"savings", func(r *CustomerRow) { r.EstimatedSavings = "lots" }, "invalid estimated savings"},
		{"empty savings", func(r *CustomerRow) { r.EstimatedSavings = " " }, `missing value for column "Estimated Savings (k$)"`},
		{"age not a number", func(r *CustomerRow) { r.Age = "thirty" }, `invalid Age "thirty"`},
		{"fractional income", func(r *CustomerRow) { r.AnnualIncome = "50.5" }, "not a whole number"},
		{"empty loyalty", func(r *CustomerRow) { r.LoyaltyYears = "" }, `missing value for column "Loyalty Years"`},
		{"empty credit", func(r *CustomerRow) { r.CreditScore = "" }, `missing value for column "Credit Score"`},
		{"gender", func(r *CustomerRow) { r.Gender = "Other" }, "unknown gender"},
		{"category", func(r *CustomerRow) { r.PreferredCategory = "Groceries" }, "unknown preferred category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := base
			tt.mutate(&row)
			_, err := row.ToCustomer()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCustomerRowRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	in := models.DefaultCustomer()

	require.NoError(t, WriteCSVFile([]CustomerRow{CustomerRowFrom("X1", in)}, path, nil))

	rows, err := ReadCustomersFromCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	out, err := rows[0].ToCustomer()
	require.NoError(t, err)
	assert.Equal(t, in.Age, out.Age)
	assert.Equal(t, in.Gender, out.Gender)
	assert.True(t, in.EstimatedSavings.Equal(out.EstimatedSavings))
}

func TestWriteAssignmentsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "assignments.csv")
	rows := []AssignmentRow{
		NewAssignmentRow("C001", models.Assignment{
			ClusterID:   4,
			Label:       "Budget spenders",
			Description: "Careful, value-driven buyers.",
			AgeGroup:    models.AgeGroup26To35,
		}),
	}

	SetDelimiter(';')
	defer SetDelimiter(',')

	require.NoError(t, WriteAssignmentsToCSV(rows, path, logging.NewMockLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Customer ID;Age Group;Cluster;Segment;Description", lines[0])
	assert.Equal(t, "C001;26-35;4;Budget spenders;Careful, value-driven buyers.", lines[1])
}

func TestWriteCSVFile_Nil(t *testing.T) {
	var rows []AssignmentRow
	err := WriteCSVFile(rows, filepath.Join(t.TempDir(), "x.csv"), nil)
	assert.Error(t, err)
}
