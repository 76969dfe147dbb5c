// Package common provides CSV input and output shared by the batch command
// and anything else that reads customers from disk.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Delimiter is the field separator used for CSV output.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// CustomerRow maps one line of a customer CSV file. Column names follow the
// training data export. Cells stay strings so a malformed value fails only
// its own row in ToCustomer instead of the whole file.
type CustomerRow struct {
	CustomerID        string `csv:"Customer ID"`
	Age               string `csv:"Age"`
	AnnualIncome      string `csv:"Annual Income (k$)"`
	SpendingScore     string `csv:"Spending Score (1-100)"`
	EstimatedSavings  string `csv:"Estimated Savings (k$)"`
	CreditScore       string `csv:"Credit Score"`
	LoyaltyYears      string `csv:"Loyalty Years"`
	Gender            string `csv:"Gender"`
	PreferredCategory string `csv:"Preferred Category"`
}

// ToCustomer converts the row into a Customer. Range checks are left to the
// validation package; only empty cells and values that cannot be represented
// fail here.
func (r CustomerRow) ToCustomer() (models.Customer, error) {
	var (
		c   models.Customer
		err error
	)
	ints := []struct {
		column string
		value  string
		dst    *int
	}{
		{"Age", r.Age, &c.Age},
		{"Annual Income (k$)", r.AnnualIncome, &c.AnnualIncome},
		{"Spending Score (1-100)", r.SpendingScore, &c.SpendingScore},
		{"Credit Score", r.CreditScore, &c.CreditScore},
		{"Loyalty Years", r.LoyaltyYears, &c.LoyaltyYears},
	}
	for _, f := range ints {
		if *f.dst, err = parseIntCell(f.column, f.value); err != nil {
			return models.Customer{}, err
		}
	}

	raw := strings.TrimSpace(r.EstimatedSavings)
	if raw == "" {
		return models.Customer{}, fmt.Errorf("missing value for column %q", "Estimated Savings (k$)")
	}
	savings, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Customer{}, fmt.Errorf("invalid estimated savings %q: %w", r.EstimatedSavings, err)
	}
	gender, err := models.ParseGender(r.Gender)
	if err != nil {
		return models.Customer{}, err
	}
	category, err := models.ParsePreferredCategory(r.PreferredCategory)
	if err != nil {
		return models.Customer{}, err
	}

	c.EstimatedSavings = savings
	c.Gender = gender
	c.PreferredCategory = category
	return c, nil
}

func parseIntCell(column, value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, fmt.Errorf("missing value for column %q", column)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not a whole number", column, value)
	}
	return n, nil
}

// CustomerRowFrom is the inverse of ToCustomer.
func CustomerRowFrom(id string, c models.Customer) CustomerRow {
	return CustomerRow{
		CustomerID:        id,
		Age:               strconv.Itoa(c.Age),
		AnnualIncome:      strconv.Itoa(c.AnnualIncome),
		SpendingScore:     strconv.Itoa(c.SpendingScore),
		EstimatedSavings:  c.EstimatedSavings.StringFixed(1),
		CreditScore:       strconv.Itoa(c.CreditScore),
		LoyaltyYears:      strconv.Itoa(c.LoyaltyYears),
		Gender:            string(c.Gender),
		PreferredCategory: string(c.PreferredCategory),
	}
}

// AssignmentRow is one line of batch output.
type AssignmentRow struct {
	CustomerID  string `csv:"Customer ID"`
	AgeGroup    string `csv:"Age Group"`
	ClusterID   int    `csv:"Cluster"`
	Label       string `csv:"Segment"`
	Description string `csv:"Description"`
}

// NewAssignmentRow builds an output row for one assigned customer.
func NewAssignmentRow(customerID string, a models.Assignment) AssignmentRow {
	return AssignmentRow{
		CustomerID:  customerID,
		AgeGroup:    string(a.AgeGroup),
		ClusterID:   a.ClusterID,
		Label:       a.Label,
		Description: a.Description,
	}
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadCustomersFromCSV reads a customer file.
func ReadCustomersFromCSV(filePath string, logger logging.Logger) ([]CustomerRow, error) {
	return ReadCSVFile[CustomerRow](filePath, logger)
}

// WriteCSVFile writes rows to csvFile with the configured delimiter, creating
// the parent directory if needed.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, csvFile string, logger logging.Logger) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	logger.Info("Writing CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteAssignmentsToCSV writes batch output rows.
func WriteAssignmentsToCSV(rows []AssignmentRow, csvFile string, logger logging.Logger) error {
	return WriteCSVFile(rows, csvFile, logger)
}
