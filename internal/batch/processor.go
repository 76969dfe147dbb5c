// Package batch assigns every customer in a CSV file to a segment and
// summarises the result.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fjacquet/customer-grouper/internal/common"
	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/segerror"
	"fjacquet/customer-grouper/internal/validation"
)

// Assigner places a single customer into a segment.
type Assigner interface {
	Assign(ctx context.Context, c models.Customer) (models.Assignment, error)
}

// SegmentCount is the number of customers assigned to one segment.
type SegmentCount struct {
	ClusterID int    `json:"cluster_id" yaml:"cluster_id"`
	Label     string `json:"label" yaml:"label"`
	Count     int    `json:"count" yaml:"count"`
}

// RowError describes an input row that was skipped.
type RowError struct {
	Row        int    `json:"row" yaml:"row"`
	CustomerID string `json:"customer_id" yaml:"customer_id"`
	Reason     string `json:"reason" yaml:"reason"`
}

// Summary describes one batch run.
type Summary struct {
	InputFile   string         `json:"input_file,omitempty" yaml:"input_file,omitempty"`
	OutputFile  string         `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Total       int            `json:"total" yaml:"total"`
	Assigned    int            `json:"assigned" yaml:"assigned"`
	Invalid     int            `json:"invalid" yaml:"invalid"`
	Segments    []SegmentCount `json:"segments" yaml:"segments"`
	InvalidRows []RowError     `json:"invalid_rows,omitempty" yaml:"invalid_rows,omitempty"`
}

// CountFor returns the number of customers assigned to clusterID.
func (s *Summary) CountFor(clusterID int) int {
	for _, sc := range s.Segments {
		if sc.ClusterID == clusterID {
			return sc.Count
		}
	}
	return 0
}

// Processor runs batch assignments.
type Processor struct {
	assigner Assigner
	logger   logging.Logger
	now      func() time.Time
}

// NewProcessor creates a Processor.
func NewProcessor(assigner Assigner, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Processor{
		assigner: assigner,
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessFile reads customers from inputFile, assigns them and writes one
// output row per valid customer to outputFile.
func (p *Processor) ProcessFile(ctx context.Context, inputFile, outputFile string) (*Summary, error) {
	rows, err := common.ReadCustomersFromCSV(inputFile, p.logger)
	if err != nil {
		return nil, err
	}

	out, summary, err := p.AssignRows(ctx, rows)
	if err != nil {
		return nil, err
	}
	summary.InputFile = inputFile
	summary.OutputFile = outputFile

	if err := common.WriteAssignmentsToCSV(out, outputFile, p.logger); err != nil {
		return nil, fmt.Errorf("error writing assignments: %w", err)
	}

	p.logger.Info("Batch assignment completed",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: summary.Assigned},
		logging.Field{Key: "invalid", Value: summary.Invalid})
	return summary, nil
}

// AssignRows assigns each row. Rows that fail conversion or validation are
// recorded in the summary and skipped. A cluster id missing from the catalog
// aborts the whole batch.
func (p *Processor) AssignRows(ctx context.Context, rows []common.CustomerRow) ([]common.AssignmentRow, *Summary, error) {
	summary := &Summary{GeneratedAt: p.now(), Total: len(rows)}
	out := make([]common.AssignmentRow, 0, len(rows))
	counts := make(map[int]*SegmentCount)

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		// header is line 1
		line := i + 2

		customer, err := row.ToCustomer()
		if err == nil {
			err = validation.ValidateStruct(customer)
		}
		if err != nil {
			p.skip(summary, line, row.CustomerID, err)
			continue
		}

		assignment, err := p.assigner.Assign(ctx, customer)
		if err != nil {
			if errors.Is(err, segerror.ErrUnknownCluster) {
				p.logger.WithError(err).Error("Segment metadata does not match the model")
				return nil, nil, fmt.Errorf("row %d (%s): %w", line, row.CustomerID, err)
			}
			p.skip(summary, line, row.CustomerID, err)
			continue
		}

		out = append(out, common.NewAssignmentRow(row.CustomerID, assignment))
		sc, ok := counts[assignment.ClusterID]
		if !ok {
			sc = &SegmentCount{ClusterID: assignment.ClusterID, Label: assignment.Label}
			counts[assignment.ClusterID] = sc
		}
		sc.Count++
		summary.Assigned++
	}

	for _, sc := range counts {
		summary.Segments = append(summary.Segments, *sc)
	}
	sort.Slice(summary.Segments, func(i, j int) bool {
		return summary.Segments[i].ClusterID < summary.Segments[j].ClusterID
	})
	return out, summary, nil
}

func (p *Processor) skip(summary *Summary, line int, customerID string, err error) {
	p.logger.Warn("Skipping invalid customer row",
		logging.Field{Key: logging.FieldRow, Value: line},
		logging.Field{Key: "customer_id", Value: customerID},
		logging.Field{Key: logging.FieldError, Value: err.Error()})
	summary.Invalid++
	summary.InvalidRows = append(summary.InvalidRows, RowError{
		Row:        line,
		CustomerID: customerID,
		Reason:     err.Error(),
	})
}
