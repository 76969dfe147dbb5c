package segmenter

import (
	"context"

	"fjacquet/customer-grouper/internal/models"
)

// InsightClient produces a short free-text marketing note for a customer that
// has already been assigned to seg. It never replaces the segment description.
type InsightClient interface {
	Insight(ctx context.Context, c models.Customer, seg models.Segment) (string, error)
}
