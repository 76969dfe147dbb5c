package models

import (
	"fmt"
	"sort"
	"strings"
)

// Segment is the static metadata attached to one cluster id.
type Segment struct {
	ID          int    `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Assignment is the result of placing one customer into a segment.
type Assignment struct {
	ClusterID   int       `json:"cluster_id" yaml:"cluster_id"`
	Label       string    `json:"label" yaml:"label"`
	Description string    `json:"description" yaml:"description"`
	AgeGroup    AgeGroup  `json:"age_group" yaml:"age_group"`
	Insight     string    `json:"insight,omitempty" yaml:"insight,omitempty"`
	Projection  []float64 `json:"projection,omitempty" yaml:"projection,omitempty"`
}

// Catalog is an immutable id -> Segment table.
type Catalog struct {
	byID map[int]Segment
	ids  []int
}

// NewCatalog builds a Catalog. Ids must be unique and non-negative, and every
// segment needs a label and a description.
func NewCatalog(segments []Segment) (*Catalog, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("segment catalog is empty")
	}

	c := &Catalog{byID: make(map[int]Segment, len(segments))}
	for _, s := range segments {
		if s.ID < 0 {
			return nil, fmt.Errorf("segment id %d is negative", s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate segment id %d", s.ID)
		}
		if strings.TrimSpace(s.Label) == "" {
			return nil, fmt.Errorf("segment %d has no label", s.ID)
		}
		if strings.TrimSpace(s.Description) == "" {
			return nil, fmt.Errorf("segment %d has no description", s.ID)
		}
		c.byID[s.ID] = s
		c.ids = append(c.ids, s.ID)
	}
	sort.Ints(c.ids)
	return c, nil
}

// Lookup returns the segment for id.
func (c *Catalog) Lookup(id int) (Segment, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Segments returns all segments ordered by id.
func (c *Catalog) Segments() []Segment {
	out := make([]Segment, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of segments.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Missing returns the ids in [0, n) that have no segment.
func (c *Catalog) Missing(n int) []int {
	var missing []int
	for id := 0; id < n; id++ {
		if _, ok := c.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
