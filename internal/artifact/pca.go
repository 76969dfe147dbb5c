package artifact

import "fmt"

// PCA is a fitted linear projection: (x - mean) . components^T.
type PCA struct {
	Mean       []float64   `yaml:"mean"`
	Components [][]float64 `yaml:"components"`
}

// NumComponents returns the output dimension.
func (p *PCA) NumComponents() int {
	return len(p.Components)
}

// Transform projects one full feature row.
func (p *PCA) Transform(row []float64) ([]float64, error) {
	if len(row) != len(p.Mean) {
		return nil, fmt.Errorf("pca expects %d values, got %d", len(p.Mean), len(row))
	}
	out := make([]float64, len(p.Components))
	for k, comp := range p.Components {
		var acc float64
		for i, x := range row {
			acc += (x - p.Mean[i]) * comp[i]
		}
		out[k] = acc
	}
	return out, nil
}

func (p *PCA) validate(width int) error {
	if len(p.Mean) != width {
		return fmt.Errorf("mean has %d values, want %d", len(p.Mean), width)
	}
	if len(p.Components) == 0 {
		return fmt.Errorf("no components")
	}
	if err := checkFinite("mean", p.Mean); err != nil {
		return err
	}
	for k, comp := range p.Components {
		if len(comp) != width {
			return fmt.Errorf("component %d has %d values, want %d", k, len(comp), width)
		}
		if err := checkFinite(fmt.Sprintf("components[%d]", k), comp); err != nil {
			return err
		}
	}
	return nil
}
