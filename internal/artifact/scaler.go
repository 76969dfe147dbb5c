package artifact

import "fmt"

// Scaler standardises the numeric features: (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Transform scales one row. A zero scale (constant feature at training time)
// leaves the centred value unscaled.
func (s *Scaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d values, got %d", len(s.Mean), len(row))
	}
	out := make([]float64, len(row))
	for i, x := range row {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}
	return out, nil
}

func (s *Scaler) validate(n int) error {
	if len(s.Mean) != n {
		return fmt.Errorf("mean has %d values, want %d", len(s.Mean), n)
	}
	if len(s.Scale) != n {
		return fmt.Errorf("scale has %d values, want %d", len(s.Scale), n)
	}
	if err := checkFinite("mean", s.Mean); err != nil {
		return err
	}
	if err := checkFinite("scale", s.Scale); err != nil {
		return err
	}
	for i, x := range s.Scale {
		if x < 0 {
			return fmt.Errorf("scale[%d] is negative", i)
		}
	}
	return nil
}
