package segment

import "fmt"

// LevelPolicy describes where in the contour forest a classification rule
// looks and how many shapes it needs.
type LevelPolicy struct {
	// Depth is the nesting level candidates are taken from.
	Depth int `mapstructure:"depth" json:"depth"`

	// TopK keeps only the K largest shapes at Depth. Zero keeps all.
	TopK int `mapstructure:"top_k" json:"top_k"`

	// MinCandidates is the fewest shapes the rule accepts. Anything below
	// two is raised to two, since every rule compares at least two shapes.
	MinCandidates int `mapstructure:"min_candidates" json:"min_candidates"`

	// Threshold is the binarization cutoff (1-255). Zero selects the cutoff
	// automatically from the image histogram.
	Threshold int `mapstructure:"threshold" json:"threshold"`
}

// Config holds every tunable of the segmentation rules.
type Config struct {
	// Top is the policy for the date/graph classification on the full image.
	Top LevelPolicy `mapstructure:"top" json:"top"`

	// Sub is the policy for the graph/label split on the graph crop. Depth
	// is relative to the cropped sub-image.
	Sub LevelPolicy `mapstructure:"sub" json:"sub"`

	// Invert treats dark pixels as foreground.
	Invert bool `mapstructure:"invert" json:"invert"`

	// Contrast is applied before binarization, in [-1, 1]. Zero disables it.
	Contrast float64 `mapstructure:"contrast" json:"contrast"`

	// ThreeWay labels the top-level graph region as graph-with-label, the
	// input to SplitGraphAndLabel.
	ThreeWay bool `mapstructure:"three_way" json:"three_way"`
}

// DefaultConfig returns the settings tuned for the standard chart capture
// layout: the three panels sit one level inside the page outline, and the
// plot and its label text sit two levels inside the graph crop.
func DefaultConfig() Config {
	return Config{
		Top: LevelPolicy{
			Depth:         1,
			TopK:          3,
			MinCandidates: 2,
			Threshold:     0,
		},
		Sub: LevelPolicy{
			Depth:         2,
			TopK:          0,
			MinCandidates: 2,
			Threshold:     200,
		},
		ThreeWay: true,
	}
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	for _, p := range []struct {
		name string
		lp   LevelPolicy
	}{{"top", c.Top}, {"sub", c.Sub}} {
		if p.lp.Depth < 0 {
			return fmt.Errorf("%s.depth must be >= 0, got %d", p.name, p.lp.Depth)
		}
		if p.lp.TopK < 0 {
			return fmt.Errorf("%s.top_k must be >= 0, got %d", p.name, p.lp.TopK)
		}
		if p.lp.TopK > 0 && p.lp.TopK < p.lp.minCandidates() {
			return fmt.Errorf("%s.top_k (%d) is below %s.min_candidates (%d)",
				p.name, p.lp.TopK, p.name, p.lp.minCandidates())
		}
		if p.lp.Threshold < 0 || p.lp.Threshold > 255 {
			return fmt.Errorf("%s.threshold must be in [0,255], got %d", p.name, p.lp.Threshold)
		}
	}
	if c.Contrast < -1 || c.Contrast > 1 {
		return fmt.Errorf("contrast must be in [-1,1], got %g", c.Contrast)
	}
	return nil
}

func (p LevelPolicy) minCandidates() int {
	if p.MinCandidates < 2 {
		return 2
	}
	return p.MinCandidates
}
