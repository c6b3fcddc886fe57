package validity

// Config holds the thresholds of the response pattern checks.
// MinAnsweredForPatterns gates the alternating check only.
type Config struct {
	StraightLiningThreshold float64
	AlternatingThreshold    float64
	MinCompletionPercentage float64
	RapidResponseFloorMs    float64
	MinAnsweredForPatterns  int
}

func DefaultConfig() Config {
	return Config{
		StraightLiningThreshold: 0.8,
		AlternatingThreshold:    0.8,
		MinCompletionPercentage: 70,
		RapidResponseFloorMs:    500,
		MinAnsweredForPatterns:  4,
	}
}

// withDefaults replaces unset or out of range values by their defaults.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.StraightLiningThreshold <= 0 || c.StraightLiningThreshold > 1 {
		c.StraightLiningThreshold = defaults.StraightLiningThreshold
	}
	if c.AlternatingThreshold <= 0 || c.AlternatingThreshold > 1 {
		c.AlternatingThreshold = defaults.AlternatingThreshold
	}
	if c.MinCompletionPercentage <= 0 || c.MinCompletionPercentage > 100 {
		c.MinCompletionPercentage = defaults.MinCompletionPercentage
	}
	if c.RapidResponseFloorMs <= 0 {
		c.RapidResponseFloorMs = defaults.RapidResponseFloorMs
	}
	if c.MinAnsweredForPatterns < 2 {
		c.MinAnsweredForPatterns = defaults.MinAnsweredForPatterns
	}
	return c
}
