package templates

import (
	"math"

	"konsulin-assessment-engine/internal/app/models"
)

// MatchRule scans rules in declaration order and returns the first one with
// minScore <= score <= maxScore. Overlapping ranges resolve to the earliest rule.
func MatchRule(rules []models.InterpretationRule, score float64) (models.InterpretationRule, int, bool) {
	if math.IsNaN(score) {
		return models.InterpretationRule{}, -1, false
	}
	for i, rule := range rules {
		if rule.MinScore <= score && score <= rule.MaxScore {
			return rule, i, true
		}
	}
	return models.InterpretationRule{}, -1, false
}
