package interpretation

import (
	"math"

	"konsulin-assessment-engine/internal/app/models"
)

const (
	centeringWeight   = 0.5
	specificityWeight = 0.3
	maturityWeight    = 0.2

	highConfidenceFloor   = 80.0
	mediumConfidenceFloor = 60.0
)

// Confidence scores how firmly a total score sits inside its rule: scores
// near the middle of a narrow band on a mature instrument rate highest.
func Confidence(rule models.InterpretationRule, score, maturity float64) models.InterpretationConfidence {
	width := rule.MaxScore - rule.MinScore

	centering := 1.0
	if width > 0 {
		mid := (rule.MinScore + rule.MaxScore) / 2
		centering = clamp01(1 - math.Abs(score-mid)/(width/2))
	}

	var specificity float64
	switch {
	case width <= 5:
		specificity = 1.0
	case width <= 10:
		specificity = 0.8
	default:
		specificity = 0.6
	}

	value := 100 * (centeringWeight*centering + specificityWeight*specificity + maturityWeight*clamp01(maturity))
	return models.InterpretationConfidence{Score: value, Level: confidenceLevel(value)}
}

func confidenceLevel(score float64) models.ConfidenceLevel {
	switch {
	case score >= highConfidenceFloor:
		return models.ConfidenceHigh
	case score >= mediumConfidenceFloor:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
