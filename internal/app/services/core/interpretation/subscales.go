package interpretation

import (
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
)

// InterpretSubscales rates each subscale by its share of the subscale maximum,
// in subscale declaration order.
func InterpretSubscales(t *templates.Template, scores map[string]models.SubscaleScore) []models.SubscaleInterpretation {
	subscales := t.Subscales()
	if len(subscales) == 0 {
		return nil
	}
	result := make([]models.SubscaleInterpretation, 0, len(subscales))
	for _, subscale := range subscales {
		severity, percentage := SubscaleSeverity(scores[subscale.ID].Score, subscale.ScoreRange.Max)
		result = append(result, models.SubscaleInterpretation{
			SubscaleID:          subscale.ID,
			Name:                subscale.Name,
			Severity:            severity,
			PercentageOfMaximum: percentage,
		})
	}
	return result
}

func SubscaleSeverity(score, max float64) (models.Severity, float64) {
	if max <= 0 {
		return models.SeverityMinimal, 0
	}
	percentage := score / max * 100
	switch {
	case percentage <= 25:
		return models.SeverityMinimal, percentage
	case percentage <= 50:
		return models.SeverityMild, percentage
	case percentage <= 75:
		return models.SeverityModerate, percentage
	default:
		return models.SeveritySevere, percentage
	}
}
