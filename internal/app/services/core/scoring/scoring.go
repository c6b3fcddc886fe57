// Package scoring turns a response set into total and subscale scores.
package scoring

import (
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
)

// Score computes the raw scores of a response set against a template.
// Missing and skipped items count towards completion only and contribute 0;
// responses for items the template does not declare are ignored.
func Score(t *templates.Template, responses models.ResponseSet) models.ScoreResult {
	items := t.Items()
	result := models.ScoreResult{
		SubscaleScores: make(map[string]models.SubscaleScore),
		TotalItems:     len(items),
		ItemScores:     make(map[int]float64, len(items)),
	}

	total := 0.0
	for _, item := range items {
		response, answered := responses.Answered(item.Number)
		if !answered {
			continue
		}
		effective := EffectiveItemScore(t, item, response.Score)
		result.ItemScores[item.Number] = effective
		result.AnsweredItems++
		total += effective
	}

	if t.Scoring().Method == models.ScoringMethodMean && result.TotalItems > 0 {
		total /= float64(result.TotalItems)
	}
	result.TotalScore = total
	result.CompletionPercentage = percentage(result.AnsweredItems, result.TotalItems)

	for _, subscale := range t.Subscales() {
		result.SubscaleScores[subscale.ID] = scoreSubscale(t, subscale, result.ItemScores)
	}

	return result
}

// EffectiveItemScore applies reverse scoring using the item's own option set:
// (max - raw) + min. Items without options keep their raw score.
func EffectiveItemScore(t *templates.Template, item models.Item, raw float64) float64 {
	if !item.ReverseScored {
		return raw
	}
	min, max, ok := t.OptionScoreBounds(item.Number)
	if !ok {
		return raw
	}
	return (max - raw) + min
}

func scoreSubscale(t *templates.Template, subscale models.Subscale, itemScores map[int]float64) models.SubscaleScore {
	members := t.SubscaleItemNumbers(subscale.ID)
	score := models.SubscaleScore{ScoreRange: subscale.ScoreRange}

	answered := 0
	for _, number := range members {
		if value, ok := itemScores[number]; ok {
			score.Score += value
			answered++
		}
	}
	score.CompletionPercentage = percentage(answered, len(members))
	return score
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
