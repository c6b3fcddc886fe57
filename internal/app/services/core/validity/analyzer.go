// Package validity inspects a response set for patterns that make a score
// less trustworthy: straight-lining, alternating answers, rapid responding
// and low completion.
package validity

import (
	"fmt"
	"math"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"

	"github.com/montanaflynn/stats"
)

const (
	maxValidityScore      = 100.0
	highValidityFloor     = 80.0
	moderateValidityFloor = 50.0
)

var penalties = map[string]float64{
	models.PatternUniformResponse: 30,
	models.PatternAlternating:     30,
	models.PatternRapidResponse:   30,
	models.PatternLowCompletion:   40,
}

type Analyzer struct {
	cfg Config
}

func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg.withDefaults()}
}

// Analyze never fails: degenerate input such as an empty response set is
// reported through the returned indicators.
func (a *Analyzer) Analyze(responses models.ResponseSet, t *templates.Template) models.ValidityIndicators {
	values, times := answeredInOrder(responses, t)
	completion := 0.0
	if t.ItemCount() > 0 {
		completion = float64(len(values)) / float64(t.ItemCount()) * 100
	}

	indicators := models.ValidityIndicators{
		ResponsePatterns: models.ResponsePatterns{Flags: []string{}},
		Warnings:         []string{},
	}

	if len(values) == 0 {
		indicators.ValidityLevel = models.ValidityLow
		indicators.OverallValidityScore = 0
		indicators.ResponsePatterns.Flags = []string{models.PatternNoResponses, models.PatternLowCompletion}
		indicators.Warnings = []string{
			"No items were answered; the assessment cannot be interpreted.",
			lowCompletionWarning(completion, a.cfg.MinCompletionPercentage),
		}
		return indicators
	}

	patterns := &indicators.ResponsePatterns
	raise := func(flag, warning string) {
		patterns.Flags = append(patterns.Flags, flag)
		indicators.Warnings = append(indicators.Warnings, warning)
	}

	patterns.UniformRatio = uniformRatio(values)
	if patterns.UniformRatio >= a.cfg.StraightLiningThreshold {
		raise(models.PatternUniformResponse, fmt.Sprintf(
			"%.0f%% of answered items share the same response, which suggests straight-lining.",
			patterns.UniformRatio*100))
	}

	// A short answer run alternates by chance.
	if len(values) >= a.cfg.MinAnsweredForPatterns {
		patterns.AlternatingRatio = alternatingRatio(values)
		if patterns.AlternatingRatio >= a.cfg.AlternatingThreshold {
			raise(models.PatternAlternating,
				"Responses alternate between two values, which suggests patterned responding.")
		}
	}

	if len(times) > 0 {
		if median, err := stats.Median(times); err == nil {
			patterns.MedianResponseTimeMs = &median
			if median < a.cfg.RapidResponseFloorMs {
				raise(models.PatternRapidResponse, fmt.Sprintf(
					"Median response time of %.0f ms is below %.0f ms; items may not have been read.",
					median, a.cfg.RapidResponseFloorMs))
			}
		}
	}

	if completion < a.cfg.MinCompletionPercentage {
		raise(models.PatternLowCompletion, lowCompletionWarning(completion, a.cfg.MinCompletionPercentage))
	}

	score := maxValidityScore
	for _, flag := range patterns.Flags {
		score -= penalties[flag]
	}
	indicators.OverallValidityScore = math.Max(0, math.Min(maxValidityScore, score))
	indicators.ValidityLevel = levelFor(indicators.OverallValidityScore, indicators.HasFlag(models.PatternLowCompletion))

	return indicators
}

func levelFor(score float64, lowCompletion bool) models.ValidityLevel {
	switch {
	case lowCompletion || score < moderateValidityFloor:
		return models.ValidityLow
	case score >= highValidityFloor:
		return models.ValidityHigh
	default:
		return models.ValidityModerate
	}
}

func lowCompletionWarning(completion, minimum float64) string {
	return fmt.Sprintf("Only %.0f%% of items were answered (minimum %.0f%%).", completion, minimum)
}

// answeredInOrder collects the raw values of answered template items in item
// order, and the response times of those that carry one.
func answeredInOrder(responses models.ResponseSet, t *templates.Template) ([]models.OptionValue, stats.Float64Data) {
	var (
		values []models.OptionValue
		times  stats.Float64Data
	)
	for _, item := range t.Items() {
		response, ok := responses.Answered(item.Number)
		if !ok {
			continue
		}
		values = append(values, responseKey(response))
		if response.ResponseTimeMs != nil && !math.IsNaN(*response.ResponseTimeMs) {
			times = append(times, *response.ResponseTimeMs)
		}
	}
	return values, times
}

// responseKey identifies an answer for pattern detection. Score-only
// responses fall back to their score.
func responseKey(response models.Response) models.OptionValue {
	if response.Value != "" {
		return response.Value
	}
	return models.OptionValue(fmt.Sprintf("score:%g", response.Score))
}

func uniformRatio(values []models.OptionValue) float64 {
	counts := make(map[models.OptionValue]int, len(values))
	highest := 0
	for _, value := range values {
		counts[value]++
		if counts[value] > highest {
			highest = counts[value]
		}
	}
	return float64(highest) / float64(len(values))
}

func alternatingRatio(values []models.OptionValue) float64 {
	if len(values) < 3 {
		return 0
	}
	matches := 0
	for i := 2; i < len(values); i++ {
		if values[i] == values[i-2] && values[i] != values[i-1] {
			matches++
		}
	}
	return float64(matches) / float64(len(values)-2)
}
