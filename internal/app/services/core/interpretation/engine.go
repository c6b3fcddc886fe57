// Package interpretation maps a score onto the template's rule table and
// produces the clinical narrative, warning flags and recommendations.
package interpretation

import (
	"fmt"
	"strconv"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/constvars"

	"go.uber.org/zap"
)

const (
	FallbackLabel = "Score out of interpretable range"

	FlagSourceRule           = "rule"
	FlagSourceInterpretation = "interpretation"
	FlagSourceValidity       = "validity"
	FlagSourceCompletion     = "completion"
)

// Input is everything the engine needs besides the template.
type Input struct {
	TotalScore           float64
	SubscaleScores       map[string]models.SubscaleScore
	CompletionPercentage float64
	Validity             *models.ValidityIndicators
	Context              *models.EvaluationContext
}

type Engine struct {
	Log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Log: log}
}

// Interpret never fails. A score outside every rule yields the fallback
// interpretation with severity unknown.
func (e *Engine) Interpret(t *templates.Template, in Input) models.Interpretation {
	var result models.Interpretation

	rule, ok := t.GetRuleForScore(in.TotalScore)
	if ok {
		result = models.Interpretation{
			Severity:                    rule.Severity,
			Label:                       rule.Label,
			Color:                       rule.Color,
			ClinicalInterpretation:      narrative(rule, in.TotalScore),
			ProfessionalRecommendations: nonNil(rule.ProfessionalRecommendations),
			WarningFlags:                e.evaluateWarningFlags(t, rule, variablesFor(t, in)),
			InterpretationConfidence:    Confidence(rule, in.TotalScore, t.MaturityWeight()),
		}
	} else {
		e.Log.Warn("interpretation.Interpret no rule matches total score",
			zap.String(constvars.LoggingTemplateKey, t.Key()),
			zap.Float64(constvars.LoggingTotalScoreKey, in.TotalScore),
		)
		result = fallback(t, in.TotalScore)
	}

	result.WarningFlags = append(result.WarningFlags, engineFlags(in)...)
	result.ContextualRecommendations = ContextualRecommendations(result.Severity, t.Category(), in.Context)
	result.SubscaleInterpretations = InterpretSubscales(t, in.SubscaleScores)
	return result
}

func narrative(rule models.InterpretationRule, score float64) string {
	text := fmt.Sprintf("Total score of %s falls within the %s range (%s-%s).",
		formatScore(score), rule.Label, formatScore(rule.MinScore), formatScore(rule.MaxScore))
	switch {
	case rule.ClinicalInterpretation != "":
		text += " " + rule.ClinicalInterpretation
	case rule.Description != "":
		text += " " + rule.Description
	}
	return text
}

func fallback(t *templates.Template, score float64) models.Interpretation {
	return models.Interpretation{
		Severity: models.SeverityUnknown,
		Label:    FallbackLabel,
		ClinicalInterpretation: fmt.Sprintf(
			"Total score of %s does not fall within any interpretation range defined for %s. Manual clinical review is required.",
			formatScore(score), t.Name()),
		ProfessionalRecommendations: []string{
			"Review the individual responses manually before making clinical decisions.",
			"Verify that the correct instrument version was administered.",
		},
		WarningFlags: []models.WarningFlag{{
			Type:    models.FlagTypeError,
			Message: fmt.Sprintf("No interpretation rule matches total score %s.", formatScore(score)),
			Source:  FlagSourceInterpretation,
		}},
		InterpretationConfidence: models.InterpretationConfidence{Score: 0, Level: models.ConfidenceLow},
	}
}

// engineFlags are raised independently of the rule table.
func engineFlags(in Input) []models.WarningFlag {
	var flags []models.WarningFlag
	if in.Validity != nil && in.Validity.ValidityLevel == models.ValidityLow {
		flags = append(flags, models.WarningFlag{
			Type:    models.FlagTypeWarning,
			Message: "Response validity is low; interpret this result with caution.",
			Source:  FlagSourceValidity,
		})
	}
	if in.CompletionPercentage < 100 {
		flags = append(flags, models.WarningFlag{
			Type:    models.FlagTypeInfo,
			Message: fmt.Sprintf("Assessment is %s%% complete; skipped items were scored as 0.", formatScore(in.CompletionPercentage)),
			Source:  FlagSourceCompletion,
		})
	}
	return flags
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
