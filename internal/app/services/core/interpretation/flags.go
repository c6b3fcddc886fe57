package interpretation

import (
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/interpretation/condition"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/constvars"

	"go.uber.org/zap"
)

// variablesFor builds the names a warning flag condition may reference:
// totalScore, completionPercentage and <subscaleId>Score per subscale.
func variablesFor(t *templates.Template, in Input) condition.Variables {
	vars := condition.Variables{
		"totalScore":           in.TotalScore,
		"completionPercentage": in.CompletionPercentage,
	}
	for _, subscale := range t.Subscales() {
		vars[subscale.ID+"Score"] = in.SubscaleScores[subscale.ID].Score
	}
	return vars
}

// evaluateWarningFlags keeps the flags whose condition holds. A condition
// that cannot be parsed or evaluated is logged and treated as false.
func (e *Engine) evaluateWarningFlags(t *templates.Template, rule models.InterpretationRule, vars condition.Variables) []models.WarningFlag {
	flags := make([]models.WarningFlag, 0, len(rule.WarningFlags))
	for _, flagRule := range rule.WarningFlags {
		triggered, err := condition.Evaluate(flagRule.Condition, vars)
		if err != nil {
			e.Log.Warn(constvars.ErrDevConditionEvaluationFailed,
				zap.String(constvars.LoggingTemplateKey, t.Key()),
				zap.String(constvars.LoggingConditionKey, flagRule.Condition),
				zap.Error(err),
			)
			continue
		}
		if !triggered {
			continue
		}
		flagType := flagRule.Type
		if flagType == "" {
			flagType = models.FlagTypeWarning
		}
		flags = append(flags, models.WarningFlag{
			Type:    flagType,
			Message: flagRule.Message,
			Source:  FlagSourceRule,
		})
	}
	return flags
}
