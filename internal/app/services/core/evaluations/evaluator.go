// Package evaluations composes scoring, validity analysis and interpretation
// into a single assessment result.
package evaluations

import (
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/interpretation"
	"konsulin-assessment-engine/internal/app/services/core/scoring"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/app/services/core/validity"
	"konsulin-assessment-engine/internal/pkg/constvars"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Evaluator is stateless apart from its configuration and is safe for
// concurrent use.
type Evaluator struct {
	Log         *zap.Logger
	Analyzer    *validity.Analyzer
	Interpreter *interpretation.Engine
}

func NewEvaluator(log *zap.Logger, analyzer *validity.Analyzer, interpreter *interpretation.Engine) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	if analyzer == nil {
		analyzer = validity.NewAnalyzer(validity.DefaultConfig())
	}
	if interpreter == nil {
		interpreter = interpretation.NewEngine(log)
	}
	return &Evaluator{
		Log:         log,
		Analyzer:    analyzer,
		Interpreter: interpreter,
	}
}

// Evaluate scores a response set against a validated template. Scoring and
// validity analysis read the same response set and run side by side.
func (e *Evaluator) Evaluate(t *templates.Template, responses models.ResponseSet, ctx *models.EvaluationContext) models.AssessmentResult {
	var (
		scores     models.ScoreResult
		indicators models.ValidityIndicators
		g          errgroup.Group
	)
	g.Go(func() error {
		scores = scoring.Score(t, responses)
		return nil
	})
	g.Go(func() error {
		indicators = e.Analyzer.Analyze(responses, t)
		return nil
	})
	_ = g.Wait()

	result := models.AssessmentResult{
		TemplateID:           t.ID(),
		TemplateVersion:      t.Version(),
		TotalScore:           scores.TotalScore,
		SubscaleScores:       scores.SubscaleScores,
		CompletionPercentage: scores.CompletionPercentage,
		ValidityIndicators:   indicators,
		Interpretation: e.Interpreter.Interpret(t, interpretation.Input{
			TotalScore:           scores.TotalScore,
			SubscaleScores:       scores.SubscaleScores,
			CompletionPercentage: scores.CompletionPercentage,
			Validity:             &indicators,
			Context:              ctx,
		}),
	}

	e.Log.Debug("evaluations.Evaluate completed",
		zap.String(constvars.LoggingTemplateKey, t.Key()),
		zap.Float64(constvars.LoggingTotalScoreKey, result.TotalScore),
		zap.String(constvars.LoggingSeverityKey, string(result.Interpretation.Severity)),
		zap.String(constvars.LoggingValidityLevelKey, string(result.ValidityIndicators.ValidityLevel)),
	)

	return result
}

// EvaluateDefinition validates a raw definition before evaluating it. The only
// error it returns is the template validation error.
func (e *Evaluator) EvaluateDefinition(def models.TemplateDefinition, responses models.ResponseSet, ctx *models.EvaluationContext) (models.AssessmentResult, error) {
	t, err := templates.NewTemplate(def)
	if err != nil {
		return models.AssessmentResult{}, err
	}
	return e.Evaluate(t, responses, ctx), nil
}
