package models

import "time"

type ValidityLevel string

const (
	ValidityHigh     ValidityLevel = "high"
	ValidityModerate ValidityLevel = "moderate"
	ValidityLow      ValidityLevel = "low"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Response pattern tags raised by the validity analysis.
const (
	PatternUniformResponse = "uniform_response_pattern"
	PatternLowCompletion   = "low_completion"
	PatternRapidResponse   = "rapid_response_pattern"
	PatternAlternating     = "alternating_pattern"
	PatternNoResponses     = "no_responses"
)

type SubscaleScore struct {
	Score                float64    `json:"score" bson:"score"`
	ScoreRange           ScoreRange `json:"scoreRange" bson:"score_range"`
	CompletionPercentage float64    `json:"completionPercentage" bson:"completion_percentage"`
}

// ScoreResult is the output of the scoring engine.
type ScoreResult struct {
	TotalScore           float64                  `json:"totalScore"`
	SubscaleScores       map[string]SubscaleScore `json:"subscaleScores"`
	CompletionPercentage float64                  `json:"completionPercentage"`
	AnsweredItems        int                      `json:"answeredItems"`
	TotalItems           int                      `json:"totalItems"`
	ItemScores           map[int]float64          `json:"itemScores"`
}

type ResponsePatterns struct {
	Flags                []string `json:"flags" bson:"flags"`
	UniformRatio         float64  `json:"uniformRatio" bson:"uniform_ratio"`
	AlternatingRatio     float64  `json:"alternatingRatio" bson:"alternating_ratio"`
	MedianResponseTimeMs *float64 `json:"medianResponseTimeMs,omitempty" bson:"median_response_time_ms,omitempty"`
}

type ValidityIndicators struct {
	ValidityLevel        ValidityLevel    `json:"validityLevel" bson:"validity_level"`
	OverallValidityScore float64          `json:"overallValidityScore" bson:"overall_validity_score"`
	ResponsePatterns     ResponsePatterns `json:"responsePatterns" bson:"response_patterns"`
	Warnings             []string         `json:"warnings" bson:"warnings"`
}

// HasFlag reports whether the analysis raised the given pattern tag.
func (v ValidityIndicators) HasFlag(flag string) bool {
	for _, f := range v.ResponsePatterns.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

type WarningFlag struct {
	Type    FlagType `json:"type" bson:"type"`
	Message string   `json:"message" bson:"message"`
	Source  string   `json:"source,omitempty" bson:"source,omitempty"`
}

type InterpretationConfidence struct {
	Score float64         `json:"score" bson:"score"`
	Level ConfidenceLevel `json:"level" bson:"level"`
}

type SubscaleInterpretation struct {
	SubscaleID          string   `json:"subscaleId" bson:"subscale_id"`
	Name                string   `json:"name" bson:"name"`
	Severity            Severity `json:"severity" bson:"severity"`
	PercentageOfMaximum float64  `json:"percentageOfMaximum" bson:"percentage_of_maximum"`
}

type Interpretation struct {
	Severity                    Severity                 `json:"severity" bson:"severity"`
	Label                       string                   `json:"label" bson:"label"`
	Color                       string                   `json:"color,omitempty" bson:"color,omitempty"`
	ClinicalInterpretation      string                   `json:"clinicalInterpretation" bson:"clinical_interpretation"`
	ProfessionalRecommendations []string                 `json:"professionalRecommendations" bson:"professional_recommendations"`
	ContextualRecommendations   []string                 `json:"contextualRecommendations" bson:"contextual_recommendations"`
	WarningFlags                []WarningFlag            `json:"warningFlags" bson:"warning_flags"`
	InterpretationConfidence    InterpretationConfidence `json:"interpretationConfidence" bson:"interpretation_confidence"`
	SubscaleInterpretations     []SubscaleInterpretation `json:"subscaleInterpretations,omitempty" bson:"subscale_interpretations,omitempty"`
}

// AssessmentResult is produced once per evaluation and never mutated afterwards.
type AssessmentResult struct {
	TemplateID           string                   `json:"templateId" bson:"template_id"`
	TemplateVersion      string                   `json:"templateVersion" bson:"template_version"`
	TotalScore           float64                  `json:"totalScore" bson:"total_score"`
	SubscaleScores       map[string]SubscaleScore `json:"subscaleScores" bson:"subscale_scores"`
	CompletionPercentage float64                  `json:"completionPercentage" bson:"completion_percentage"`
	ValidityIndicators   ValidityIndicators       `json:"validityIndicators" bson:"validity_indicators"`
	Interpretation       Interpretation           `json:"interpretation" bson:"interpretation"`
}

// EvaluationRecord is what the service persists for each evaluation.
type EvaluationRecord struct {
	ID          string             `json:"id" bson:"_id"`
	PatientID   string             `json:"patientId,omitempty" bson:"patient_id,omitempty"`
	TemplateKey string             `json:"templateKey" bson:"template_key"`
	Responses   ResponseSet        `json:"responses" bson:"responses"`
	Context     *EvaluationContext `json:"context,omitempty" bson:"context,omitempty"`
	Result      AssessmentResult   `json:"result" bson:"result"`
	ReportPath  string             `json:"reportPath,omitempty" bson:"report_path,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}
