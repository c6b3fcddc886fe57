package models

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

type ScoringMethod string

const (
	ScoringMethodSum  ScoringMethod = "sum"
	ScoringMethodMean ScoringMethod = "mean"
)

type Severity string

const (
	SeverityMinimal    Severity = "minimal"
	SeverityMild       Severity = "mild"
	SeverityModerate   Severity = "moderate"
	SeveritySevere     Severity = "severe"
	SeverityVerySevere Severity = "very_severe"
	// SeverityUnknown is only produced by evaluation when no rule matches.
	SeverityUnknown Severity = "unknown"
)

type ClinicalCategory string

const (
	CategoryDepression ClinicalCategory = "depression"
	CategoryAnxiety    ClinicalCategory = "anxiety"
	CategoryPsychosis  ClinicalCategory = "psychosis"
	CategoryTrauma     ClinicalCategory = "trauma"
	CategoryCognitive  ClinicalCategory = "cognitive"
	CategoryGeneral    ClinicalCategory = "general"
)

type TemplateMaturity string

const (
	MaturityEstablished  TemplateMaturity = "established"
	MaturityValidated    TemplateMaturity = "validated"
	MaturityProvisional  TemplateMaturity = "provisional"
	MaturityExperimental TemplateMaturity = "experimental"
)

type FlagType string

const (
	FlagTypeInfo     FlagType = "info"
	FlagTypeWarning  FlagType = "warning"
	FlagTypeCritical FlagType = "critical"
	FlagTypeError    FlagType = "error"
)

// TemplateDefinition is the stored, serialisable form of an instrument.
// It is turned into a queryable template by templates.NewTemplate.
type TemplateDefinition struct {
	ID                  string               `json:"id" bson:"id" yaml:"id"`
	Version             string               `json:"version" bson:"version" yaml:"version"`
	Name                string               `json:"name" bson:"name" yaml:"name"`
	Category            ClinicalCategory     `json:"category,omitempty" bson:"category,omitempty" yaml:"category,omitempty"`
	Maturity            TemplateMaturity     `json:"maturity,omitempty" bson:"maturity,omitempty" yaml:"maturity,omitempty"`
	Items               []Item               `json:"items" bson:"items" yaml:"items"`
	ResponseOptions     []ResponseOption     `json:"responseOptions" bson:"response_options" yaml:"responseOptions"`
	Subscales           []Subscale           `json:"subscales,omitempty" bson:"subscales,omitempty" yaml:"subscales,omitempty"`
	Scoring             Scoring              `json:"scoring" bson:"scoring" yaml:"scoring"`
	InterpretationRules []InterpretationRule `json:"interpretationRules" bson:"interpretation_rules" yaml:"interpretationRules"`
}

type Item struct {
	Number          int              `json:"number" bson:"number" yaml:"number"`
	Text            string           `json:"text" bson:"text" yaml:"text"`
	ReverseScored   bool             `json:"reverseScored,omitempty" bson:"reverse_scored,omitempty" yaml:"reverseScored,omitempty"`
	SubscaleID      string           `json:"subscaleId,omitempty" bson:"subscale_id,omitempty" yaml:"subscaleId,omitempty"`
	ResponseOptions []ResponseOption `json:"responseOptions,omitempty" bson:"response_options,omitempty" yaml:"responseOptions,omitempty"`
}

type ResponseOption struct {
	Value OptionValue `json:"value" bson:"value" yaml:"value"`
	Label string      `json:"label" bson:"label" yaml:"label"`
	Score float64     `json:"score" bson:"score" yaml:"score"`
}

// OptionValue is the raw value of a response option. Definitions written by
// hand often use bare numbers, so JSON numbers are accepted as well.
type OptionValue string

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = OptionValue(s)
		return nil
	}
	if string(data) == "null" {
		*v = ""
		return nil
	}
	*v = OptionValue(strings.TrimSpace(string(data)))
	return nil
}

type Subscale struct {
	ID          string     `json:"id" bson:"id" yaml:"id"`
	Name        string     `json:"name" bson:"name" yaml:"name"`
	ItemNumbers []int      `json:"itemNumbers" bson:"item_numbers" yaml:"itemNumbers"`
	ScoreRange  ScoreRange `json:"scoreRange" bson:"score_range" yaml:"scoreRange"`
}

type ScoreRange struct {
	Min float64 `json:"min" bson:"min" yaml:"min"`
	Max float64 `json:"max" bson:"max" yaml:"max"`
}

type Scoring struct {
	Method          ScoringMethod `json:"method" bson:"method" yaml:"method"`
	TotalScoreRange ScoreRange    `json:"totalScoreRange" bson:"total_score_range" yaml:"totalScoreRange"`
}

type InterpretationRule struct {
	MinScore                    float64           `json:"minScore" bson:"min_score" yaml:"minScore"`
	MaxScore                    float64           `json:"maxScore" bson:"max_score" yaml:"maxScore"`
	Severity                    Severity          `json:"severity" bson:"severity" yaml:"severity"`
	Label                       string            `json:"label" bson:"label" yaml:"label"`
	Color                       string            `json:"color,omitempty" bson:"color,omitempty" yaml:"color,omitempty"`
	Description                 string            `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	ClinicalInterpretation      string            `json:"clinicalInterpretation,omitempty" bson:"clinical_interpretation,omitempty" yaml:"clinicalInterpretation,omitempty"`
	ProfessionalRecommendations []string          `json:"professionalRecommendations,omitempty" bson:"professional_recommendations,omitempty" yaml:"professionalRecommendations,omitempty"`
	WarningFlags                []WarningFlagRule `json:"warningFlags,omitempty" bson:"warning_flags,omitempty" yaml:"warningFlags,omitempty"`
}

type WarningFlagRule struct {
	Condition string   `json:"condition" bson:"condition" yaml:"condition"`
	Message   string   `json:"message" bson:"message" yaml:"message"`
	Type      FlagType `json:"type,omitempty" bson:"type,omitempty" yaml:"type,omitempty"`
}
