package interpretation

import "konsulin-assessment-engine/internal/app/models"

const (
	minorAgeLimit      = 18
	olderAdultAgeFloor = 65
)

var severityRecommendations = map[models.Severity][]string{
	models.SeverityVerySevere: {
		"Conduct an immediate risk assessment, including suicide and self-harm screening.",
		"Arrange urgent referral to specialist mental health services.",
	},
	models.SeveritySevere: {
		"Conduct an immediate risk assessment, including suicide and self-harm screening.",
		"Arrange prompt referral to specialist mental health services.",
	},
	models.SeverityModerate: {
		"Start or intensify active treatment and review progress within 2 to 4 weeks.",
	},
	models.SeverityMild: {
		"Offer preventive support such as guided self-help and re-assess within 4 weeks.",
	},
	models.SeverityMinimal: {
		"Provide psychoeducation and re-screen at the next routine visit.",
	},
	models.SeverityUnknown: {
		"Manual clinical review is required before acting on this result.",
	},
}

var categoryRecommendations = map[models.ClinicalCategory]string{
	models.CategoryDepression: "Monitor mood and sleep closely and consider behavioural activation.",
	models.CategoryAnxiety:    "Consider CBT-based anxiety management and relaxation training.",
	models.CategoryPsychosis:  "Refer for early psychosis assessment and involve the patient's support network.",
	models.CategoryTrauma:     "Use a trauma-informed approach and consider trauma-focused therapy.",
	models.CategoryCognitive:  "Arrange a comprehensive neuropsychological assessment.",
}

var categoryAddendumSeverities = map[models.Severity]bool{
	models.SeverityMild:       true,
	models.SeverityModerate:   true,
	models.SeveritySevere:     true,
	models.SeverityVerySevere: true,
}

// ContextualRecommendations combines the severity table with category and
// demographic addenda. Output order is fixed: severity, category, demographics.
func ContextualRecommendations(severity models.Severity, category models.ClinicalCategory, ctx *models.EvaluationContext) []string {
	recommendations := append([]string{}, severityRecommendations[severity]...)

	if categoryAddendumSeverities[severity] {
		if addendum, ok := categoryRecommendations[category]; ok {
			recommendations = append(recommendations, addendum)
		}
	}

	if ctx != nil && ctx.Demographics != nil && ctx.Demographics.Age != nil {
		switch age := *ctx.Demographics.Age; {
		case age < minorAgeLimit:
			recommendations = append(recommendations, "Involve a parent or guardian and use adolescent-appropriate services.")
		case age >= olderAdultAgeFloor:
			recommendations = append(recommendations, "Account for age-related medical comorbidities and medication interactions in older adults.")
		}
	}

	return recommendations
}
