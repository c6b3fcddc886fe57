package templates

import "konsulin-assessment-engine/internal/app/models"

func fourPointOptions() []models.ResponseOption {
	return []models.ResponseOption{
		{Value: "0", Label: "Not at all", Score: 0},
		{Value: "1", Label: "Several days", Score: 1},
		{Value: "2", Label: "More than half the days", Score: 2},
		{Value: "3", Label: "Nearly every day", Score: 3},
	}
}

func sampleDefinition() models.TemplateDefinition {
	return models.TemplateDefinition{
		ID:       "phq-9",
		Version:  "1.0.0",
		Name:     "Patient Health Questionnaire",
		Category: models.CategoryDepression,
		Items: []models.Item{
			{Number: 1, Text: "Little interest", SubscaleID: "affective"},
			{Number: 2, Text: "Feeling down", SubscaleID: "affective"},
			{Number: 3, Text: "Sleep"},
			{Number: 4, Text: "Energy", ReverseScored: true, ResponseOptions: []models.ResponseOption{
				{Value: "a", Label: "Low", Score: 1},
				{Value: "b", Label: "High", Score: 5},
			}},
		},
		ResponseOptions: fourPointOptions(),
		Subscales: []models.Subscale{
			{ID: "affective", Name: "Affective", ItemNumbers: []int{1, 2}, ScoreRange: models.ScoreRange{Min: 0, Max: 6}},
			{ID: "somatic", Name: "Somatic", ItemNumbers: []int{3, 4}, ScoreRange: models.ScoreRange{Min: 0, Max: 8}},
			{ID: "core", Name: "Core", ItemNumbers: []int{1}, ScoreRange: models.ScoreRange{Min: 0, Max: 3}},
		},
		Scoring: models.Scoring{Method: models.ScoringMethodSum, TotalScoreRange: models.ScoreRange{Min: 0, Max: 14}},
		InterpretationRules: []models.InterpretationRule{
			{MinScore: 0, MaxScore: 4, Severity: models.SeverityMinimal, Label: "Minimal"},
			{MinScore: 5, MaxScore: 9, Severity: models.SeverityMild, Label: "Mild"},
			{MinScore: 8, MaxScore: 14, Severity: models.SeverityModerate, Label: "Moderate"},
		},
	}
}
