package scoring

import (
	"testing"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourPointOptions() []models.ResponseOption {
	return []models.ResponseOption{
		{Value: "0", Label: "Not at all", Score: 0},
		{Value: "1", Label: "Several days", Score: 1},
		{Value: "2", Label: "More than half the days", Score: 2},
		{Value: "3", Label: "Nearly every day", Score: 3},
	}
}

func nineItemTemplate(t *testing.T, mutate func(def *models.TemplateDefinition)) *templates.Template {
	t.Helper()
	def := models.TemplateDefinition{
		ID:              "phq-9",
		Version:         "1.0.0",
		Name:            "Patient Health Questionnaire",
		ResponseOptions: fourPointOptions(),
		Scoring:         models.Scoring{Method: models.ScoringMethodSum, TotalScoreRange: models.ScoreRange{Min: 0, Max: 27}},
		Subscales: []models.Subscale{
			{ID: "cognitive", Name: "Cognitive", ItemNumbers: []int{1, 2, 6, 7, 9}, ScoreRange: models.ScoreRange{Min: 0, Max: 15}},
			{ID: "somatic", Name: "Somatic", ItemNumbers: []int{3, 4, 5, 8}, ScoreRange: models.ScoreRange{Min: 0, Max: 12}},
			{ID: "empty", Name: "Empty", ScoreRange: models.ScoreRange{Min: 0, Max: 0}},
		},
		InterpretationRules: []models.InterpretationRule{
			{MinScore: 0, MaxScore: 4, Severity: models.SeverityMinimal, Label: "Minimal"},
		},
	}
	for i := 1; i <= 9; i++ {
		def.Items = append(def.Items, models.Item{Number: i, Text: "item"})
	}
	if mutate != nil {
		mutate(&def)
	}
	tmpl, err := templates.NewTemplate(def)
	require.NoError(t, err)
	return tmpl
}

func allAnswered(score float64) models.ResponseSet {
	responses := models.ResponseSet{}
	for i := 1; i <= 9; i++ {
		responses[i] = models.Response{Value: "x", Score: score}
	}
	return responses
}

func TestScore(t *testing.T) {
	t.Run("Sum Of All Items", func(t *testing.T) {
		result := Score(nineItemTemplate(t, nil), allAnswered(2))
		assert.Equal(t, 18.0, result.TotalScore)
		assert.Equal(t, 100.0, result.CompletionPercentage)
		assert.Equal(t, 9, result.AnsweredItems)
		assert.Equal(t, 10.0, result.SubscaleScores["cognitive"].Score)
		assert.Equal(t, 8.0, result.SubscaleScores["somatic"].Score)
		assert.Equal(t, 100.0, result.SubscaleScores["somatic"].CompletionPercentage)
	})

	t.Run("Mean Divides By Template Item Count", func(t *testing.T) {
		tmpl := nineItemTemplate(t, func(def *models.TemplateDefinition) {
			def.Scoring.Method = models.ScoringMethodMean
		})
		responses := models.ResponseSet{1: {Score: 3}, 2: {Score: 3}, 3: {Score: 3}}
		result := Score(tmpl, responses)
		assert.InDelta(t, 1.0, result.TotalScore, 1e-9)
	})

	t.Run("Skipped And Missing Items", func(t *testing.T) {
		responses := models.ResponseSet{
			1: {Score: 2},
			2: {Score: 1},
			3: {Score: 3, Skipped: true},
		}
		result := Score(nineItemTemplate(t, nil), responses)
		assert.Equal(t, 3.0, result.TotalScore)
		assert.Equal(t, 2, result.AnsweredItems)
		assert.InDelta(t, 22.2222, result.CompletionPercentage, 1e-3)
		assert.InDelta(t, 40.0, result.SubscaleScores["cognitive"].CompletionPercentage, 1e-9)
		assert.Equal(t, 0.0, result.SubscaleScores["somatic"].Score)
	})

	t.Run("Empty Subscale", func(t *testing.T) {
		result := Score(nineItemTemplate(t, nil), allAnswered(1))
		empty, ok := result.SubscaleScores["empty"]
		require.True(t, ok)
		assert.Equal(t, 0.0, empty.Score)
		assert.Equal(t, 0.0, empty.CompletionPercentage)
	})

	t.Run("Unknown Response Keys Are Ignored", func(t *testing.T) {
		responses := allAnswered(1)
		responses[42] = models.Response{Score: 3}
		result := Score(nineItemTemplate(t, nil), responses)
		assert.Equal(t, 9.0, result.TotalScore)
		assert.Equal(t, 9, result.AnsweredItems)
	})

	t.Run("No Responses", func(t *testing.T) {
		result := Score(nineItemTemplate(t, nil), models.ResponseSet{})
		assert.Equal(t, 0.0, result.TotalScore)
		assert.Equal(t, 0.0, result.CompletionPercentage)
	})
}

func TestReverseScoring(t *testing.T) {
	tmpl := nineItemTemplate(t, func(def *models.TemplateDefinition) {
		def.Items[0].ReverseScored = true
		def.Items[1].ReverseScored = true
		def.Items[1].ResponseOptions = []models.ResponseOption{
			{Value: "1", Score: 1}, {Value: "2", Score: 2}, {Value: "3", Score: 3}, {Value: "4", Score: 4}, {Value: "5", Score: 5},
		}
	})

	testCases := []struct {
		name     string
		item     int
		raw      float64
		expected float64
	}{
		{"Lowest Becomes Highest", 1, 0, 3},
		{"Highest Becomes Lowest", 1, 3, 0},
		{"Middle Values Swap", 1, 1, 2},
		{"Item Specific Range", 2, 1, 5},
		{"Item Specific Middle", 2, 3, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(tmpl, models.ResponseSet{tc.item: {Score: tc.raw}})
			assert.Equal(t, tc.expected, result.ItemScores[tc.item])
			assert.Equal(t, tc.expected, result.TotalScore)
		})
	}

	t.Run("Skipped Reverse Item Contributes Zero", func(t *testing.T) {
		result := Score(tmpl, models.ResponseSet{1: {Score: 0, Skipped: true}})
		assert.Equal(t, 0.0, result.TotalScore)
	})
}

func TestScoreMonotonic(t *testing.T) {
	tmpl := nineItemTemplate(t, nil)
	base := allAnswered(1)
	baseline := Score(tmpl, base).TotalScore

	for item := 1; item <= 9; item++ {
		raised := models.ResponseSet{}
		for k, v := range base {
			raised[k] = v
		}
		raised[item] = models.Response{Score: 2}
		assert.Greater(t, Score(tmpl, raised).TotalScore, baseline)
	}
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	tmpl := nineItemTemplate(t, func(def *models.TemplateDefinition) {
		def.Items[0].ReverseScored = true
	})
	responses := allAnswered(1)
	first := Score(tmpl, responses)
	second := Score(tmpl, responses)

	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, responses[1].Score)
}
