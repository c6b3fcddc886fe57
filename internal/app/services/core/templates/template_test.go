package templates

import (
	"errors"
	"testing"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	t.Run("Valid Definition", func(t *testing.T) {
		tmpl, err := NewTemplate(sampleDefinition())
		require.NoError(t, err)
		assert.Equal(t, "phq-9@1.0.0", tmpl.Key())
		assert.Equal(t, 4, tmpl.ItemCount())
		assert.Equal(t, models.CategoryDepression, tmpl.Category())
	})

	invalid := []struct {
		name   string
		mutate func(def *models.TemplateDefinition)
	}{
		{"Unknown Subscale On Item", func(def *models.TemplateDefinition) { def.Items[2].SubscaleID = "missing" }},
		{"Subscale References Missing Item", func(def *models.TemplateDefinition) { def.Subscales[0].ItemNumbers = []int{1, 42} }},
		{"No Items", func(def *models.TemplateDefinition) { def.Items = nil }},
		{"Unsupported Scoring Method", func(def *models.TemplateDefinition) { def.Scoring.Method = "median" }},
		{"Duplicate Item Numbers", func(def *models.TemplateDefinition) { def.Items[1].Number = 1 }},
		{"Duplicate Subscale Ids", func(def *models.TemplateDefinition) { def.Subscales[2].ID = "affective" }},
		{"Subscale Id Not A Condition Identifier", func(def *models.TemplateDefinition) {
			def.Subscales[2].ID = "self-harm"
		}},
		{"Subscale Id Starts With Digit", func(def *models.TemplateDefinition) { def.Subscales[2].ID = "2core" }},
		{"Empty Subscale Id", func(def *models.TemplateDefinition) { def.Subscales[2].ID = "" }},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			def := sampleDefinition()
			tc.mutate(&def)

			tmpl, err := NewTemplate(def)
			assert.Nil(t, tmpl)
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		})
	}

	t.Run("Identifier Subscale Ids Are Accepted", func(t *testing.T) {
		def := sampleDefinition()
		def.Subscales[2].ID = "self_harm2"
		tmpl, err := NewTemplate(def)
		require.NoError(t, err)
		assert.Equal(t, "self_harm2", tmpl.Subscales()[2].ID)
	})

	t.Run("Gapped Rules Are Accepted", func(t *testing.T) {
		def := sampleDefinition()
		def.InterpretationRules = def.InterpretationRules[:1]
		_, err := NewTemplate(def)
		assert.NoError(t, err)
	})
}

func TestTemplateIsolation(t *testing.T) {
	def := sampleDefinition()
	tmpl, err := NewTemplate(def)
	require.NoError(t, err)

	def.Items[0].Text = "changed"
	def.ResponseOptions[0].Score = 99
	assert.Equal(t, "Little interest", tmpl.Items()[0].Text)

	items := tmpl.Items()
	items[0].Text = "changed again"
	rules := tmpl.Rules()
	rules[0].Label = "tampered"
	options := tmpl.ResolveResponseOptionsForItem(1)
	options[0].Score = 42

	item, ok := tmpl.Item(1)
	require.True(t, ok)
	assert.Equal(t, "Little interest", item.Text)
	assert.Equal(t, "Minimal", tmpl.Rules()[0].Label)
	assert.Equal(t, float64(0), tmpl.ResolveResponseOptionsForItem(1)[0].Score)
}

func TestResolveResponseOptionsForItem(t *testing.T) {
	tmpl, err := NewTemplate(sampleDefinition())
	require.NoError(t, err)

	assert.Len(t, tmpl.ResolveResponseOptionsForItem(1), 4)
	assert.Len(t, tmpl.ResolveResponseOptionsForItem(4), 2)
	assert.Nil(t, tmpl.ResolveResponseOptionsForItem(99))

	min, max, ok := tmpl.OptionScoreBounds(4)
	require.True(t, ok)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 5.0, max)

	option, ok := tmpl.FindOption(2, "3")
	require.True(t, ok)
	assert.Equal(t, 3.0, option.Score)

	_, ok = tmpl.FindOption(2, "7")
	assert.False(t, ok)
}

func TestGetSubscalesForItem(t *testing.T) {
	tmpl, err := NewTemplate(sampleDefinition())
	require.NoError(t, err)

	assert.Equal(t, []string{"affective", "core"}, tmpl.GetSubscalesForItem(1))
	assert.Equal(t, []string{"affective"}, tmpl.GetSubscalesForItem(2))
	assert.Equal(t, []string{"somatic"}, tmpl.GetSubscalesForItem(3))
	assert.Empty(t, tmpl.GetSubscalesForItem(99))
}

func TestSubscaleMembershipFromItemSide(t *testing.T) {
	def := sampleDefinition()
	def.Subscales[0].ItemNumbers = []int{1}

	tmpl, err := NewTemplate(def)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, tmpl.SubscaleItemNumbers("affective"))
	assert.Equal(t, []string{"affective"}, tmpl.GetSubscalesForItem(2))
}

func TestGetRuleForScore(t *testing.T) {
	tmpl, err := NewTemplate(sampleDefinition())
	require.NoError(t, err)

	testCases := []struct {
		name     string
		score    float64
		expected models.Severity
		found    bool
	}{
		{"Lower Bound", 0, models.SeverityMinimal, true},
		{"Upper Bound Inclusive", 4, models.SeverityMinimal, true},
		{"Gap Between Rules", 4.5, "", false},
		{"Overlap Resolves To First", 8, models.SeverityMild, true},
		{"Above All Rules", 15, "", false},
		{"Below All Rules", -1, "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := tmpl.GetRuleForScore(tc.score)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, rule.Severity)
		})
	}
}

func TestMaturityWeight(t *testing.T) {
	testCases := []struct {
		name     string
		maturity models.TemplateMaturity
		version  string
		expected float64
	}{
		{"Explicit Established", models.MaturityEstablished, "0.1.0", 1.0},
		{"Released Version", "", "2.1.0", 0.9},
		{"Pre One Version", "", "0.3.0", 0.7},
		{"Prerelease Version", "", "1.0.0-beta.1", 0.7},
		{"Unparseable Version", "", "spring-edition", 0.5},
		{"Unknown Explicit Maturity", "legendary", "1.0.0", 0.9},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def := sampleDefinition()
			def.Maturity = tc.maturity
			def.Version = tc.version
			tmpl, err := NewTemplate(def)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, tmpl.MaturityWeight(), 1e-9)
		})
	}
}
