// Package templates holds the validated, read-only view of an instrument
// definition that the scoring, validity and interpretation engines read from.
package templates

import (
	"errors"
	"fmt"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"regexp"
)

// subscaleIDPattern keeps <subscaleId>Score a valid condition identifier.
var subscaleIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Template is an immutable instrument keyed by id@version. Accessors hand out
// copies so callers cannot reach the internal definition.
type Template struct {
	def           models.TemplateDefinition
	itemIndex     map[int]int
	subscaleIndex map[string]int
	itemSubscales map[int][]string
	subscaleItems map[string][]int
}

// NewTemplate validates the structural invariants of a definition and builds
// the lookup indexes. Gaps and overlaps in the rule table are resolved when a
// score is interpreted.
func NewTemplate(def models.TemplateDefinition) (*Template, error) {
	def = cloneDefinition(def)
	key := Key(def.ID, def.Version)

	if len(def.Items) == 0 {
		return nil, exceptions.ErrTemplateInvalid(errors.New("template has no items"), key)
	}

	switch def.Scoring.Method {
	case models.ScoringMethodSum, models.ScoringMethodMean:
	default:
		return nil, exceptions.ErrTemplateInvalid(fmt.Errorf("unsupported scoring method %q", def.Scoring.Method), key)
	}

	t := &Template{
		def:           def,
		itemIndex:     make(map[int]int, len(def.Items)),
		subscaleIndex: make(map[string]int, len(def.Subscales)),
		itemSubscales: make(map[int][]string, len(def.Items)),
		subscaleItems: make(map[string][]int, len(def.Subscales)),
	}

	for i, item := range def.Items {
		if _, exists := t.itemIndex[item.Number]; exists {
			return nil, exceptions.ErrTemplateInvalid(fmt.Errorf("item number %d is declared more than once", item.Number), key)
		}
		t.itemIndex[item.Number] = i
	}

	for i, subscale := range def.Subscales {
		if !subscaleIDPattern.MatchString(subscale.ID) {
			return nil, exceptions.ErrTemplateInvalid(fmt.Errorf("subscale id %q must start with a letter or underscore and contain only letters, digits and underscores", subscale.ID), key)
		}
		if _, exists := t.subscaleIndex[subscale.ID]; exists {
			return nil, exceptions.ErrTemplateInvalid(fmt.Errorf("subscale %q is declared more than once", subscale.ID), key)
		}
		t.subscaleIndex[subscale.ID] = i
		for _, number := range subscale.ItemNumbers {
			if _, ok := t.itemIndex[number]; !ok {
				return nil, exceptions.ErrTemplateInvalid(fmt.Errorf("subscale %q references unknown item %d", subscale.ID, number), key)
			}
		}
	}

	for _, item := range def.Items {
		if item.SubscaleID == "" {
			continue
		}
		if _, ok := t.subscaleIndex[item.SubscaleID]; !ok {
			return nil, exceptions.ErrTemplateInvalid(fmt.Errorf("item %d references unknown subscale %q", item.Number, item.SubscaleID), key)
		}
	}

	t.buildMembership()
	return t, nil
}

// buildMembership resolves subscale membership from both directions: the
// subscale's itemNumbers and the item's subscaleId.
func (t *Template) buildMembership() {
	for _, subscale := range t.def.Subscales {
		seen := make(map[int]bool)
		members := make([]int, 0, len(subscale.ItemNumbers))
		for _, number := range subscale.ItemNumbers {
			if seen[number] {
				continue
			}
			seen[number] = true
			members = append(members, number)
		}
		for _, item := range t.def.Items {
			if item.SubscaleID == subscale.ID && !seen[item.Number] {
				seen[item.Number] = true
				members = append(members, item.Number)
			}
		}
		t.subscaleItems[subscale.ID] = members
		for _, number := range members {
			t.itemSubscales[number] = append(t.itemSubscales[number], subscale.ID)
		}
	}
}

func (t *Template) Key() string {
	return Key(t.def.ID, t.def.Version)
}

func (t *Template) ID() string {
	return t.def.ID
}

func (t *Template) Version() string {
	return t.def.Version
}

func (t *Template) Name() string {
	return t.def.Name
}

func (t *Template) Category() models.ClinicalCategory {
	return t.def.Category
}

func (t *Template) Scoring() models.Scoring {
	return t.def.Scoring
}

// Definition returns a deep copy of the underlying definition.
func (t *Template) Definition() models.TemplateDefinition {
	return cloneDefinition(t.def)
}

func (t *Template) ItemCount() int {
	return len(t.def.Items)
}

// Items returns the items in declaration order.
func (t *Template) Items() []models.Item {
	items := make([]models.Item, len(t.def.Items))
	for i, item := range t.def.Items {
		items[i] = cloneItem(item)
	}
	return items
}

func (t *Template) Item(itemNumber int) (models.Item, bool) {
	idx, ok := t.itemIndex[itemNumber]
	if !ok {
		return models.Item{}, false
	}
	return cloneItem(t.def.Items[idx]), true
}

func (t *Template) HasItem(itemNumber int) bool {
	_, ok := t.itemIndex[itemNumber]
	return ok
}

// ResolveResponseOptionsForItem returns the item-specific options when the
// item overrides them, otherwise the template-wide set. Unknown items yield nil.
func (t *Template) ResolveResponseOptionsForItem(itemNumber int) []models.ResponseOption {
	idx, ok := t.itemIndex[itemNumber]
	if !ok {
		return nil
	}
	if options := t.def.Items[idx].ResponseOptions; len(options) > 0 {
		return cloneOptions(options)
	}
	return cloneOptions(t.def.ResponseOptions)
}

// OptionScoreBounds returns the lowest and highest option score for an item.
func (t *Template) OptionScoreBounds(itemNumber int) (min, max float64, ok bool) {
	options := t.ResolveResponseOptionsForItem(itemNumber)
	if len(options) == 0 {
		return 0, 0, false
	}
	min, max = options[0].Score, options[0].Score
	for _, option := range options[1:] {
		if option.Score < min {
			min = option.Score
		}
		if option.Score > max {
			max = option.Score
		}
	}
	return min, max, true
}

// FindOption looks up the option of an item by its raw value.
func (t *Template) FindOption(itemNumber int, value models.OptionValue) (models.ResponseOption, bool) {
	for _, option := range t.ResolveResponseOptionsForItem(itemNumber) {
		if option.Value == value {
			return option, true
		}
	}
	return models.ResponseOption{}, false
}

// GetSubscalesForItem returns the ids of every subscale the item belongs to,
// in subscale declaration order.
func (t *Template) GetSubscalesForItem(itemNumber int) []string {
	ids := t.itemSubscales[itemNumber]
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

func (t *Template) Subscales() []models.Subscale {
	subscales := make([]models.Subscale, len(t.def.Subscales))
	for i, subscale := range t.def.Subscales {
		subscales[i] = cloneSubscale(subscale)
	}
	return subscales
}

func (t *Template) Subscale(id string) (models.Subscale, bool) {
	idx, ok := t.subscaleIndex[id]
	if !ok {
		return models.Subscale{}, false
	}
	return cloneSubscale(t.def.Subscales[idx]), true
}

// SubscaleItemNumbers returns the resolved member items of a subscale.
func (t *Template) SubscaleItemNumbers(id string) []int {
	return append([]int(nil), t.subscaleItems[id]...)
}

func (t *Template) Rules() []models.InterpretationRule {
	rules := make([]models.InterpretationRule, len(t.def.InterpretationRules))
	for i, rule := range t.def.InterpretationRules {
		rules[i] = cloneRule(rule)
	}
	return rules
}

// GetRuleForScore returns the first interpretation rule whose range contains
// score, or false when the score falls in a gap or outside every rule.
func (t *Template) GetRuleForScore(score float64) (models.InterpretationRule, bool) {
	rule, _, ok := MatchRule(t.def.InterpretationRules, score)
	if !ok {
		return models.InterpretationRule{}, false
	}
	return cloneRule(rule), true
}
