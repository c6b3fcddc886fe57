package templates

import "konsulin-assessment-engine/internal/app/models"

func cloneDefinition(def models.TemplateDefinition) models.TemplateDefinition {
	out := def
	if def.Items != nil {
		out.Items = make([]models.Item, len(def.Items))
		for i, item := range def.Items {
			out.Items[i] = cloneItem(item)
		}
	}
	out.ResponseOptions = cloneOptions(def.ResponseOptions)
	if def.Subscales != nil {
		out.Subscales = make([]models.Subscale, len(def.Subscales))
		for i, subscale := range def.Subscales {
			out.Subscales[i] = cloneSubscale(subscale)
		}
	}
	if def.InterpretationRules != nil {
		out.InterpretationRules = make([]models.InterpretationRule, len(def.InterpretationRules))
		for i, rule := range def.InterpretationRules {
			out.InterpretationRules[i] = cloneRule(rule)
		}
	}
	return out
}

func cloneItem(item models.Item) models.Item {
	item.ResponseOptions = cloneOptions(item.ResponseOptions)
	return item
}

func cloneOptions(options []models.ResponseOption) []models.ResponseOption {
	if options == nil {
		return nil
	}
	return append([]models.ResponseOption(nil), options...)
}

func cloneSubscale(subscale models.Subscale) models.Subscale {
	if subscale.ItemNumbers != nil {
		subscale.ItemNumbers = append([]int(nil), subscale.ItemNumbers...)
	}
	return subscale
}

func cloneRule(rule models.InterpretationRule) models.InterpretationRule {
	if rule.ProfessionalRecommendations != nil {
		rule.ProfessionalRecommendations = append([]string(nil), rule.ProfessionalRecommendations...)
	}
	if rule.WarningFlags != nil {
		rule.WarningFlags = append([]models.WarningFlagRule(nil), rule.WarningFlags...)
	}
	return rule
}
