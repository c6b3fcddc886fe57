package assessmentResponses

import (
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"strconv"
)

// ResolveResponses turns submitted answers into a response set keyed by item
// number. A value is resolved against the item's options and its score taken
// from the option. A bare score must match one of the option scores. Answers
// carrying neither are treated as skipped.
func ResolveResponses(t *templates.Template, answers []requests.AssessmentAnswer) (models.ResponseSet, error) {
	responses := make(models.ResponseSet, len(answers))
	for _, answer := range answers {
		if !t.HasItem(answer.ItemNumber) {
			return nil, exceptions.ErrUnknownItem(answer.ItemNumber)
		}
		if _, exists := responses[answer.ItemNumber]; exists {
			return nil, exceptions.ErrDuplicateAnswer(answer.ItemNumber)
		}

		response := models.Response{ResponseTimeMs: answer.ResponseTimeMs}
		switch {
		case answer.Skipped, answer.Value == "" && answer.Score == nil:
			response.Skipped = true
		case answer.Value != "":
			option, ok := t.FindOption(answer.ItemNumber, answer.Value)
			if !ok {
				return nil, exceptions.ErrUnknownOptionValue(string(answer.Value), answer.ItemNumber)
			}
			response.Value = option.Value
			response.Score = option.Score
		default:
			option, ok := findOptionByScore(t, answer.ItemNumber, *answer.Score)
			if !ok {
				return nil, exceptions.ErrUnknownOptionValue(strconv.FormatFloat(*answer.Score, 'g', -1, 64), answer.ItemNumber)
			}
			response.Value = option.Value
			response.Score = option.Score
		}
		responses[answer.ItemNumber] = response
	}
	return responses, nil
}

func findOptionByScore(t *templates.Template, itemNumber int, score float64) (models.ResponseOption, bool) {
	for _, option := range t.ResolveResponseOptionsForItem(itemNumber) {
		if option.Score == score {
			return option, true
		}
	}
	return models.ResponseOption{}, false
}

// NewEvaluationContext converts request demographics into engine context.
// It returns nil when no demographics were supplied.
func NewEvaluationContext(request *requests.EvaluationContext) *models.EvaluationContext {
	if request == nil || (request.Age == nil && request.Gender == "") {
		return nil
	}
	return &models.EvaluationContext{
		Demographics: &models.Demographics{
			Age:    request.Age,
			Gender: request.Gender,
		},
	}
}
