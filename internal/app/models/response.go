package models

// Response is a patient's answer to a single item.
type Response struct {
	Value          OptionValue `json:"value" bson:"value"`
	Score          float64     `json:"score" bson:"score"`
	ResponseTimeMs *float64    `json:"responseTimeMs,omitempty" bson:"response_time_ms,omitempty"`
	Skipped        bool        `json:"skipped,omitempty" bson:"skipped,omitempty"`
}

// ResponseSet maps item numbers to responses for one administration.
// Items missing from the map are treated as skipped.
type ResponseSet map[int]Response

// Answered reports whether the item has a non-skipped response.
func (rs ResponseSet) Answered(itemNumber int) (Response, bool) {
	response, ok := rs[itemNumber]
	if !ok || response.Skipped {
		return Response{}, false
	}
	return response, true
}

type Demographics struct {
	Age    *int   `json:"age,omitempty" bson:"age,omitempty"`
	Gender string `json:"gender,omitempty" bson:"gender,omitempty"`
}

// EvaluationContext carries optional information about the respondent.
type EvaluationContext struct {
	Demographics *Demographics `json:"demographics,omitempty" bson:"demographics,omitempty"`
}
