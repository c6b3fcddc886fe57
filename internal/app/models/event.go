package models

import "time"

// EvaluationEvent is published after an evaluation has been stored.
type EvaluationEvent struct {
	EventType       string        `json:"event_type"`
	EvaluationID    string        `json:"evaluation_id"`
	PatientID       string        `json:"patient_id,omitempty"`
	TemplateID      string        `json:"template_id"`
	TemplateVersion string        `json:"template_version"`
	TotalScore      float64       `json:"total_score"`
	Severity        Severity      `json:"severity"`
	ValidityLevel   ValidityLevel `json:"validity_level"`
	CriticalFlags   int           `json:"critical_flags"`
	ReportPath      string        `json:"report_path,omitempty"`
	OccurredAt      time.Time     `json:"occurred_at"`
}
