package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"

	"github.com/fatih/color"
)

func severityColor(severity models.Severity) *color.Color {
	switch severity {
	case models.SeverityMinimal:
		return color.New(color.FgGreen)
	case models.SeverityMild:
		return color.New(color.FgCyan)
	case models.SeverityModerate:
		return color.New(color.FgYellow)
	case models.SeveritySevere, models.SeverityVerySevere:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgMagenta)
	}
}

func flagColor(flagType models.FlagType) *color.Color {
	switch flagType {
	case models.FlagTypeCritical, models.FlagTypeError:
		return color.New(color.FgRed, color.Bold)
	case models.FlagTypeWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func renderResult(w io.Writer, template *templates.Template, result models.AssessmentResult) {
	heading := color.New(color.FgCyan, color.Bold)
	interpretation := result.Interpretation

	heading.Fprintf(w, "%s (%s)\n", template.Name(), template.Key())
	fmt.Fprintf(w, "Total score:   %g / %g\n", result.TotalScore, template.Scoring().TotalScoreRange.Max)
	fmt.Fprintf(w, "Completion:    %.1f%%\n", result.CompletionPercentage)
	fmt.Fprint(w, "Severity:      ")
	severityColor(interpretation.Severity).Fprintf(w, "%s (%s)\n", interpretation.Label, interpretation.Severity)
	fmt.Fprintf(w, "Validity:      %s (%.0f)\n", result.ValidityIndicators.ValidityLevel, result.ValidityIndicators.OverallValidityScore)
	fmt.Fprintf(w, "Confidence:    %s (%.2f)\n", interpretation.InterpretationConfidence.Level, interpretation.InterpretationConfidence.Score)

	if len(result.SubscaleScores) > 0 {
		heading.Fprintln(w, "\nSubscales")
		ids := make([]string, 0, len(result.SubscaleScores))
		for id := range result.SubscaleScores {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			score := result.SubscaleScores[id]
			fmt.Fprintf(w, "  %-20s %g / %g (%.0f%% complete)\n", id, score.Score, score.ScoreRange.Max, score.CompletionPercentage)
		}
	}

	if len(interpretation.WarningFlags) > 0 {
		heading.Fprintln(w, "\nFlags")
		for _, flag := range interpretation.WarningFlags {
			flagColor(flag.Type).Fprintf(w, "  [%s] ", strings.ToUpper(string(flag.Type)))
			fmt.Fprintln(w, flag.Message)
		}
	}

	if interpretation.ClinicalInterpretation != "" {
		heading.Fprintln(w, "\nInterpretation")
		fmt.Fprintf(w, "  %s\n", interpretation.ClinicalInterpretation)
	}

	recommendations := append(append([]string(nil), interpretation.ProfessionalRecommendations...), interpretation.ContextualRecommendations...)
	if len(recommendations) > 0 {
		heading.Fprintln(w, "\nRecommendations")
		for _, recommendation := range recommendations {
			fmt.Fprintf(w, "  - %s\n", recommendation)
		}
	}
}
