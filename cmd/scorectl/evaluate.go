package main

import (
	"fmt"
	"os"

	assessmentResponses "konsulin-assessment-engine/internal/app/services/core/assessment_responses"
	"konsulin-assessment-engine/internal/app/services/core/evaluations"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type evaluateOptions struct {
	templatePath  string
	responsesPath string
	age           int
	asJSON        bool
	verbose       bool
}

func newEvaluateCommand() *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a response file against a template definition",
		Long: `Evaluate scores a set of answers with the given template and prints the
severity, validity indicators and recommendations. The responses file uses the
same JSON body as the evaluation endpoint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.templatePath, "template", "t", "", "template definition file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&opts.responsesPath, "responses", "r", "", "responses file (JSON)")
	cmd.Flags().IntVar(&opts.age, "age", -1, "respondent age, overrides the responses file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log engine diagnostics to stderr")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("responses")
	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	template, err := templates.LoadTemplateFile(opts.templatePath)
	if err != nil {
		return err
	}

	request, err := loadEvaluateRequest(opts.responsesPath)
	if err != nil {
		return err
	}
	if opts.age >= 0 {
		age := opts.age
		if request.Context == nil {
			request.Context = &requests.EvaluationContext{}
		}
		request.Context.Age = &age
	}
	request.TemplateID = template.ID()
	request.TemplateVersion = template.Version()
	utils.SanitizeEvaluateAssessmentRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	responses, err := assessmentResponses.ResolveResponses(template, request.Answers)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if opts.verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	evaluator := evaluations.NewEvaluator(log, nil, nil)
	result := evaluator.Evaluate(template, responses, assessmentResponses.NewEvaluationContext(request.Context))

	out := cmd.OutOrStdout()
	if opts.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	renderResult(out, template, result)
	return nil
}

func loadEvaluateRequest(path string) (*requests.EvaluateAssessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exceptions.ErrCannotReadFile(err, path)
	}
	request := new(requests.EvaluateAssessment)
	if err := json.Unmarshal(data, request); err != nil {
		return nil, exceptions.ErrCannotParseJSON(fmt.Errorf("%s: %w", path, err))
	}
	return request, nil
}
