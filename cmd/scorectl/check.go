package main

import (
	"fmt"

	"konsulin-assessment-engine/internal/app/services/core/templates"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <definition-file>...",
		Short: "Validate template definition files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	failed := 0
	for _, path := range args {
		template, err := templates.LoadTemplateFile(path)
		if err != nil {
			failed++
			red.Fprintf(out, "FAIL ")
			fmt.Fprintf(out, "%s: %v\n", path, err)
			continue
		}
		green.Fprintf(out, "OK   ")
		fmt.Fprintf(out, "%s: %s, %d items, %d subscales, %d rules, maturity %s\n",
			path, template.Key(), template.ItemCount(), len(template.Subscales()), len(template.Rules()), template.Maturity())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d definitions are invalid", failed, len(args))
	}
	return nil
}
