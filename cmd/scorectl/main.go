package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version sets the default build version
var Version = "develop"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "scorectl",
		Short:        "Score psychometric assessments offline",
		Version:      Version,
		SilenceUsage: true,
	}
	root.AddCommand(newEvaluateCommand())
	root.AddCommand(newCheckCommand())
	return root
}
