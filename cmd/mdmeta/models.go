package main

import (
	"fmt"

	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"

	"github.com/spf13/cobra"
)

var checkInstalled bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported models and their prompt budgets",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().BoolVar(&checkInstalled, "installed", false, "Also ask the backend whether each model is installed")
}

func runModels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !checkInstalled {
		for _, m := range prompt.Models() {
			fmt.Fprintf(out, "%-20s%d\n", m, m.Budget())
		}
		return nil
	}

	client, err := newCompletionClient(adapter)
	if err != nil {
		return err
	}
	for _, m := range prompt.Models() {
		ok, err := client.ModelAvailable(cmd.Context(), m.String())
		if err != nil {
			return err
		}
		status := "missing"
		if ok {
			status = "installed"
		}
		fmt.Fprintf(out, "%-20s%-10d%s\n", m, m.Budget(), status)
	}
	return nil
}
