package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/observability"
)

var statusShowEvaluations bool

var statusCmd = &cobra.Command{
	Use:   "status <application-id>",
	Short: "Show an application's status and stage attempts",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusShowEvaluations, "evaluations", false, "Also print the stored evaluation payload of each attempt")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	appID, err := parseApplicationID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tk, err := openToolkit(ctx)
	if err != nil {
		return err
	}
	defer tk.close()

	app, stages, err := tk.screener.GetApplication(ctx, appID)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintApplication(app, stages)

	if statusShowEvaluations {
		for i := range stages {
			printer.PrintEvaluation(&stages[i])
		}
	}
	return nil
}
