package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/screening"
)

var rerunCmd = &cobra.Command{
	Use:     "rerun <application-id> <stage>",
	Aliases: []string{"evaluate"},
	Short:   "Re-run a screening stage for an application",
	Long:    `Re-run the automatic evaluation of one stage. The re-run appends a new attempt; previous attempts are kept for audit.`,
	Args:    cobra.ExactArgs(2),
	RunE:    runRerun,
}

func init() {
	rootCmd.AddCommand(rerunCmd)
}

func runRerun(cmd *cobra.Command, args []string) error {
	appID, err := parseApplicationID(args[0])
	if err != nil {
		return err
	}
	stage, err := parseStageArg(args[1])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tk, err := openToolkit(ctx)
	if err != nil {
		return err
	}
	defer tk.close()

	result, err := tk.screener.RerunStage(ctx, appID, stage)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// printResult prints the outcome of a completed stage attempt.
func printResult(result *screening.StageResult) {
	printer := observability.NewPrinter(os.Stdout)
	if result.Stage != nil {
		printer.PrintVerdict(result.Verdict, result.Stage.Score, result.Stage.PassingThreshold)
		printer.PrintEvaluation(result.Stage)
	}
	if result.Application != nil {
		printer.PrintApplication(result.Application, nil)
	}
}
