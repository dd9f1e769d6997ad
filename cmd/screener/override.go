package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var overrideBy string

var overrideCmd = &cobra.Command{
	Use:   "override <application-id> <stage> <pass|fail>",
	Short: "Force-pass or force-fail a screening stage",
	Long:  `Record an HR decision that overrides the automatic outcome of one stage. The override is stored as its own attempt with no score.`,
	Args:  cobra.ExactArgs(3),
	RunE:  runOverride,
}

func init() {
	overrideCmd.Flags().StringVar(&overrideBy, "by", "", "Email of the HR user recording the override (required)")
	overrideCmd.MarkFlagRequired("by")
	rootCmd.AddCommand(overrideCmd)
}

func runOverride(cmd *cobra.Command, args []string) error {
	appID, err := parseApplicationID(args[0])
	if err != nil {
		return err
	}
	stage, err := parseStageArg(args[1])
	if err != nil {
		return err
	}
	var pass bool
	switch args[2] {
	case "pass":
		pass = true
	case "fail":
		pass = false
	default:
		return fmt.Errorf("action must be pass or fail, got %q", args[2])
	}

	ctx := cmd.Context()
	tk, err := openToolkit(ctx)
	if err != nil {
		return err
	}
	defer tk.close()

	result, err := tk.screener.Override(ctx, appID, stage, pass, overrideBy)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}
