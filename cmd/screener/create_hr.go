package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/db"
)

var (
	createHREmail    string
	createHRName     string
	createHRPassword string
)

var createHRCmd = &cobra.Command{
	Use:   "create-hr",
	Short: "Create an HR user account",
	Long:  `Create an HR user that can authenticate against the HR endpoints. The password is hashed with bcrypt before storage.`,
	RunE:  runCreateHR,
}

func init() {
	createHRCmd.Flags().StringVar(&createHREmail, "email", "", "Email address (required)")
	createHRCmd.Flags().StringVar(&createHRName, "name", "", "Display name (required)")
	createHRCmd.Flags().StringVar(&createHRPassword, "password", "", "Initial password (required)")
	createHRCmd.MarkFlagRequired("email")
	createHRCmd.MarkFlagRequired("name")
	createHRCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createHRCmd)
}

func runCreateHR(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	passwordCfg, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to load password config: %w", err)
	}
	hash, err := passwordCfg.HashPassword(createHRPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	user, err := database.CreateHRUser(ctx, createHREmail, createHRName, hash)
	if err != nil {
		return fmt.Errorf("failed to create HR user: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Created HR user %s (%s)\n", user.Email, user.ID)
	return nil
}
