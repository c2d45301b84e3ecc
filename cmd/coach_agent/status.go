package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show profile, roadmap, and progress",
	RunE:  runStatus,
}

var statusConfigPath string

func init() {
	statusCmd.Flags().StringVar(&statusConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(statusConfigPath)
	if err != nil {
		return err
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	printer := observability.NewPrinter(os.Stdout)

	profile, err := state.Profile()
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile found: run 'coach_agent onboard' first.")
		return nil
	}
	printer.PrintProfile(profile)

	roadmap, err := state.Roadmap()
	if err != nil {
		return err
	}
	if roadmap != nil {
		printer.PrintRoadmap(roadmap)
	} else {
		fmt.Println("No roadmap yet: run 'coach_agent generate'.")
	}

	progress, err := state.Progress()
	if err != nil {
		return err
	}
	printer.PrintProgress(progress)

	needsMigration, err := state.NeedsMigration()
	if err != nil {
		return err
	}
	if needsMigration {
		fmt.Println("Note: stored state predates the current schema version.")
	}
	return nil
}
