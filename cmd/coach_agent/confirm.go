package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/pipeline"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Activate the roadmap draft",
	RunE:  runConfirm,
}

var confirmConfigPath string

func init() {
	confirmCmd.Flags().StringVar(&confirmConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(confirmConfigPath)
	if err != nil {
		return err
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	client := newCompleter(ctx, cfg)
	defer func() { _ = client.Close() }()

	pipe := pipeline.New(client, state, pipeline.Options{})
	if err := pipe.Confirm(); err != nil {
		if errors.Is(err, pipeline.ErrNoDraft) {
			return fmt.Errorf("no roadmap draft found: run 'coach_agent generate' first")
		}
		return err
	}

	fmt.Println("Roadmap is now active.")
	return nil
}
