package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/pipeline"
	"github.com/jonathan/career-coach/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a personalized roadmap",
	Long:  "Runs the staged generation workflow (analyzing, generating, complete) against the stored profile and saves the result as a draft. Falls back to deterministic synthesis when the completion service is unavailable. Use --confirm to activate the draft immediately.",
	RunE:  runGenerate,
}

var (
	generateConfigPath string
	generateConfirm    bool
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to JSON config file")
	generateCmd.Flags().BoolVar(&generateConfirm, "confirm", false, "Activate the draft immediately after generation")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print the full roadmap after generation")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(generateConfigPath)
	if err != nil {
		return err
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	profile, err := state.Profile()
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile found: run 'coach_agent onboard' first")
	}

	client := newCompleter(ctx, cfg)
	defer func() { _ = client.Close() }()

	pipe := pipeline.New(client, state, pipeline.Options{
		AnalyzeDwell: cfg.AnalyzeDwell(),
		OnProgress: func(e pipeline.ProgressEvent) {
			fmt.Printf("[%3d%%] %s\n", e.Percent, e.Message)
			if e.Fallback {
				fmt.Println("       (completion service unavailable; used local synthesis)")
			}
		},
	})

	result, err := pipe.Run(ctx, profile)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateConfirm {
		if err := pipe.Confirm(); err != nil {
			return fmt.Errorf("failed to confirm roadmap: %w", err)
		}
		result.Status = types.RoadmapActive
		fmt.Println("Roadmap confirmed and active.")
	} else {
		fmt.Println("Roadmap saved as draft. Run 'coach_agent confirm' to activate it.")
	}

	if generateVerbose {
		observability.NewPrinter(os.Stdout).PrintRoadmap(result)
	}
	return nil
}
