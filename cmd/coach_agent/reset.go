package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all engine state",
	Long:  "Removes the profile, progress, roadmap, conversation log, and any cached entries. Asks for confirmation unless --yes is given.",
	RunE:  runReset,
}

var (
	resetConfigPath string
	resetYes        bool
)

func init() {
	resetCmd.Flags().StringVar(&resetConfigPath, "config", "", "Path to JSON config file")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(resetConfigPath)
	if err != nil {
		return err
	}

	if !resetYes {
		fmt.Print("This deletes all stored state. Continue? [y/N] ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return scanner.Err()
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	if err := state.Reset(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Println("State reset.")
	return nil
}
