package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore engine state from an export",
	Long:  "Replaces all stored state with the contents of a previously exported blob. The import is all-or-nothing: an invalid blob leaves existing state untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importConfigPath string

func init() {
	importCmd.Flags().StringVar(&importConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(importConfigPath)
	if err != nil {
		return err
	}

	blob, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	if err := state.ImportAll(blob); err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}

	fmt.Println("State imported.")
	return nil
}
