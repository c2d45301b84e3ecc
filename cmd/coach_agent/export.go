package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all engine state as JSON",
	Long:  "Writes the full state blob (profile, progress, roadmap, conversation) to stdout or to --out. The blob carries the schema version and can be restored with 'coach_agent import'.",
	RunE:  runExport,
}

var (
	exportConfigPath string
	exportOut        string
)

func init() {
	exportCmd.Flags().StringVar(&exportConfigPath, "config", "", "Path to JSON config file")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(exportConfigPath)
	if err != nil {
		return err
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	blob, err := state.ExportAll()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOut == "" {
		_, err = os.Stdout.Write(append(blob, '\n'))
		return err
	}
	if err := os.WriteFile(exportOut, blob, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	fmt.Printf("State exported to %s\n", exportOut)
	return nil
}
