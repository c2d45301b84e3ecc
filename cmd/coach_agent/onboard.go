package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/types"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create or replace the user profile",
	Long:  "Stores the profile that drives roadmap generation and coaching. Provide a JSON file with --file, or set fields with flags; flags override file values.",
	RunE:  runOnboard,
}

var (
	onboardConfigPath string
	onboardFile       string
	onboardName       string
	onboardRole       string
	onboardLevel      string
	onboardSkills     []string
	onboardGoals      []string
	onboardAreas      []string
	onboardChallenges []string
)

func init() {
	onboardCmd.Flags().StringVar(&onboardConfigPath, "config", "", "Path to JSON config file")
	onboardCmd.Flags().StringVarP(&onboardFile, "file", "f", "", "Path to a profile JSON file")
	onboardCmd.Flags().StringVar(&onboardName, "name", "", "User name")
	onboardCmd.Flags().StringVar(&onboardRole, "role", "", "Current role")
	onboardCmd.Flags().StringVar(&onboardLevel, "level", "", "Experience level (entry|junior|mid|senior)")
	onboardCmd.Flags().StringSliceVar(&onboardSkills, "skill", nil, "Current skill (repeatable)")
	onboardCmd.Flags().StringSliceVar(&onboardGoals, "goal", nil, "Career goal (repeatable)")
	onboardCmd.Flags().StringSliceVar(&onboardAreas, "improve", nil, "Improvement area (repeatable)")
	onboardCmd.Flags().StringSliceVar(&onboardChallenges, "challenge", nil, "Workplace challenge (repeatable)")

	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(onboardConfigPath)
	if err != nil {
		return err
	}

	var profile types.Profile
	if onboardFile != "" {
		data, err := os.ReadFile(onboardFile)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		if err := json.Unmarshal(data, &profile); err != nil {
			return fmt.Errorf("failed to parse profile JSON: %w", err)
		}
	}

	if onboardName != "" {
		profile.Name = onboardName
	}
	if onboardRole != "" {
		profile.CurrentRole = onboardRole
	}
	if onboardLevel != "" {
		profile.ExperienceLevel = types.ExperienceLevel(onboardLevel)
	}
	if len(onboardSkills) > 0 {
		profile.CurrentSkills = onboardSkills
	}
	if len(onboardGoals) > 0 {
		profile.CareerGoals = onboardGoals
	}
	if len(onboardAreas) > 0 {
		profile.ImprovementAreas = onboardAreas
	}
	if len(onboardChallenges) > 0 {
		profile.WorkplaceChallenges = onboardChallenges
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	if err := state.SetProfile(&profile); err != nil {
		return fmt.Errorf("profile rejected: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(&profile)
	fmt.Println("Profile saved.")
	return nil
}
