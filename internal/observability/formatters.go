// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the user profile
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Role:       %s\n", profile.CurrentRole))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", profile.ExperienceLevel))
	writeList(&sb, "Skills", profile.CurrentSkills)
	writeList(&sb, "Goals", profile.CareerGoals)
	writeList(&sb, "Improvement Areas", profile.ImprovementAreas)
	writeList(&sb, "Workplace Challenges", profile.WorkplaceChallenges)

	p.printBox("User Profile", strings.TrimRight(sb.String(), "\n"))
}

// PrintRoadmap outputs a human-readable summary of a roadmap
func (p *Printer) PrintRoadmap(r *types.Roadmap) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", r.Title))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", r.TotalDuration))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", r.Status))
	sb.WriteString("\nProjects:\n")
	for i, proj := range r.Projects {
		sb.WriteString(fmt.Sprintf("  %d. %s [%s]\n", i+1, proj.Title, proj.Difficulty))
		if len(proj.TargetSkills) > 0 {
			sb.WriteString(fmt.Sprintf("     skills: %s\n", strings.Join(proj.TargetSkills, ", ")))
		}
	}
	if len(r.Milestones) > 0 {
		sb.WriteString("\nMilestones:\n")
		for _, m := range r.Milestones {
			sb.WriteString(fmt.Sprintf("  week %d: %s\n", m.Week, m.Title))
		}
	}

	p.printBox("Roadmap", strings.TrimRight(sb.String(), "\n"))
}

// PrintProgress outputs a human-readable summary of user progress
func (p *Printer) PrintProgress(progress *types.Progress) {
	if progress == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completed projects: %d\n", progress.CompletedProjects))
	sb.WriteString(fmt.Sprintf("Conversations:      %d\n", progress.ConversationCount))
	if progress.NextGoal != "" {
		sb.WriteString(fmt.Sprintf("Next goal:          %s\n", progress.NextGoal))
	}
	writeList(&sb, "Skills improved", progress.SkillsImproved)

	p.printBox("Progress", strings.TrimRight(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
