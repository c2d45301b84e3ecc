package coach

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
)

// historyWindow is the number of recent turns included in a chat prompt.
// The full log is retained in the store; only the prompt window is bounded,
// to keep token cost flat as conversations grow.
const historyWindow = 4

// buildChatPrompt assembles the coach prompt: fixed preamble, profile dump,
// the last historyWindow turns, and the new message. Pure string
// construction; identical inputs produce identical prompts.
func buildChatPrompt(profile *types.Profile, history []types.ConversationMessage, message string) string {
	template := prompts.MustGet("coach.json", "chat")
	return prompts.Format(template, map[string]string{
		"Preamble":       prompts.MustGet("coach.json", "coach-preamble"),
		"ProfileSummary": profileSummary(profile),
		"History":        formatHistory(history),
		"Message":        message,
	})
}

// buildRoadmapPrompt assembles the roadmap-generation prompt
func buildRoadmapPrompt(profile *types.Profile) string {
	template := prompts.MustGet("coach.json", "roadmap")
	return prompts.Format(template, map[string]string{
		"ProfileSummary": profileSummary(profile),
	})
}

// profileSummary renders the profile fields relevant to coaching as a
// compact labelled block
func profileSummary(profile *types.Profile) string {
	p := *profile
	p.EnsureDefaults()

	var sb strings.Builder
	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "- %s: %s\n", label, value)
		}
	}

	writeField("Name", p.Name)
	writeField("Current role", p.CurrentRole)
	writeField("Experience level", string(p.ExperienceLevel))
	writeField("Skills", strings.Join(p.CurrentSkills, ", "))
	writeField("Career goals", strings.Join(p.CareerGoals, ", "))
	writeField("Areas to improve", strings.Join(p.ImprovementAreas, ", "))
	writeField("Workplace challenges", strings.Join(p.WorkplaceChallenges, ", "))
	writeField("Communication concerns", strings.Join(p.CommunicationConcerns, ", "))
	writeField("Time available", p.AvailableTime)
	writeField("Learning style", p.LearningStyle)
	writeField("Preferred project types", strings.Join(p.PreferredProjectTypes, ", "))

	if sb.Len() == 0 {
		return "- (profile not yet filled in)"
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatHistory renders the last historyWindow turns oldest-first
func formatHistory(history []types.ConversationMessage) string {
	if len(history) == 0 {
		return "(no prior conversation)"
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var sb strings.Builder
	for _, msg := range history {
		role := "User"
		if msg.Sender == types.SenderCoach {
			role = "Coach"
		}
		fmt.Fprintf(&sb, "%s: %s\n", role, msg.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
