package types

import "time"

// Progress tracks the user's movement through their roadmap.
// Mutated only by the pipeline (on roadmap confirmation) and by
// project-completion events outside this engine.
type Progress struct {
	CompletedProjects int       `json:"completedProjects"`
	CurrentProjectID  string    `json:"currentProjectId,omitempty"`
	SkillsImproved    []string  `json:"skillsImproved"`
	NextGoal          string    `json:"nextGoal,omitempty"`
	CoachFeedback     string    `json:"coachFeedback,omitempty"`
	TotalTimeSpent    int       `json:"totalTimeSpent"` // minutes
	ConversationCount int       `json:"conversationCount"`
	LastActiveAt      time.Time `json:"lastActiveAt"`
}

// EnsureDefaults replaces nil list fields with empty slices.
func (p *Progress) EnsureDefaults() {
	if p.SkillsImproved == nil {
		p.SkillsImproved = []string{}
	}
}
