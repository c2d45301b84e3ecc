// Package types provides type definitions for structured data used throughout the career-coach engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SchemaVersion is the current version of the persisted state layout.
// Stored alongside the data so older exports can be detected on import.
const SchemaVersion = 2

// ExperienceLevel buckets a user's professional experience
type ExperienceLevel string

// Experience level constants, ordered from least to most experienced
const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Profile represents the user's onboarding-derived skill/goal/challenge record.
// Once onboarding completes every list field is non-nil (possibly empty);
// EnsureDefaults enforces that after any decode.
type Profile struct {
	Name                  string          `json:"name" validate:"required"`
	Email                 string          `json:"email,omitempty"`
	CurrentRole           string          `json:"currentRole,omitempty"`
	ExperienceLevel       ExperienceLevel `json:"experienceLevel" validate:"required,oneof=entry junior mid senior"`
	CurrentSkills         []string        `json:"currentSkills"`
	CareerGoals           []string        `json:"careerGoals"`
	ImprovementAreas      []string        `json:"improvementAreas"`
	WorkplaceChallenges   []string        `json:"workplaceChallenges"`
	CommunicationConcerns []string        `json:"communicationConcerns"`
	AvailableTime         string          `json:"availableTime,omitempty"`
	LearningStyle         string          `json:"learningStyle,omitempty"`
	PreferredProjectTypes []string        `json:"preferredProjectTypes"`
	CompletedAt           time.Time       `json:"completedAt"`
	SchemaVersion         int             `json:"schemaVersion"`
}

// EnsureDefaults replaces nil list fields with empty slices and stamps the
// schema version if unset. Decoded JSON may omit lists entirely; downstream
// code relies on them being non-nil.
func (p *Profile) EnsureDefaults() {
	if p.CurrentSkills == nil {
		p.CurrentSkills = []string{}
	}
	if p.CareerGoals == nil {
		p.CareerGoals = []string{}
	}
	if p.ImprovementAreas == nil {
		p.ImprovementAreas = []string{}
	}
	if p.WorkplaceChallenges == nil {
		p.WorkplaceChallenges = []string{}
	}
	if p.CommunicationConcerns == nil {
		p.CommunicationConcerns = []string{}
	}
	if p.PreferredProjectTypes == nil {
		p.PreferredProjectTypes = []string{}
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = SchemaVersion
	}
}
