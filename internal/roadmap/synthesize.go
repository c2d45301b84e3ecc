// Package roadmap builds learning roadmaps: deterministically from a profile
// (the fallback path that never touches the network) and by parsing the
// completion service's quasi-JSON output (the LLM path). Both share the same
// target schema and invariants.
package roadmap

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/types"
)

// idNamespace seeds deterministic v5 UUIDs so Synthesize stays a pure
// function of the profile.
var idNamespace = uuid.MustParse("f2f1b8a0-7c43-5b9e-9d35-1f4a6f0c2d11")

// maxScenarios caps scenario strings derived from workplace challenges
const maxScenarios = 4

// Defaults substituted when a profile list is empty, so the output always
// satisfies the roadmap invariants.
var (
	defaultFocusArea  = "Professional Communication"
	defaultChallenge  = "Presenting work to stakeholders"
	defaultGoal       = "Grow into a more senior role"
	defaultObjectives = []string{
		"Practice the focus skill in a realistic workplace setting",
		"Receive and incorporate structured feedback",
	}
)

// Synthesize builds a roadmap from the profile alone. It always succeeds,
// never calls the network, and guarantees at least one project with every
// required list non-empty.
func Synthesize(profile *types.Profile) *types.Roadmap {
	p := *profile
	p.EnsureDefaults()

	difficulty := difficultyFor(p.ExperienceLevel)
	areas := improvementAreas(&p)
	scenarios := scenariosFor(&p)

	projects := make([]types.Project, 0, len(areas))
	for i, area := range areas {
		projects = append(projects, buildProject(&p, i, area, difficulty, scenarios))
	}

	r := &types.Roadmap{
		ID:            deterministicID("roadmap", p.Name, string(p.ExperienceLevel)),
		Title:         fmt.Sprintf("%s Development Roadmap", levelTitle(p.ExperienceLevel)),
		Description:   fmt.Sprintf("A personalized sequence of workplace projects focused on %s.", strings.ToLower(joinNatural(areas))),
		TotalDuration: fmt.Sprintf("%d weeks", 4*len(projects)),
		Projects:      projects,
		Milestones:    milestonesFor(areas),
		Status:        types.RoadmapDraft,
	}
	r.EnsureDefaults()
	return r
}

// difficultyFor maps experience to difficulty. This correlation is
// synthesizer policy, not a validated invariant: parsed LLM roadmaps may
// declare any tier.
func difficultyFor(level types.ExperienceLevel) types.Difficulty {
	switch level {
	case types.ExperienceMid:
		return types.DifficultyIntermediate
	case types.ExperienceSenior:
		return types.DifficultyAdvanced
	default:
		return types.DifficultyBeginner
	}
}

// improvementAreas returns the areas to build projects around, at most three,
// falling back to career goals and then a default.
func improvementAreas(p *types.Profile) []string {
	areas := make([]string, 0, 3)
	for _, a := range p.ImprovementAreas {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
		if len(areas) == 3 {
			return areas
		}
	}
	if len(areas) == 0 {
		for _, g := range p.CareerGoals {
			if g = strings.TrimSpace(g); g != "" {
				areas = append(areas, g)
				break
			}
		}
	}
	if len(areas) == 0 {
		areas = append(areas, defaultFocusArea)
	}
	return areas
}

// scenariosFor derives one scenario string per workplace challenge, capped
func scenariosFor(p *types.Profile) []string {
	scenarios := make([]string, 0, maxScenarios)
	for _, c := range p.WorkplaceChallenges {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		scenarios = append(scenarios, scenarioFromChallenge(c))
		if len(scenarios) == maxScenarios {
			break
		}
	}
	if len(scenarios) == 0 {
		scenarios = append(scenarios, scenarioFromChallenge(defaultChallenge))
	}
	return scenarios
}

func scenarioFromChallenge(challenge string) string {
	r, size := utf8.DecodeRuneInString(challenge)
	return fmt.Sprintf("Work through a realistic situation involving %c%s.",
		unicode.ToLower(r), challenge[size:])
}

func levelTitle(level types.ExperienceLevel) string {
	switch level {
	case types.ExperienceEntry:
		return "Foundations"
	case types.ExperienceJunior:
		return "Early Career"
	case types.ExperienceMid:
		return "Mid-Career"
	case types.ExperienceSenior:
		return "Leadership"
	default:
		return "Career"
	}
}

func buildProject(p *types.Profile, index int, area string, difficulty types.Difficulty, scenarios []string) types.Project {
	skills := []string{area}
	for _, s := range p.CurrentSkills {
		if s = strings.TrimSpace(s); s != "" && !strings.EqualFold(s, area) {
			skills = append(skills, s)
			break
		}
	}

	objectives := make([]string, 0, len(defaultObjectives)+1)
	objectives = append(objectives, fmt.Sprintf("Demonstrate measurable improvement in %s", area))
	objectives = append(objectives, defaultObjectives...)

	metrics := []string{
		fmt.Sprintf("Complete all %s scenarios with positive persona feedback", strings.ToLower(string(difficulty))),
		"Apply at least one technique from coach feedback in a later scenario",
	}

	return types.Project{
		ID:                 deterministicID("project", p.Name, area),
		Title:              fmt.Sprintf("%s in Practice", area),
		Description:        fmt.Sprintf("A simulated workplace project where you exercise %s with an AI manager and colleagues.", strings.ToLower(area)),
		TargetSkills:       skills,
		Duration:           "2 weeks",
		Difficulty:         difficulty,
		Scenarios:          scenarios,
		LearningObjectives: objectives,
		SuccessMetrics:     metrics,
		AIPersonas:         personasFor(index),
	}
}

// personasFor returns one manager and at least one colleague per project,
// rotating through a fixed cast so consecutive projects feel distinct.
func personasFor(index int) types.Personas {
	managers := []types.ManagerPersona{
		{Name: "Dana Whitfield", Personality: "direct, outcome-focused, fair", Focus: "delivery and prioritization"},
		{Name: "Marcus Osei", Personality: "supportive, asks probing questions", Focus: "growth and reflection"},
		{Name: "Ingrid Hale", Personality: "detail-oriented, high standards", Focus: "quality and clarity"},
	}
	colleagues := [][]types.ColleaguePersona{
		{
			{Name: "Priya Raman", Personality: "collaborative, occasionally overcommitted", Role: "peer engineer"},
			{Name: "Tom Keller", Personality: "skeptical, values data", Role: "product analyst"},
		},
		{
			{Name: "Sofia Mendes", Personality: "enthusiastic, new to the team", Role: "junior teammate"},
		},
		{
			{Name: "Alex Novak", Personality: "blunt, deep domain knowledge", Role: "staff engineer"},
			{Name: "Wei Lin", Personality: "diplomatic, cross-team connector", Role: "program manager"},
		},
	}
	return types.Personas{
		Manager:    managers[index%len(managers)],
		Colleagues: colleagues[index%len(colleagues)],
	}
}

func milestonesFor(areas []string) []types.Milestone {
	milestones := make([]types.Milestone, 0, len(areas))
	for i, area := range areas {
		milestones = append(milestones, types.Milestone{
			Week:           (i + 1) * 2,
			Title:          fmt.Sprintf("Checkpoint: %s", area),
			ExpectedSkills: []string{area},
			AssessmentType: "scenario review",
		})
	}
	return milestones
}

func deterministicID(kind string, parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(kind+"|"+strings.Join(parts, "|"))).String()
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
