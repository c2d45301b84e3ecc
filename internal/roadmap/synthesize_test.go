package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/types"
)

func seniorProfile() *types.Profile {
	return &types.Profile{
		Name:             "Jordan",
		ExperienceLevel:  types.ExperienceSenior,
		CurrentSkills:    []string{"System design"},
		ImprovementAreas: []string{"Leadership"},
		WorkplaceChallenges: []string{
			"Running tense design reviews",
			"Delegating without micromanaging",
		},
	}
}

func TestSynthesizeSeniorProfile(t *testing.T) {
	r := Synthesize(seniorProfile())

	require.NotEmpty(t, r.Projects)
	first := r.Projects[0]

	assert.Equal(t, types.DifficultyAdvanced, first.Difficulty)
	assert.Contains(t, first.TargetSkills, "Leadership")
	assert.Len(t, first.Scenarios, 2, "one scenario per workplace challenge")
	assert.Equal(t, types.RoadmapDraft, r.Status)
}

func TestSynthesizeDifficultyByLevel(t *testing.T) {
	tests := []struct {
		level types.ExperienceLevel
		want  types.Difficulty
	}{
		{types.ExperienceEntry, types.DifficultyBeginner},
		{types.ExperienceJunior, types.DifficultyBeginner},
		{types.ExperienceMid, types.DifficultyIntermediate},
		{types.ExperienceSenior, types.DifficultyAdvanced},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			r := Synthesize(&types.Profile{Name: "A", ExperienceLevel: tt.level})
			require.NotEmpty(t, r.Projects)
			assert.Equal(t, tt.want, r.Projects[0].Difficulty)
		})
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	a := Synthesize(seniorProfile())
	b := Synthesize(seniorProfile())
	assert.Equal(t, a, b)
}

func TestSynthesizeEmptyProfileStillValid(t *testing.T) {
	r := Synthesize(&types.Profile{Name: "Sam"})

	require.Len(t, r.Projects, 1, "default focus area yields one project")
	p := r.Projects[0]

	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.TargetSkills)
	assert.NotEmpty(t, p.Scenarios)
	assert.NotEmpty(t, p.LearningObjectives)
	assert.NotEmpty(t, p.SuccessMetrics)
	assert.NotEmpty(t, p.AIPersonas.Manager.Name)
	assert.NotEmpty(t, p.AIPersonas.Colleagues)
}

func TestSynthesizeCapsProjectsAtThree(t *testing.T) {
	profile := &types.Profile{
		Name:             "Kim",
		ExperienceLevel:  types.ExperienceMid,
		ImprovementAreas: []string{"A", "B", "C", "D", "E"},
	}

	r := Synthesize(profile)
	assert.Len(t, r.Projects, 3)
	assert.Len(t, r.Milestones, 3)
}

func TestSynthesizeScenarioCap(t *testing.T) {
	profile := &types.Profile{
		Name:                "Lee",
		ExperienceLevel:     types.ExperienceJunior,
		WorkplaceChallenges: []string{"One", "Two", "Three", "Four", "Five", "Six"},
	}

	r := Synthesize(profile)
	require.NotEmpty(t, r.Projects)
	assert.Len(t, r.Projects[0].Scenarios, maxScenarios)
}

func TestSynthesizeFallsBackToGoals(t *testing.T) {
	profile := &types.Profile{
		Name:            "Ada",
		ExperienceLevel: types.ExperienceEntry,
		CareerGoals:     []string{"Move into product management"},
	}

	r := Synthesize(profile)
	require.Len(t, r.Projects, 1)
	assert.Contains(t, r.Projects[0].TargetSkills, "Move into product management")
}

func TestPersonasRotate(t *testing.T) {
	first := personasFor(0)
	second := personasFor(1)

	assert.NotEqual(t, first.Manager.Name, second.Manager.Name)
	assert.NotEmpty(t, first.Colleagues)
	assert.NotEmpty(t, second.Colleagues)
}

func TestJoinNatural(t *testing.T) {
	assert.Equal(t, "", joinNatural(nil))
	assert.Equal(t, "a", joinNatural([]string{"a"}))
	assert.Equal(t, "a and b", joinNatural([]string{"a", "b"}))
	assert.Equal(t, "a, b, and c", joinNatural([]string{"a", "b", "c"}))
}
