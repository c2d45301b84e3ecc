package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/types"
)

const minimalRoadmapJSON = `{
  "title": "Growth Roadmap",
  "projects": [
    {
      "title": "Leadership in Practice",
      "targetSkills": ["Leadership"],
      "difficulty": "Advanced"
    }
  ]
}`

func TestParseAcceptsMinimalPayload(t *testing.T) {
	r, err := Parse(minimalRoadmapJSON)
	require.NoError(t, err)

	assert.Equal(t, "Growth Roadmap", r.Title)
	assert.Equal(t, types.RoadmapDraft, r.Status)
	assert.NotEmpty(t, r.ID, "missing id is filled in")

	require.Len(t, r.Projects, 1)
	p := r.Projects[0]
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Scenarios, "empty scenarios are defaulted")
	assert.NotEmpty(t, p.LearningObjectives)
	assert.NotEmpty(t, p.SuccessMetrics)
	assert.NotEmpty(t, p.AIPersonas.Manager.Name)
	assert.NotEmpty(t, p.AIPersonas.Colleagues)
}

func TestParseStripsFencesAndProse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "markdown fence",
			raw:  "```json\n" + minimalRoadmapJSON + "\n```",
		},
		{
			name: "surrounding prose",
			raw:  "Here is your personalized roadmap:\n\n" + minimalRoadmapJSON + "\n\nLet me know what you think!",
		},
		{
			name: "fence plus prose inside",
			raw:  "```\n" + minimalRoadmapJSON + "\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "Growth Roadmap", r.Title)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "no JSON at all",
			raw:  "I'm sorry, I can't help with that.",
		},
		{
			name: "empty input",
			raw:  "",
		},
		{
			name: "missing title",
			raw:  `{"projects": [{"title": "P", "targetSkills": ["x"], "difficulty": "Beginner"}]}`,
		},
		{
			name: "no projects",
			raw:  `{"title": "Roadmap", "projects": []}`,
		},
		{
			name: "empty target skills",
			raw:  `{"title": "Roadmap", "projects": [{"title": "P", "targetSkills": [], "difficulty": "Beginner"}]}`,
		},
		{
			name: "invalid difficulty",
			raw:  `{"title": "Roadmap", "projects": [{"title": "P", "targetSkills": ["x"], "difficulty": "Impossible"}]}`,
		},
		{
			name: "truncated JSON",
			raw:  `{"title": "Roadmap", "projects": [{"title": "P"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)
			assert.Equal(t, llm.KindParseFailure, llm.KindOf(err))
		})
	}
}

func TestParseStatusAlwaysDraft(t *testing.T) {
	raw := `{
	  "title": "Roadmap",
	  "status": "active",
	  "projects": [{"title": "P", "targetSkills": ["x"], "difficulty": "Beginner"}]
	}`

	r, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, types.RoadmapDraft, r.Status, "parsed roadmaps enter as drafts regardless of claimed status")
}
