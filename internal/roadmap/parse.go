package roadmap

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
)

var validate = validator.New()

// Parse attempts to decode a roadmap from free text returned by the
// completion service. The text is untrusted: it may wrap JSON in markdown
// fences, surround it with prose, or not contain a payload at all.
//
// Order is strict: locate the payload, validate it against the JSON Schema,
// decode, normalize, then validate the struct invariants. Any failure returns
// a classified ParseFailure; callers fall back to Synthesize. Parse never
// panics past this boundary.
func Parse(rawText string) (*types.Roadmap, error) {
	payload, err := locatePayload(rawText)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateRoadmap(payload); err != nil {
		return nil, &llm.Error{Kind: llm.KindParseFailure, Message: "roadmap payload failed schema validation", Cause: err}
	}

	var r types.Roadmap
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, &llm.Error{Kind: llm.KindParseFailure, Message: "failed to decode roadmap JSON", Cause: err}
	}

	normalize(&r)

	if err := validate.Struct(&r); err != nil {
		return nil, &llm.Error{Kind: llm.KindParseFailure, Message: "parsed roadmap violates invariants", Cause: err}
	}
	return &r, nil
}

// locatePayload strips fences and trims surrounding prose down to the
// outermost JSON object.
func locatePayload(rawText string) (string, error) {
	text := llm.CleanJSONBlock(rawText)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", &llm.Error{Kind: llm.KindParseFailure, Message: "no JSON object found in completion output"}
	}
	return text[start : end+1], nil
}

// normalize fills the gaps the schema tolerates: ids the model omitted,
// nil lists, and the lists that must be non-empty but commonly arrive empty
// from the model even when instructed otherwise.
func normalize(r *types.Roadmap) {
	r.EnsureDefaults()
	r.Status = types.RoadmapDraft

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	for i := range r.Projects {
		p := &r.Projects[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if len(p.Scenarios) == 0 {
			p.Scenarios = []string{scenarioFromChallenge(defaultChallenge)}
		}
		if len(p.LearningObjectives) == 0 {
			p.LearningObjectives = append([]string{}, defaultObjectives...)
		}
		if len(p.SuccessMetrics) == 0 {
			p.SuccessMetrics = []string{"Complete every scenario with positive persona feedback"}
		}
		if p.AIPersonas.Manager.Name == "" {
			p.AIPersonas.Manager = personasFor(i).Manager
		}
		if len(p.AIPersonas.Colleagues) == 0 {
			p.AIPersonas.Colleagues = personasFor(i).Colleagues
		}
	}
}
