package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompts(t *testing.T) {
	for _, key := range []string{"coach-preamble", "chat", "roadmap"} {
		t.Run(key, func(t *testing.T) {
			prompt, err := Get("coach.json", key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGetMissing(t *testing.T) {
	_, err := Get("coach.json", "nonexistent")
	assert.Error(t, err)

	_, err = Get("missing.json", "chat")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("coach.json", "nonexistent")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, you said: {{.Message}}", map[string]string{
		"Name":    "Alex",
		"Message": "hi",
	})
	assert.Equal(t, "Hello Alex, you said: hi", result)
}

func TestChatPromptPlaceholders(t *testing.T) {
	chat := MustGet("coach.json", "chat")
	for _, placeholder := range []string{"{{.Preamble}}", "{{.ProfileSummary}}", "{{.History}}", "{{.Message}}"} {
		assert.True(t, strings.Contains(chat, placeholder), "chat prompt missing %s", placeholder)
	}
}

func TestRoadmapPromptPlaceholders(t *testing.T) {
	roadmap := MustGet("coach.json", "roadmap")
	assert.Contains(t, roadmap, "{{.ProfileSummary}}")
}
