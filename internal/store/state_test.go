package store

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/types"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func testProfile() *types.Profile {
	return &types.Profile{
		Name:             "Alex",
		CurrentRole:      "Software Engineer",
		ExperienceLevel:  types.ExperienceMid,
		CurrentSkills:    []string{"Go", "SQL"},
		CareerGoals:      []string{"Become a tech lead"},
		ImprovementAreas: []string{"Public speaking"},
	}
}

func TestProfileRoundTrip(t *testing.T) {
	state := New(NewMemory())

	got, err := state.Profile()
	require.NoError(t, err)
	assert.Nil(t, got, "profile should be nil before onboarding")

	require.NoError(t, state.SetProfile(testProfile()))

	got, err = state.Profile()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, types.ExperienceMid, got.ExperienceLevel)
	assert.NotNil(t, got.WorkplaceChallenges, "list fields must be non-nil after decode")

	initialized, err := state.Initialized()
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestSetProfileRejectsInvalid(t *testing.T) {
	state := New(NewMemory())

	err := state.SetProfile(&types.Profile{Name: ""})
	assert.Error(t, err)

	err = state.SetProfile(&types.Profile{Name: "Alex", ExperienceLevel: "wizard"})
	assert.Error(t, err)

	initialized, err := state.Initialized()
	require.NoError(t, err)
	assert.False(t, initialized, "rejected profile must not be stored")
}

func TestProgressDefaultsWhenAbsent(t *testing.T) {
	state := New(NewMemory())

	p, err := state.Progress()
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.CompletedProjects)
	assert.NotNil(t, p.SkillsImproved)
}

func TestSetProgressStampsLastActive(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	state := NewWithClock(NewMemory(), clock)

	require.NoError(t, state.SetProgress(&types.Progress{ConversationCount: 3}))

	p, err := state.Progress()
	require.NoError(t, err)
	assert.Equal(t, clock.now, p.LastActiveAt)
}

func TestMutationsTouchLastActive(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	state := NewWithClock(NewMemory(), clock)

	require.NoError(t, state.SetProgress(&types.Progress{}))

	// A later non-progress mutation moves the stamp forward.
	clock.now = clock.now.Add(2 * time.Hour)
	require.NoError(t, state.SetProfile(testProfile()))

	p, err := state.Progress()
	require.NoError(t, err)
	assert.Equal(t, clock.now, p.LastActiveAt)
}

func TestConversationAppendOnly(t *testing.T) {
	state := New(NewMemory())

	msgs, err := state.Conversation()
	require.NoError(t, err)
	assert.Empty(t, msgs)

	first := types.ConversationMessage{ID: "m1", Sender: types.SenderUser, Content: "hello"}
	second := types.ConversationMessage{ID: "m2", Sender: types.SenderCoach, Content: "hi there"}
	require.NoError(t, state.AppendMessage(first))
	require.NoError(t, state.AppendMessage(second))

	msgs, err = state.Conversation()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
}

func TestCacheUsesRegisteredPrefixes(t *testing.T) {
	state := New(NewMemory())

	require.NoError(t, state.SetCache("conversation:", "abc", "cached"))
	v, ok, err := state.Cache("conversation:", "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cached", v)

	assert.Panics(t, func() {
		_ = CacheKey("rogue:", "abc")
	})
}

func TestResetClearsEverything(t *testing.T) {
	state := New(NewMemory())

	require.NoError(t, state.SetProfile(testProfile()))
	require.NoError(t, state.SetProgress(&types.Progress{ConversationCount: 1}))
	require.NoError(t, state.AppendMessage(types.ConversationMessage{ID: "m1", Content: "hi"}))
	require.NoError(t, state.SetCache("meeting:", "42", "notes"))

	require.NoError(t, state.Reset())

	initialized, err := state.Initialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	msgs, err := state.Conversation()
	require.NoError(t, err)
	assert.Empty(t, msgs)

	_, ok, err := state.Cache("meeting:", "42")
	require.NoError(t, err)
	assert.False(t, ok, "dynamic-prefix entries must be reset too")

	// Reset on an empty store is a no-op.
	require.NoError(t, state.Reset())
}

func TestExportImportRoundTrip(t *testing.T) {
	src := New(NewMemory())
	require.NoError(t, src.SetProfile(testProfile()))
	require.NoError(t, src.SetProgress(&types.Progress{ConversationCount: 5}))
	require.NoError(t, src.AppendMessage(types.ConversationMessage{ID: "m1", Content: "hi"}))

	blob, err := src.ExportAll()
	require.NoError(t, err)

	dst := New(NewMemory())
	require.NoError(t, dst.ImportAll(blob))

	profile, err := dst.Profile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alex", profile.Name)

	progress, err := dst.Progress()
	require.NoError(t, err)
	assert.Equal(t, 5, progress.ConversationCount)

	msgs, err := dst.Conversation()
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestImportAllOrNothing(t *testing.T) {
	state := New(NewMemory())
	require.NoError(t, state.SetProfile(testProfile()))

	original, err := state.Profile()
	require.NoError(t, err)

	tests := []struct {
		name string
		blob string
	}{
		{
			name: "not JSON",
			blob: "not json at all",
		},
		{
			name: "missing profile",
			blob: `{"schemaVersion": 2, "entries": {"progress": "{}"}}`,
		},
		{
			name: "malformed profile",
			blob: `{"schemaVersion": 2, "entries": {"profile": "not json"}}`,
		},
		{
			name: "profile fails validation",
			blob: `{"schemaVersion": 2, "entries": {"profile": "{\"name\": \"\", \"experienceLevel\": \"mid\"}"}}`,
		},
		{
			name: "roadmap with no projects",
			blob: `{"schemaVersion": 2, "entries": {"profile": "{\"name\": \"A\", \"experienceLevel\": \"mid\"}", "roadmap": "{\"id\": \"r1\", \"title\": \"T\", \"projects\": []}"}}`,
		},
		{
			name: "roadmap project missing required fields",
			blob: `{"schemaVersion": 2, "entries": {"profile": "{\"name\": \"A\", \"experienceLevel\": \"mid\"}", "roadmap": "{\"id\": \"r1\", \"title\": \"T\", \"projects\": [{\"id\": \"p1\"}]}"}}`,
		},
		{
			name: "malformed conversation log",
			blob: `{"schemaVersion": 2, "entries": {"profile": "{\"name\": \"A\", \"experienceLevel\": \"mid\"}", "conversation-history": "{"}}`,
		},
		{
			name: "unmanaged key",
			blob: `{"schemaVersion": 2, "entries": {"profile": "{\"name\": \"A\", \"experienceLevel\": \"mid\"}", "rogue-key": "x"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := state.ImportAll([]byte(tt.blob))
			require.Error(t, err)

			// Existing state is untouched after a rejected import.
			got, err := state.Profile()
			require.NoError(t, err)
			assert.Equal(t, original.Name, got.Name)
		})
	}
}

func TestExportBlobCarriesSchemaVersion(t *testing.T) {
	state := New(NewMemory())
	require.NoError(t, state.SetProfile(testProfile()))

	blob, err := state.ExportAll()
	require.NoError(t, err)

	var decoded struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	require.NoError(t, json.Unmarshal(blob, &decoded))
	assert.Equal(t, types.SchemaVersion, decoded.SchemaVersion)
}

func TestNeedsMigration(t *testing.T) {
	kv := NewMemory()
	state := New(kv)

	// Uninitialized store never needs migration.
	needs, err := state.NeedsMigration()
	require.NoError(t, err)
	assert.False(t, needs)

	require.NoError(t, state.SetProfile(testProfile()))
	needs, err = state.NeedsMigration()
	require.NoError(t, err)
	assert.False(t, needs)

	// A profile without a version marker is pre-versioning state.
	require.NoError(t, kv.Delete(KeySchemaVersion))
	needs, err = state.NeedsMigration()
	require.NoError(t, err)
	assert.True(t, needs)

	// An older stored version needs migration.
	require.NoError(t, kv.Set(KeySchemaVersion, strconv.Itoa(types.SchemaVersion-1)))
	needs, err = state.NeedsMigration()
	require.NoError(t, err)
	assert.True(t, needs)
}
