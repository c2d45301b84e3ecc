package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-coach/internal/types"
)

// Clock abstracts time for testability
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// State is the typed layer over a KV backend. It owns the key namespace,
// the dynamic-prefix registry used by Reset, schema versioning, and the
// export/import lifecycle. All components read and write through it; there is
// one logical writer per client session, so no ordering discipline beyond
// sequential calls is required.
type State struct {
	kv       KV
	clock    Clock
	validate *validator.Validate
}

// New creates a State over the given backend
func New(kv KV) *State {
	return &State{
		kv:       kv,
		clock:    realClock{},
		validate: validator.New(),
	}
}

// NewWithClock creates a State with a custom clock (for testing)
func NewWithClock(kv KV, clock Clock) *State {
	s := New(kv)
	s.clock = clock
	return s
}

// Get reads and decodes the value stored under key.
// The second return reports presence.
func Get[T any](s *State, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, false, fmt.Errorf("failed to decode key %s: %w", key, err)
	}
	return v, true, nil
}

// Set encodes and stores value under key, stamping last-active on Progress
// as a side effect of every mutation.
func Set[T any](s *State, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		return err
	}
	s.touch(key)
	return nil
}

// Initialized reports whether onboarding has completed (a profile exists)
func (s *State) Initialized() (bool, error) {
	_, ok, err := s.kv.Get(KeyProfile)
	return ok, err
}

// Profile returns the stored profile, or nil if onboarding has not completed
func (s *State) Profile() (*types.Profile, error) {
	p, ok, err := Get[types.Profile](s, KeyProfile)
	if err != nil || !ok {
		return nil, err
	}
	p.EnsureDefaults()
	return &p, nil
}

// SetProfile stores the profile and the current schema version
func (s *State) SetProfile(p *types.Profile) error {
	p.EnsureDefaults()
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if err := Set(s, KeyProfile, p); err != nil {
		return err
	}
	return s.kv.Set(KeySchemaVersion, strconv.Itoa(types.SchemaVersion))
}

// Progress returns stored progress, or a zero-value Progress when absent
func (s *State) Progress() (*types.Progress, error) {
	p, ok, err := Get[types.Progress](s, KeyProgress)
	if err != nil {
		return nil, err
	}
	if !ok {
		p = types.Progress{}
	}
	p.EnsureDefaults()
	return &p, nil
}

// SetProgress stores progress, stamping LastActiveAt
func (s *State) SetProgress(p *types.Progress) error {
	p.EnsureDefaults()
	p.LastActiveAt = s.clock.Now()
	return Set(s, KeyProgress, p)
}

// Roadmap returns the stored roadmap, or nil if none has been generated
func (s *State) Roadmap() (*types.Roadmap, error) {
	r, ok, err := Get[types.Roadmap](s, KeyRoadmap)
	if err != nil || !ok {
		return nil, err
	}
	r.EnsureDefaults()
	return &r, nil
}

// SetRoadmap stores the roadmap, replacing any previous draft or active one
func (s *State) SetRoadmap(r *types.Roadmap) error {
	r.EnsureDefaults()
	return Set(s, KeyRoadmap, r)
}

// Conversation returns the full message log in insertion order
func (s *State) Conversation() ([]types.ConversationMessage, error) {
	msgs, ok, err := Get[[]types.ConversationMessage](s, KeyConversation)
	if err != nil || !ok {
		return []types.ConversationMessage{}, err
	}
	return msgs, nil
}

// AppendMessage appends to the conversation log. The log is append-only;
// bounding happens at prompt construction, never here.
func (s *State) AppendMessage(msg types.ConversationMessage) error {
	msgs, err := s.Conversation()
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)
	return Set(s, KeyConversation, msgs)
}

// SetCache stores an ad hoc per-entity value under a registered dynamic
// prefix so Reset can find it later.
func (s *State) SetCache(prefix, id, value string) error {
	if err := s.kv.Set(CacheKey(prefix, id), value); err != nil {
		return err
	}
	s.touch("")
	return nil
}

// Cache reads an ad hoc per-entity value
func (s *State) Cache(prefix, id string) (string, bool, error) {
	return s.kv.Get(CacheKey(prefix, id))
}

// Reset removes every key in the engine's namespace, fixed and
// dynamically prefixed alike, returning the store to uninitialized.
// Calling it on an already-empty store is a no-op.
func (s *State) Reset() error {
	keys, err := s.kv.Keys()
	if err != nil {
		return fmt.Errorf("failed to enumerate keys for reset: %w", err)
	}
	for _, k := range keys {
		if !Managed(k) {
			continue
		}
		if err := s.kv.Delete(k); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", k, err)
		}
	}
	return nil
}

// exportBlob is the serialized form produced by ExportAll
type exportBlob struct {
	SchemaVersion int               `json:"schemaVersion"`
	ExportedAt    time.Time         `json:"exportedAt"`
	Entries       map[string]string `json:"entries"`
}

// ExportAll serializes every managed key into a single blob
func (s *State) ExportAll() ([]byte, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate keys for export: %w", err)
	}

	blob := exportBlob{
		SchemaVersion: types.SchemaVersion,
		ExportedAt:    s.clock.Now(),
		Entries:       make(map[string]string),
	}
	for _, k := range keys {
		if !Managed(k) {
			continue
		}
		v, ok, err := s.kv.Get(k)
		if err != nil {
			return nil, err
		}
		if ok {
			blob.Entries[k] = v
		}
	}
	return json.MarshalIndent(blob, "", "  ")
}

// ImportAll restores state from an ExportAll blob. The blob is fully
// validated before anything is written: a partial or invalid blob fails
// without mutating existing state.
func (s *State) ImportAll(raw []byte) error {
	var blob exportBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return fmt.Errorf("invalid import blob: %w", err)
	}

	profileRaw, ok := blob.Entries[KeyProfile]
	if !ok {
		return fmt.Errorf("invalid import blob: missing required key %q", KeyProfile)
	}
	var profile types.Profile
	if err := json.Unmarshal([]byte(profileRaw), &profile); err != nil {
		return fmt.Errorf("invalid import blob: malformed profile: %w", err)
	}
	profile.EnsureDefaults()
	if err := s.validate.Struct(&profile); err != nil {
		return fmt.Errorf("invalid import blob: profile failed validation: %w", err)
	}

	// Decode-check the other structured keys before committing anything.
	if v, ok := blob.Entries[KeyProgress]; ok {
		var p types.Progress
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return fmt.Errorf("invalid import blob: malformed progress: %w", err)
		}
	}
	if v, ok := blob.Entries[KeyRoadmap]; ok {
		var r types.Roadmap
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return fmt.Errorf("invalid import blob: malformed roadmap: %w", err)
		}
		r.EnsureDefaults()
		if err := s.validate.Struct(&r); err != nil {
			return fmt.Errorf("invalid import blob: roadmap failed validation: %w", err)
		}
	}
	if v, ok := blob.Entries[KeyConversation]; ok {
		var msgs []types.ConversationMessage
		if err := json.Unmarshal([]byte(v), &msgs); err != nil {
			return fmt.Errorf("invalid import blob: malformed conversation log: %w", err)
		}
	}
	for k := range blob.Entries {
		if !Managed(k) {
			return fmt.Errorf("invalid import blob: unmanaged key %q", k)
		}
	}

	for k, v := range blob.Entries {
		if err := s.kv.Set(k, v); err != nil {
			return fmt.Errorf("failed to import key %s: %w", k, err)
		}
	}
	return s.kv.Set(KeySchemaVersion, strconv.Itoa(types.SchemaVersion))
}

// NeedsMigration reports whether stored state predates the current schema
// version. An uninitialized store never needs migration.
func (s *State) NeedsMigration() (bool, error) {
	initialized, err := s.Initialized()
	if err != nil || !initialized {
		return false, err
	}

	raw, ok, err := s.kv.Get(KeySchemaVersion)
	if err != nil {
		return false, err
	}
	if !ok {
		// Pre-versioning state: profile exists but no version marker.
		return true, nil
	}
	stored, err := strconv.Atoi(raw)
	if err != nil {
		return true, nil
	}
	return stored != types.SchemaVersion, nil
}

// touch stamps last-active on Progress if Progress exists. Skipped when the
// mutation is the progress write itself (SetProgress stamps directly).
func (s *State) touch(mutatedKey string) {
	if mutatedKey == KeyProgress {
		return
	}
	raw, ok, err := s.kv.Get(KeyProgress)
	if err != nil || !ok {
		return
	}
	var p types.Progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return
	}
	p.LastActiveAt = s.clock.Now()
	if encoded, err := json.Marshal(&p); err == nil {
		_ = s.kv.Set(KeyProgress, string(encoded))
	}
}
