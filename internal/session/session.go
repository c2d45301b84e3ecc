// Package session implements the turn-based coach conversation state machine
// layered on the completion client and the state store. A session is Idle or
// AwaitingReply; the "coach is typing" flag is derived from that state, not
// tracked separately.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/store"
	"github.com/jonathan/career-coach/internal/types"
)

// Sentinel errors
var (
	// ErrBusy is returned when Send is called while a reply is in flight.
	// Never two outstanding completions per session.
	ErrBusy = errors.New("a coach reply is already in flight")
	// ErrNoProfile is returned when chatting before onboarding completes
	ErrNoProfile = errors.New("no profile: complete onboarding first")
)

// Session is a turn-based coach conversation. Methods are safe for use from
// one logical thread of control; the internal guard exists to reject
// double-submission, not to support parallel senders.
type Session struct {
	client coach.Completer
	state  *store.State
	now    func() time.Time

	mu       sync.Mutex
	awaiting bool
}

// New creates a Session over the given client and store
func New(client coach.Completer, state *store.State) *Session {
	return &Session{
		client: client,
		state:  state,
		now:    time.Now,
	}
}

// Typing reports whether the coach is composing a reply. Purely a
// presentation flag derived from session state.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// History returns the full persisted message log
func (s *Session) History() ([]types.ConversationMessage, error) {
	return s.state.Conversation()
}

// Send submits one user turn and returns the coach's reply message.
//
// The user message is appended first, then the completion call runs with a
// bounded history window. On a classified failure the returned coach message
// carries fixed human-readable copy for that failure kind; the error return
// is reserved for ErrBusy, ErrNoProfile, cancellation, and storage failures.
func (s *Session) Send(ctx context.Context, text string) (types.ConversationMessage, error) {
	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return types.ConversationMessage{}, ErrBusy
	}
	s.awaiting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.awaiting = false
		s.mu.Unlock()
	}()

	profile, err := s.state.Profile()
	if err != nil {
		return types.ConversationMessage{}, err
	}
	if profile == nil {
		return types.ConversationMessage{}, ErrNoProfile
	}

	history, err := s.state.Conversation()
	if err != nil {
		return types.ConversationMessage{}, err
	}

	userMsg := types.ConversationMessage{
		ID:        uuid.NewString(),
		Sender:    types.SenderUser,
		Content:   text,
		Timestamp: s.now(),
		Kind:      types.KindText,
	}
	if err := s.state.AppendMessage(userMsg); err != nil {
		return types.ConversationMessage{}, err
	}

	reply, completeErr := s.client.Complete(ctx, profile, history, text)
	if completeErr != nil && errors.Is(completeErr, context.Canceled) {
		// Cancellation is a distinct terminal outcome; nothing more is written.
		return types.ConversationMessage{}, completeErr
	}

	coachMsg := types.ConversationMessage{
		ID:        uuid.NewString(),
		Sender:    types.SenderCoach,
		Timestamp: s.now(),
		Kind:      types.KindText,
	}
	if completeErr != nil {
		coachMsg.Content = messageFor(llm.KindOf(completeErr))
	} else {
		coachMsg.Content = reply
	}

	if err := s.state.AppendMessage(coachMsg); err != nil {
		return types.ConversationMessage{}, err
	}

	if err := s.bumpConversationCount(); err != nil {
		return types.ConversationMessage{}, err
	}
	return coachMsg, nil
}

func (s *Session) bumpConversationCount() error {
	progress, err := s.state.Progress()
	if err != nil {
		return err
	}
	progress.ConversationCount++
	return s.state.SetProgress(progress)
}
