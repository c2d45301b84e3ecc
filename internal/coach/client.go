// Package coach is the completion client for the career-coach engine. It
// turns a profile, recent history, and a user message into a prompt, invokes
// the completion service, and validates the reply before anyone else sees it.
// All failures carry the llm error taxonomy.
package coach

import (
	"context"
	"fmt"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/types"
)

// Reply length bounds. Below the minimum a reply is near-empty garbage;
// above the maximum it is a runaway generation. Either way the caller gets
// a ParseFailure, never the raw text.
const (
	minReplyChars = 20
	maxReplyChars = 3000
)

// Completer is the interface the pipeline and session consume. *Client
// implements it; tests substitute stubs.
type Completer interface {
	// Available reports whether a credential is configured and the client
	// constructed successfully
	Available() bool
	// Complete produces one coach reply for the user's message
	Complete(ctx context.Context, profile *types.Profile, history []types.ConversationMessage, message string) (string, error)
	// GenerateRoadmap produces raw roadmap text; the caller parses it
	// separately because the service returns prose/quasi-JSON
	GenerateRoadmap(ctx context.Context, profile *types.Profile) (string, error)
}

// Client calls the Gemini-backed completion service
type Client struct {
	llm llm.Client
}

// New constructs a Client. A missing API key is a first-class state, not an
// error: the client is returned with Available() == false and every call
// fails fast with AuthFailure.
func New(ctx context.Context, cfg *llm.Config, apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	inner, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return &Client{}
	}
	return &Client{llm: inner}
}

// Available reports whether completion calls can be attempted
func (c *Client) Available() bool {
	return c != nil && c.llm != nil
}

// Complete builds the chat prompt and returns the validated reply
func (c *Client) Complete(ctx context.Context, profile *types.Profile, history []types.ConversationMessage, message string) (string, error) {
	if !c.Available() {
		return "", &llm.Error{Kind: llm.KindAuthFailure, Message: "completion service credential is not configured"}
	}

	prompt := buildChatPrompt(profile, history, message)
	reply, err := c.llm.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", err
	}
	return validateReply(reply)
}

// GenerateRoadmap asks the service for a roadmap payload. The result is NOT
// assumed to be structured; see roadmap.Parse.
func (c *Client) GenerateRoadmap(ctx context.Context, profile *types.Profile) (string, error) {
	if !c.Available() {
		return "", &llm.Error{Kind: llm.KindAuthFailure, Message: "completion service credential is not configured"}
	}

	prompt := buildRoadmapPrompt(profile)
	return c.llm.GenerateJSON(ctx, prompt, llm.TierAdvanced)
}

// Close releases the underlying client
func (c *Client) Close() error {
	if c.llm != nil {
		return c.llm.Close()
	}
	return nil
}

// validateReply enforces the accepted length range [minReplyChars, maxReplyChars]
func validateReply(reply string) (string, error) {
	if len(reply) < minReplyChars {
		return "", &llm.Error{
			Kind:    llm.KindParseFailure,
			Message: fmt.Sprintf("reply too short (%d chars, minimum %d)", len(reply), minReplyChars),
		}
	}
	if len(reply) > maxReplyChars {
		return "", &llm.Error{
			Kind:    llm.KindParseFailure,
			Message: fmt.Sprintf("reply too long (%d chars, maximum %d)", len(reply), maxReplyChars),
		}
	}
	return reply, nil
}
