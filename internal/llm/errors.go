package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/api/googleapi"
)

// Kind classifies a completion failure for user-facing handling.
// This is the only error taxonomy the engine produces; callers map kinds to
// copy or to fallback behavior and never inspect free-text error strings.
type Kind string

// Failure kinds
const (
	KindRateLimit          Kind = "rate_limit"
	KindAuthFailure        Kind = "auth_failure"
	KindNetworkUnavailable Kind = "network_unavailable"
	KindParseFailure       Kind = "parse_failure"
	KindUnknown            Kind = "unknown"
)

// Error is a classified completion-service failure
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("completion failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the classified kind from an error chain.
// Unclassified errors report KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// Classify maps a raw transport/service error to a Kind.
//
// This is best-effort substring and status-code matching, not a contract from
// the upstream service. Keep additions here; nothing outside this function may
// pattern-match on error text.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	// A deadline expiry on our explicit per-call timeout reads as the network
	// being unavailable from the caller's point of view.
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetworkUnavailable
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 429:
			return KindRateLimit
		case gerr.Code == 401 || gerr.Code == 403:
			return KindAuthFailure
		case gerr.Code >= 500:
			return KindNetworkUnavailable
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return KindNetworkUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "rate limit", "quota", "resource exhausted", "resource_exhausted", "too many requests"):
		return KindRateLimit
	case containsAny(msg, "api key", "api_key", "unauthorized", "unauthenticated", "permission denied", "invalid credential"):
		return KindAuthFailure
	case containsAny(msg, "connection refused", "connection reset", "no such host", "network is unreachable", "timeout", "unavailable", "dial tcp"):
		return KindNetworkUnavailable
	}

	return KindUnknown
}

// Wrap builds a classified Error from a raw failure
func Wrap(message string, cause error) *Error {
	return &Error{Kind: Classify(cause), Message: message, Cause: cause}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
