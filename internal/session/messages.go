package session

import "github.com/jonathan/career-coach/internal/llm"

// failureCopy maps each classified failure kind to the fixed coach message
// shown in its place. The log stores these strings, never raw errors.
var failureCopy = map[llm.Kind]string{
	llm.KindRateLimit:          "I'm getting a lot of requests right now. Give me a minute and ask again.",
	llm.KindAuthFailure:        "I can't reach the coaching service because no valid API key is configured. Check your configuration and try again.",
	llm.KindNetworkUnavailable: "I couldn't reach the coaching service. Check your connection and try again.",
	llm.KindParseFailure:       "I had trouble putting together a good answer to that. Could you rephrase or ask again?",
	llm.KindUnknown:            "Something went wrong on my end. Please try that again.",
}

// messageFor returns the user-facing copy for a failure kind
func messageFor(kind llm.Kind) string {
	if msg, ok := failureCopy[kind]; ok {
		return msg
	}
	return failureCopy[llm.KindUnknown]
}
