package store

import "strings"

// Fixed keys that make up the persisted state namespace
const (
	KeyProfile       = "profile"
	KeyProgress      = "progress"
	KeyRoadmap       = "roadmap"
	KeyConversation  = "conversation-history"
	KeySchemaVersion = "schema-version"
)

// fixedKeys are every statically named key the engine owns
var fixedKeys = []string{
	KeyProfile,
	KeyProgress,
	KeyRoadmap,
	KeyConversation,
	KeySchemaVersion,
}

// dynamicPrefixes is the registry of per-entity cache key patterns.
// Ad hoc caches (per-conversation, per-meeting) are named under these
// prefixes so reset can enumerate them instead of guessing.
var dynamicPrefixes = []string{
	"conversation:",
	"meeting:",
}

// CacheKey builds a dynamic cache key under a registered prefix.
// Panics on unregistered prefixes so stray key families can never be
// created that reset would miss.
func CacheKey(prefix, id string) string {
	for _, p := range dynamicPrefixes {
		if p == prefix {
			return prefix + id
		}
	}
	panic("store: unregistered cache prefix " + prefix)
}

// Managed reports whether a key belongs to this engine's namespace,
// either as a fixed key or under a registered dynamic prefix.
func Managed(key string) bool {
	for _, k := range fixedKeys {
		if key == k {
			return true
		}
	}
	for _, p := range dynamicPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
