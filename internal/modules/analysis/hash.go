package analysis

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

const (
	hashVersion = "v2"
	// emptyContentHash is the sentinel fingerprint for empty input.
	emptyContentHash = "00000000"
	// maxAcceptedDigest caps how many accepted suggestions feed the digest.
	maxAcceptedDigest = 5
)

// hashPayload is the canonical serialization the fingerprint is computed over.
// Field order is fixed by the struct, so the same inputs always serialize to
// the same bytes.
type hashPayload struct {
	Content        string       `json:"content"`
	Goals          WritingGoals `json:"goals"`
	ContextType    string       `json:"contextType"`
	AcceptedDigest string       `json:"acceptedDigest"`
	Version        string       `json:"version"`
}

// HashContent produces a stable fingerprint over document content, writing
// goals, context type, and the digest of recently accepted suggestions.
// Accepting a suggestion changes the digest and therefore the cache key,
// forcing re-analysis instead of replaying a stale answer. Collisions are
// tolerable: cache keys also carry the user id, and caching is an
// optimization, not a correctness path.
func HashContent(content string, goals *WritingGoals, accepted []AcceptedSuggestion, contextType string) string {
	if content == "" {
		return emptyContentHash
	}

	g := WritingGoals{}
	if goals != nil {
		g = *goals
	}
	payload := hashPayload{
		Content:        content,
		Goals:          g,
		ContextType:    contextType,
		AcceptedDigest: acceptedDigest(accepted),
		Version:        hashVersion,
	}
	data, _ := json.Marshal(payload)
	return fingerprint(data)
}

// acceptedDigest hashes the last up-to-5 accepted suggestions.
func acceptedDigest(accepted []AcceptedSuggestion) string {
	if len(accepted) == 0 {
		return ""
	}
	if len(accepted) > maxAcceptedDigest {
		accepted = accepted[len(accepted)-maxAcceptedDigest:]
	}
	data, _ := json.Marshal(accepted)
	return fingerprint(data)
}

// fingerprint renders the 32-bit FNV-1a hash of data as eight hex digits.
func fingerprint(data []byte) string {
	h := fnv.New32a()
	h.Write(data)
	return fmt.Sprintf("%08x", h.Sum32())
}

// EstimateTokens approximates the token cost of a payload for telemetry and
// cache metadata. Four characters per token is close enough for cost
// reporting; nothing correctness-critical consumes this number.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
