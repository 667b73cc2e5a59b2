// Package arbitrage implements the cross-venue arbitrage detection engine:
// event-name normalization, grouping by normalized event/outcome, and
// pairwise fee-adjusted spread evaluation.
package arbitrage

import "strings"

// maxEventNameLen bounds the normalized key size and absorbs trailing
// boilerplate differences between venues.
const maxEventNameLen = 100

// NormalizeEventName canonicalizes a venue-supplied event title so the same
// real-world event maps to the same grouping key across venues: lower-case,
// consecutive whitespace collapsed to single spaces, trimmed, truncated to
// 100 characters.
//
// Matching is purely lexical. Semantically identical events phrased
// differently across venues will not match; that is an accepted
// approximation, not a bug.
func NormalizeEventName(name string) string {
	name = strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if r := []rune(name); len(r) > maxEventNameLen {
		// Re-trim so a cut at a word boundary cannot leave a trailing
		// space, which would break idempotence.
		name = strings.TrimRight(string(r[:maxEventNameLen]), " ")
	}
	return name
}

// NormalizeOutcome canonicalizes an outcome label ("yes", " YES " -> "YES").
func NormalizeOutcome(outcome string) string {
	return strings.ToUpper(strings.TrimSpace(outcome))
}

// GroupKey builds the grouping key for a quote. Two records with equal keys
// are considered quotes on the same real-world bet.
func GroupKey(eventName, outcome string) string {
	return NormalizeEventName(eventName) + "|" + NormalizeOutcome(outcome)
}
