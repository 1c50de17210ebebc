// Package interests owns the per-user interest set: durable storage plus the
// add/remove conversation flows built on top of it.
package interests

import (
	"context"
	"strings"
)

// Store is the durable mapping from a Telegram user id to their interest set.
// Interests are kept with set semantics: no duplicates, no empty strings,
// case-sensitive exact match. The durable form is a single ", "-joined
// payload, so an interest containing that separator is split into its parts
// before storing; the composite string itself is never a member.
type Store interface {
	// Get returns the stored interests for a user, empty slice when none recorded.
	Get(ctx context.Context, userID int64) ([]string, error)
	// Set replaces the stored set wholesale. Empty and whitespace-only
	// entries are dropped before writing, never stored, never an error.
	Set(ctx context.Context, userID int64, values []string) error
	// Add inserts one interest; re-adding an existing one is a no-op.
	// An empty interest is silently ignored.
	Add(ctx context.Context, userID int64, interest string) error
	// Remove deletes one interest; removing an absent one is a no-op.
	Remove(ctx context.Context, userID int64, interest string) error
}

// normalize drops empty and whitespace-only values and trims the rest,
// deduplicating while preserving first-seen order. Values containing the
// payload separator are split into their parts so no stored member can
// corrupt the joined form on a later read.
func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		for _, v := range strings.Split(raw, listSeparator) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
