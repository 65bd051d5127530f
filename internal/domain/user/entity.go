package user

import (
	"errors"
	"strings"
	"time"
)

// User is one document of the users collection. The document id is the
// Firebase Auth uid.
//
// Watchlist is stored as an array but treated as a set; duplicates are
// filtered on read. Presence of an offer id is a subscription, not
// ownership — the offer document stays authoritative for quantity/status.
type User struct {
	UID         string
	Email       string
	DisplayName string
	CompanyID   string

	Watchlist []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Errors (single source)
var (
	ErrNotFound   = errors.New("user: not found")
	ErrInvalidUID = errors.New("user: invalid uid")
)

// NormalizeWatchlist trims, dedupes and drops empties, preserving first-seen
// order.
func NormalizeWatchlist(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// OnWatchlist reports whether offerID is currently subscribed.
func (u User) OnWatchlist(offerID string) bool {
	offerID = strings.TrimSpace(offerID)
	for _, id := range u.Watchlist {
		if id == offerID {
			return true
		}
	}
	return false
}
