package user

import "context"

// RepositoryPort is the outbound port for the users collection.
//
// The watchlist fan-out methods exist so the projector can evict an offer id
// from every subscriber in one batched, all-or-nothing write per batch.
type RepositoryPort interface {
	GetByUID(ctx context.Context, uid string) (User, error)

	// Upsert creates or merges the profile document for uid.
	Upsert(ctx context.Context, u User) (User, error)

	// AddToWatchlist / RemoveFromWatchlist mutate a single user's set.
	AddToWatchlist(ctx context.Context, uid, offerID string) (User, error)
	RemoveFromWatchlist(ctx context.Context, uid, offerID string) (User, error)

	// ListUIDsWatching returns the uids of every user whose watchlist
	// contains offerID.
	ListUIDsWatching(ctx context.Context, offerID string) ([]string, error)

	// EvictFromWatchlists removes offerID from each listed user's watchlist
	// in a single batched write.
	EvictFromWatchlists(ctx context.Context, offerID string, uids []string) error
}
