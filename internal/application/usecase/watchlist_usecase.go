package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	offerdom "stocklot/internal/domain/offer"
	userdom "stocklot/internal/domain/user"
)

var (
	ErrWatchlistUsersRepoMissing  = errors.New("watchlist: users repository is not configured")
	ErrWatchlistOffersRepoMissing = errors.New("watchlist: offers repository is not configured")
	ErrWatchlistOfferGone         = errors.New("watchlist: offer is deleted or missing")
)

// WatchlistUsecase owns the per-user saved-offers set and the eviction
// projection that keeps it consistent with offer inventory.
//
// The projection only ever evicts. Quantity is read live from the offer at
// render time, so a positive quantity never writes into user documents, and
// a restored offer is never re-subscribed.
type WatchlistUsecase struct {
	users  userdom.RepositoryPort
	offers offerdom.RepositoryPort
}

func NewWatchlistUsecase(users userdom.RepositoryPort, offers offerdom.RepositoryPort) *WatchlistUsecase {
	return &WatchlistUsecase{users: users, offers: offers}
}

// Project evicts offerID from every subscriber's watchlist when the offer
// has become unpurchasable (newQuantity <= 0), and returns the affected
// uids. For a positive quantity it is a read-free no-op returning an empty
// set. Idempotent: evicting an offer no one watches succeeds with an empty
// set.
func (u *WatchlistUsecase) Project(ctx context.Context, offerID string, newQuantity int) ([]string, error) {
	if u == nil || u.users == nil {
		return nil, ErrWatchlistUsersRepoMissing
	}

	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return nil, offerdom.ErrNotFound
	}

	if newQuantity > 0 {
		return []string{}, nil
	}

	uids, err := u.users.ListUIDsWatching(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("watchlist: query watchers for offer %s: %w", offerID, err)
	}
	if len(uids) == 0 {
		return []string{}, nil
	}

	if err := u.users.EvictFromWatchlists(ctx, offerID, uids); err != nil {
		return nil, fmt.Errorf("watchlist: evict offer %s from %d watchlists: %w", offerID, len(uids), err)
	}

	log.Printf("[watchlist_uc] evicted offerId=%s from %d watchlists", offerID, len(uids))
	return uids, nil
}

// Add subscribes uid to offerID. The offer must still exist and not be
// soft-deleted; sold-out offers are refused because the projector would
// evict them immediately anyway.
func (u *WatchlistUsecase) Add(ctx context.Context, uid, offerID string) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrWatchlistUsersRepoMissing
	}
	if u.offers == nil {
		return userdom.User{}, ErrWatchlistOffersRepoMissing
	}

	o, err := u.offers.GetByID(ctx, strings.TrimSpace(offerID))
	if err != nil {
		return userdom.User{}, err
	}
	if !o.Purchasable() {
		return userdom.User{}, ErrWatchlistOfferGone
	}

	return u.users.AddToWatchlist(ctx, strings.TrimSpace(uid), o.ID)
}

// Remove unsubscribes uid from offerID. Removing an absent id is a no-op.
func (u *WatchlistUsecase) Remove(ctx context.Context, uid, offerID string) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrWatchlistUsersRepoMissing
	}
	return u.users.RemoveFromWatchlist(ctx, strings.TrimSpace(uid), strings.TrimSpace(offerID))
}

// ListOffers resolves the caller's watchlist to live offer documents.
// Missing or deleted offers are skipped (and logged), not errors: the
// watchlist is a weak subscription.
func (u *WatchlistUsecase) ListOffers(ctx context.Context, uid string) ([]offerdom.Offer, error) {
	if u == nil || u.users == nil {
		return nil, ErrWatchlistUsersRepoMissing
	}
	if u.offers == nil {
		return nil, ErrWatchlistOffersRepoMissing
	}

	usr, err := u.users.GetByUID(ctx, strings.TrimSpace(uid))
	if err != nil {
		return nil, err
	}

	ids := userdom.NormalizeWatchlist(usr.Watchlist)
	out := make([]offerdom.Offer, 0, len(ids))
	for _, id := range ids {
		o, err := u.offers.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, offerdom.ErrNotFound) {
				log.Printf("[watchlist_uc] WARN: watchlist entry points at missing offer uid=%s offerId=%s", uid, id)
				continue
			}
			return nil, err
		}
		if o.Deleted {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
