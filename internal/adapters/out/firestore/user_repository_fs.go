package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "stocklot/internal/domain/user"
)

const usersCollection = "users"

// UserRepositoryFS implements user.RepositoryPort with Firestore. The
// document id is the Firebase uid.
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(usersCollection)
}

// Compile-time check
var _ userdom.RepositoryPort = (*UserRepositoryFS)(nil)

// =======================
// Queries
// =======================

func (r *UserRepositoryFS) GetByUID(ctx context.Context, uid string) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidUID
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	return docToUser(snap)
}

// ListUIDsWatching returns every uid whose watchlist contains offerID.
func (r *UserRepositoryFS) ListUIDsWatching(ctx context.Context, offerID string) ([]string, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return nil, nil
	}

	it := r.col().Where("watchlist", "array-contains", offerID).Documents(ctx)
	defer it.Stop()

	var uids []string
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		uids = append(uids, doc.Ref.ID)
	}
	return uids, nil
}

// =======================
// Mutations
// =======================

func (r *UserRepositoryFS) Upsert(ctx context.Context, u userdom.User) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(u.UID)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidUID
	}

	now := time.Now().UTC()
	data := map[string]any{
		"email":       strings.TrimSpace(u.Email),
		"displayName": strings.TrimSpace(u.DisplayName),
		"companyId":   strings.TrimSpace(u.CompanyID),
		"updatedAt":   now,
	}

	docRef := r.col().Doc(uid)

	// createdAt/watchlist only on first write
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) != codes.NotFound {
			return userdom.User{}, err
		}
		data["createdAt"] = now
		data["watchlist"] = []string{}
	}

	if _, err := docRef.Set(ctx, data, firestore.MergeAll); err != nil {
		return userdom.User{}, err
	}

	return r.GetByUID(ctx, uid)
}

func (r *UserRepositoryFS) AddToWatchlist(ctx context.Context, uid, offerID string) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	uid = strings.TrimSpace(uid)
	offerID = strings.TrimSpace(offerID)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidUID
	}

	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: "watchlist", Value: firestore.ArrayUnion(offerID)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	return r.GetByUID(ctx, uid)
}

func (r *UserRepositoryFS) RemoveFromWatchlist(ctx context.Context, uid, offerID string) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	uid = strings.TrimSpace(uid)
	offerID = strings.TrimSpace(offerID)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidUID
	}

	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: "watchlist", Value: firestore.ArrayRemove(offerID)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	return r.GetByUID(ctx, uid)
}

// EvictFromWatchlists removes offerID from each listed user in chunked
// batches; each batch commits all-or-nothing.
func (r *UserRepositoryFS) EvictFromWatchlists(ctx context.Context, offerID string, uids []string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	offerID = strings.TrimSpace(offerID)
	if offerID == "" || len(uids) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := r.Client.Batch()
	count := 0

	for _, uid := range uids {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		batch.Update(r.col().Doc(uid), []firestore.Update{
			{Path: "watchlist", Value: firestore.ArrayRemove(offerID)},
			{Path: "updatedAt", Value: now},
		})
		count++
		if count%400 == 0 {
			if _, err := batch.Commit(ctx); err != nil {
				return err
			}
			batch = r.Client.Batch()
		}
	}
	if count%400 != 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}

// =======================
// Helpers
// =======================

func docToUser(doc *firestore.DocumentSnapshot) (userdom.User, error) {
	data := doc.Data()
	if data == nil {
		return userdom.User{}, fmt.Errorf("empty user document: %s", doc.Ref.ID)
	}

	getStr := func(key string) string {
		if v, ok := data[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	getTime := func(key string) time.Time {
		if v, ok := data[key].(time.Time); ok {
			return v.UTC()
		}
		return time.Time{}
	}

	var watchlist []string
	if raw, ok := data["watchlist"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				watchlist = append(watchlist, s)
			}
		}
	}

	return userdom.User{
		UID:         doc.Ref.ID,
		Email:       getStr("email"),
		DisplayName: getStr("displayName"),
		CompanyID:   getStr("companyId"),
		Watchlist:   userdom.NormalizeWatchlist(watchlist),
		CreatedAt:   getTime("createdAt"),
		UpdatedAt:   getTime("updatedAt"),
	}, nil
}
