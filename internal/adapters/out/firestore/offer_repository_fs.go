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

	fscommon "stocklot/internal/adapters/out/firestore/common"
	offerdom "stocklot/internal/domain/offer"
)

const (
	offersCollection   = "offers"
	countersCollection = "counters"
	offerCounterDoc    = "offers"
)

// OfferRepositoryFS implements offer.RepositoryPort with Firestore.
type OfferRepositoryFS struct {
	Client *firestore.Client
}

func NewOfferRepositoryFS(client *firestore.Client) *OfferRepositoryFS {
	return &OfferRepositoryFS{Client: client}
}

func (r *OfferRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(offersCollection)
}

func (r *OfferRepositoryFS) counterRef() *firestore.DocumentRef {
	return r.Client.Collection(countersCollection).Doc(offerCounterDoc)
}

// Compile-time check
var _ offerdom.RepositoryPort = (*OfferRepositoryFS)(nil)

// =======================
// Mutations
// =======================

// Create assigns the document id and the human-facing readable id. The
// sequence counter moves inside the same transaction that writes the
// document, so two concurrent creates can never observe the same value.
func (r *OfferRepositoryFS) Create(ctx context.Context, o offerdom.Offer) (offerdom.Offer, error) {
	if r.Client == nil {
		return offerdom.Offer{}, errors.New("firestore client is nil")
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = now
	}

	docRef := r.col().NewDoc()
	o.ID = docRef.ID

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var seq int64
		snap, err := tx.Get(r.counterRef())
		switch {
		case err == nil:
			raw := snap.Data()
			if v, ok := raw["value"].(int64); ok {
				seq = v
			}
		case status.Code(err) == codes.NotFound:
			seq = 0
		default:
			return err
		}

		seq++
		o.ReadableID = offerdom.FormatReadableID(seq)

		if err := tx.Set(r.counterRef(), map[string]any{"value": seq}); err != nil {
			return err
		}
		return tx.Create(docRef, offerToDocData(o))
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return offerdom.Offer{}, offerdom.ErrConflict
		}
		return offerdom.Offer{}, err
	}

	return r.GetByID(ctx, o.ID)
}

func (r *OfferRepositoryFS) Update(ctx context.Context, id string, patch offerdom.OfferPatch) (offerdom.Offer, error) {
	if r.Client == nil {
		return offerdom.Offer{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}

	docRef := r.col().Doc(id)

	updates, err := offerPatchUpdates(patch)
	if err != nil {
		return offerdom.Offer{}, err
	}

	if len(updates) == 0 {
		// no-op
		return r.GetByID(ctx, id)
	}

	_, err = docRef.Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return offerdom.Offer{}, offerdom.ErrNotFound
		}
		return offerdom.Offer{}, err
	}

	return r.GetByID(ctx, id)
}

// offerPatchUpdates translates a patch into Firestore field updates.
// Quantity hitting zero forces status=sold, but only when the patch does
// not carry a status of its own: Firestore rejects duplicate field paths.
func offerPatchUpdates(patch offerdom.OfferPatch) ([]firestore.Update, error) {
	var updates []firestore.Update

	if patch.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: strings.TrimSpace(*patch.Title)})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: strings.TrimSpace(*patch.Description)})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: strings.TrimSpace(*patch.Category)})
	}
	if patch.UnitPrice != nil {
		updates = append(updates, firestore.Update{Path: "unitPrice", Value: *patch.UnitPrice})
	}
	if patch.Quantity != nil {
		q := *patch.Quantity
		if q < 0 {
			return nil, offerdom.ErrInvalidQuantity
		}
		updates = append(updates, firestore.Update{Path: "quantity", Value: q})
		if q == 0 && patch.Status == nil {
			updates = append(updates, firestore.Update{Path: "status", Value: string(offerdom.StatusSold)})
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, offerdom.ErrInvalidStatus
		}
		updates = append(updates, firestore.Update{Path: "status", Value: string(*patch.Status)})
	}
	if patch.Deleted != nil {
		updates = append(updates, firestore.Update{Path: "deleted", Value: *patch.Deleted})
	}
	if patch.ImageURLs != nil {
		updates = append(updates, firestore.Update{Path: "imageURLs", Value: *patch.ImageURLs})
	}

	if patch.UpdatedAt != nil {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: patch.UpdatedAt.UTC()})
	} else if len(updates) > 0 {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})
	}

	return updates, nil
}

func (r *OfferRepositoryFS) SoftDelete(ctx context.Context, id string) (offerdom.Offer, error) {
	if r.Client == nil {
		return offerdom.Offer{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "deleted", Value: true},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return offerdom.Offer{}, offerdom.ErrNotFound
		}
		return offerdom.Offer{}, err
	}

	return r.GetByID(ctx, id)
}

// =======================
// Queries
// =======================

func (r *OfferRepositoryFS) GetByID(ctx context.Context, id string) (offerdom.Offer, error) {
	if r.Client == nil {
		return offerdom.Offer{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return offerdom.Offer{}, offerdom.ErrNotFound
		}
		return offerdom.Offer{}, err
	}

	return docToOffer(snap)
}

func (r *OfferRepositoryFS) List(
	ctx context.Context,
	filter offerdom.Filter,
	page offerdom.Page,
) (offerdom.PageResult, error) {
	if r.Client == nil {
		return offerdom.PageResult{}, errors.New("firestore client is nil")
	}

	pageNum, perPage, _ := fscommon.NormalizePage(page.Number, page.PerPage, 50, 200)

	q := r.col().OrderBy("createdAt", firestore.Desc)

	it := q.Documents(ctx)
	defer it.Stop()

	var all []offerdom.Offer
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return offerdom.PageResult{}, err
		}
		o, err := docToOffer(doc)
		if err != nil {
			return offerdom.PageResult{}, err
		}
		if matchOfferFilter(o, filter) {
			all = append(all, o)
		}
	}

	total := len(all)
	if total == 0 {
		return offerdom.PageResult{
			Items:      []offerdom.Offer{},
			TotalCount: 0,
			TotalPages: 0,
			Page:       pageNum,
			PerPage:    perPage,
		}, nil
	}

	offset := (pageNum - 1) * perPage
	if offset > total {
		offset = total
	}
	end := offset + perPage
	if end > total {
		end = total
	}

	return offerdom.PageResult{
		Items:      all[offset:end],
		TotalCount: total,
		TotalPages: fscommon.ComputeTotalPages(total, perPage),
		Page:       pageNum,
		PerPage:    perPage,
	}, nil
}

// =======================
// Helpers
// =======================

func offerToDocData(o offerdom.Offer) map[string]any {
	if o.ImageURLs == nil {
		o.ImageURLs = []string{}
	}
	return map[string]any{
		"readableId":  strings.TrimSpace(o.ReadableID),
		"sellerId":    strings.TrimSpace(o.SellerID),
		"companyId":   strings.TrimSpace(o.CompanyID),
		"title":       strings.TrimSpace(o.Title),
		"description": o.Description,
		"category":    strings.TrimSpace(o.Category),
		"unitPrice":   o.UnitPrice,
		"quantity":    o.Quantity,
		"status":      string(o.Status),
		"deleted":     o.Deleted,
		"imageURLs":   o.ImageURLs,
		"createdAt":   o.CreatedAt.UTC(),
		"updatedAt":   o.UpdatedAt.UTC(),
	}
}

func docToOffer(doc *firestore.DocumentSnapshot) (offerdom.Offer, error) {
	data := doc.Data()
	if data == nil {
		return offerdom.Offer{}, fmt.Errorf("empty offer document: %s", doc.Ref.ID)
	}

	getStr := func(key string) string {
		if v, ok := data[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	getInt := func(key string) int {
		switch v := data[key].(type) {
		case int64:
			return int(v)
		case int:
			return v
		case float64:
			return int(v)
		}
		return 0
	}
	getBool := func(key string) bool {
		if v, ok := data[key].(bool); ok {
			return v
		}
		return false
	}
	getTime := func(key string) time.Time {
		if v, ok := data[key].(time.Time); ok {
			return v.UTC()
		}
		return time.Time{}
	}

	var urls []string
	if raw, ok := data["imageURLs"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				urls = append(urls, s)
			}
		}
	}
	if urls == nil {
		urls = []string{}
	}

	return offerdom.Offer{
		ID:          doc.Ref.ID,
		ReadableID:  getStr("readableId"),
		SellerID:    getStr("sellerId"),
		CompanyID:   getStr("companyId"),
		Title:       getStr("title"),
		Description: getStr("description"),
		Category:    getStr("category"),
		UnitPrice:   getInt("unitPrice"),
		Quantity:    getInt("quantity"),
		Status:      offerdom.Status(getStr("status")),
		Deleted:     getBool("deleted"),
		ImageURLs:   urls,
		CreatedAt:   getTime("createdAt"),
		UpdatedAt:   getTime("updatedAt"),
	}, nil
}

func matchOfferFilter(o offerdom.Offer, f offerdom.Filter) bool {
	if o.Deleted && !f.IncludeDeleted {
		return false
	}

	// Free text: readableId, title, description, category
	if sq := strings.TrimSpace(f.SearchQuery); sq != "" {
		lq := strings.ToLower(sq)
		haystack := strings.ToLower(
			o.ReadableID + " " +
				o.Title + " " +
				o.Description + " " +
				o.Category,
		)
		if !strings.Contains(haystack, lq) {
			return false
		}
	}

	if f.SellerID != nil && strings.TrimSpace(*f.SellerID) != "" {
		if o.SellerID != strings.TrimSpace(*f.SellerID) {
			return false
		}
	}
	if f.CompanyID != nil && strings.TrimSpace(*f.CompanyID) != "" {
		if o.CompanyID != strings.TrimSpace(*f.CompanyID) {
			return false
		}
	}
	if f.Category != nil && strings.TrimSpace(*f.Category) != "" {
		if !strings.EqualFold(o.Category, strings.TrimSpace(*f.Category)) {
			return false
		}
	}

	if f.Status != nil && strings.TrimSpace(string(*f.Status)) != "" {
		if o.Status != *f.Status {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, st := range f.Statuses {
			if o.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if f.CreatedFrom != nil && o.CreatedAt.Before(f.CreatedFrom.UTC()) {
		return false
	}
	if f.CreatedTo != nil && !o.CreatedAt.Before(f.CreatedTo.UTC()) {
		return false
	}

	return true
}
