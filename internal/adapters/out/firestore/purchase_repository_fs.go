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

	purchasedom "stocklot/internal/domain/purchase"
)

const purchasesCollection = "purchases"

// PurchaseRepositoryFS implements purchase.RepositoryPort with Firestore.
type PurchaseRepositoryFS struct {
	Client *firestore.Client
}

func NewPurchaseRepositoryFS(client *firestore.Client) *PurchaseRepositoryFS {
	return &PurchaseRepositoryFS{Client: client}
}

func (r *PurchaseRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(purchasesCollection)
}

// Compile-time check
var _ purchasedom.RepositoryPort = (*PurchaseRepositoryFS)(nil)

// =======================
// Mutations
// =======================

func (r *PurchaseRepositoryFS) Create(ctx context.Context, p purchasedom.Purchase) (purchasedom.Purchase, error) {
	if r.Client == nil {
		return purchasedom.Purchase{}, errors.New("firestore client is nil")
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	docRef := r.col().NewDoc()
	p.ID = docRef.ID

	if _, err := docRef.Create(ctx, purchaseToDocData(p)); err != nil {
		return purchasedom.Purchase{}, err
	}

	return r.GetByID(ctx, p.ID)
}

func (r *PurchaseRepositoryFS) UpdateStatus(ctx context.Context, id string, patch purchasedom.StatusPatch) (purchasedom.Purchase, error) {
	if r.Client == nil {
		return purchasedom.Purchase{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return purchasedom.Purchase{}, purchasedom.ErrNotFound
	}

	var updates []firestore.Update

	if patch.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*patch.Status)})
	}
	if patch.ApprovalStatus != nil {
		updates = append(updates, firestore.Update{Path: "paymentApprovalStatus", Value: string(*patch.ApprovalStatus)})
	}
	if patch.ShippingProofURL != nil {
		updates = append(updates, firestore.Update{Path: "shippingProofURL", Value: strings.TrimSpace(*patch.ShippingProofURL)})
	}

	if patch.UpdatedAt != nil {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: patch.UpdatedAt.UTC()})
	} else if len(updates) > 0 {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	_, err := r.col().Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return purchasedom.Purchase{}, purchasedom.ErrNotFound
		}
		return purchasedom.Purchase{}, err
	}

	return r.GetByID(ctx, id)
}

// =======================
// Queries
// =======================

func (r *PurchaseRepositoryFS) GetByID(ctx context.Context, id string) (purchasedom.Purchase, error) {
	if r.Client == nil {
		return purchasedom.Purchase{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return purchasedom.Purchase{}, purchasedom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return purchasedom.Purchase{}, purchasedom.ErrNotFound
		}
		return purchasedom.Purchase{}, err
	}

	return docToPurchase(snap)
}

func (r *PurchaseRepositoryFS) List(ctx context.Context, filter purchasedom.Filter) ([]purchasedom.Purchase, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := r.col().Query
	if filter.BuyerID != nil && strings.TrimSpace(*filter.BuyerID) != "" {
		q = q.Where("buyerId", "==", strings.TrimSpace(*filter.BuyerID))
	}
	if filter.SellerID != nil && strings.TrimSpace(*filter.SellerID) != "" {
		q = q.Where("sellerId", "==", strings.TrimSpace(*filter.SellerID))
	}
	if filter.OfferID != nil && strings.TrimSpace(*filter.OfferID) != "" {
		q = q.Where("offerId", "==", strings.TrimSpace(*filter.OfferID))
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []purchasedom.Purchase
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := docToPurchase(doc)
		if err != nil {
			return nil, err
		}
		if matchPurchaseFilter(p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

// =======================
// Helpers
// =======================

func purchaseToDocData(p purchasedom.Purchase) map[string]any {
	return map[string]any{
		"offerId":               strings.TrimSpace(p.OfferID),
		"offerTitle":            p.OfferTitle,
		"quantity":              p.Quantity,
		"unitPrice":             p.UnitPrice,
		"sellerId":              strings.TrimSpace(p.SellerID),
		"buyerId":               strings.TrimSpace(p.BuyerID),
		"status":                string(p.Status),
		"paymentApprovalStatus": string(p.ApprovalStatus),
		"reconciled":            p.Reconciled,
		"shippingProofURL":      strings.TrimSpace(p.ShippingProofURL),
		"createdAt":             p.CreatedAt.UTC(),
		"updatedAt":             p.UpdatedAt.UTC(),
	}
}

func docToPurchase(doc *firestore.DocumentSnapshot) (purchasedom.Purchase, error) {
	data := doc.Data()
	if data == nil {
		return purchasedom.Purchase{}, fmt.Errorf("empty purchase document: %s", doc.Ref.ID)
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

	return purchasedom.Purchase{
		ID:               doc.Ref.ID,
		OfferID:          getStr("offerId"),
		OfferTitle:       getStr("offerTitle"),
		Quantity:         getInt("quantity"),
		UnitPrice:        getInt("unitPrice"),
		SellerID:         getStr("sellerId"),
		BuyerID:          getStr("buyerId"),
		Status:           purchasedom.Status(getStr("status")),
		ApprovalStatus:   purchasedom.ApprovalStatus(getStr("paymentApprovalStatus")),
		Reconciled:       getBool("reconciled"),
		ShippingProofURL: getStr("shippingProofURL"),
		CreatedAt:        getTime("createdAt"),
		UpdatedAt:        getTime("updatedAt"),
	}, nil
}

func matchPurchaseFilter(p purchasedom.Purchase, f purchasedom.Filter) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, st := range f.Statuses {
			if p.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
