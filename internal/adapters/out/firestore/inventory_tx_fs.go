package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	offerdom "stocklot/internal/domain/offer"
	purchasedom "stocklot/internal/domain/purchase"
)

// InventoryTxFS implements purchase.InventoryTxPort with Firestore
// transactions.
//
// Each operation reads the purchase and its offer, applies the business
// check, and writes both documents inside one RunTransaction, so the
// read-check-write is atomic: Firestore retries the closure on contention,
// and two concurrent purchases can never both pass the sufficient-inventory
// check against the same snapshot.
type InventoryTxFS struct {
	Client *firestore.Client
}

func NewInventoryTxFS(client *firestore.Client) *InventoryTxFS {
	return &InventoryTxFS{Client: client}
}

// Compile-time check
var _ purchasedom.InventoryTxPort = (*InventoryTxFS)(nil)

func (r *InventoryTxFS) purchaseDoc(id string) *firestore.DocumentRef {
	return r.Client.Collection(purchasesCollection).Doc(id)
}

func (r *InventoryTxFS) offerDoc(id string) *firestore.DocumentRef {
	return r.Client.Collection(offersCollection).Doc(id)
}

// Reconcile decrements the offer by the purchase quantity exactly once.
func (r *InventoryTxFS) Reconcile(ctx context.Context, purchaseID string) (purchasedom.ReconcileOutcome, error) {
	if r.Client == nil {
		return purchasedom.ReconcileOutcome{}, errors.New("firestore client is nil")
	}

	purchaseID = strings.TrimSpace(purchaseID)
	if purchaseID == "" {
		return purchasedom.ReconcileOutcome{}, purchasedom.ErrNotFound
	}

	var out purchasedom.ReconcileOutcome

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		p, err := r.txGetPurchase(tx, purchaseID)
		if err != nil {
			return err
		}

		out = purchasedom.ReconcileOutcome{
			OfferID:           p.OfferID,
			PurchasedQuantity: p.Quantity,
			SellerID:          p.SellerID,
			BuyerID:           p.BuyerID,
		}

		if p.Reconciled {
			// idempotent: stock already moved for this purchase
			out.Applied = false
			o, err := r.txGetOffer(tx, p.OfferID)
			if err != nil {
				return err
			}
			out.NewQuantity = o.Quantity
			out.NewStatus = string(o.Status)
			return nil
		}

		if p.Quantity <= 0 {
			return purchasedom.ErrInvalidQuantity
		}

		o, err := r.txGetOffer(tx, p.OfferID)
		if err != nil {
			return err
		}

		if o.Quantity < p.Quantity {
			return offerdom.ErrInsufficientQuantity
		}

		remaining := o.Quantity - p.Quantity
		newStatus := o.Status
		if remaining <= 0 {
			remaining = 0
			newStatus = offerdom.StatusSold
		}

		now := time.Now().UTC()

		if err := tx.Update(r.offerDoc(p.OfferID), []firestore.Update{
			{Path: "quantity", Value: remaining},
			{Path: "status", Value: string(newStatus)},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		if err := tx.Update(r.purchaseDoc(purchaseID), []firestore.Update{
			{Path: "reconciled", Value: true},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		out.Applied = true
		out.NewQuantity = remaining
		out.NewStatus = string(newStatus)
		return nil
	})
	if err != nil {
		return purchasedom.ReconcileOutcome{}, err
	}
	return out, nil
}

// Restore returns the purchase quantity to the offer and reactivates it.
// Only a reconciled purchase moves stock; others are a no-op outcome.
func (r *InventoryTxFS) Restore(ctx context.Context, purchaseID string) (purchasedom.ReconcileOutcome, error) {
	if r.Client == nil {
		return purchasedom.ReconcileOutcome{}, errors.New("firestore client is nil")
	}

	purchaseID = strings.TrimSpace(purchaseID)
	if purchaseID == "" {
		return purchasedom.ReconcileOutcome{}, purchasedom.ErrNotFound
	}

	var out purchasedom.ReconcileOutcome

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		p, err := r.txGetPurchase(tx, purchaseID)
		if err != nil {
			return err
		}

		out = purchasedom.ReconcileOutcome{
			OfferID:           p.OfferID,
			PurchasedQuantity: p.Quantity,
			SellerID:          p.SellerID,
			BuyerID:           p.BuyerID,
		}

		if !p.Reconciled {
			// never took stock; nothing to return
			out.Applied = false
			return nil
		}

		// Offer lookup failure is fatal here: a rejected purchase against
		// inventory that was never returned is business-critical corruption.
		o, err := r.txGetOffer(tx, p.OfferID)
		if err != nil {
			return err
		}

		restored := o.Quantity + p.Quantity
		now := time.Now().UTC()

		if err := tx.Update(r.offerDoc(p.OfferID), []firestore.Update{
			{Path: "quantity", Value: restored},
			{Path: "status", Value: string(offerdom.StatusActive)},
			{Path: "deleted", Value: false},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		if err := tx.Update(r.purchaseDoc(purchaseID), []firestore.Update{
			{Path: "reconciled", Value: false},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		out.Applied = true
		out.NewQuantity = restored
		out.NewStatus = string(offerdom.StatusActive)
		return nil
	})
	if err != nil {
		return purchasedom.ReconcileOutcome{}, err
	}
	return out, nil
}

// =======================
// tx read helpers
// =======================

func (r *InventoryTxFS) txGetPurchase(tx *firestore.Transaction, id string) (purchasedom.Purchase, error) {
	snap, err := tx.Get(r.purchaseDoc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return purchasedom.Purchase{}, purchasedom.ErrNotFound
		}
		return purchasedom.Purchase{}, err
	}
	return docToPurchase(snap)
}

func (r *InventoryTxFS) txGetOffer(tx *firestore.Transaction, id string) (offerdom.Offer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}
	snap, err := tx.Get(r.offerDoc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return offerdom.Offer{}, offerdom.ErrNotFound
		}
		return offerdom.Offer{}, err
	}
	return docToOffer(snap)
}
