package purchase

import (
	"context"
	"time"
)

type Filter struct {
	BuyerID  *string
	SellerID *string
	OfferID  *string
	Status   *Status
	Statuses []Status
}

// StatusPatch applies a lifecycle transition. A nil field means "no change".
type StatusPatch struct {
	Status           *Status
	ApprovalStatus   *ApprovalStatus
	ShippingProofURL *string
	UpdatedAt        *time.Time
}

// RepositoryPort is the outbound port for the purchases collection.
type RepositoryPort interface {
	Create(ctx context.Context, p Purchase) (Purchase, error)
	GetByID(ctx context.Context, id string) (Purchase, error)
	UpdateStatus(ctx context.Context, id string, patch StatusPatch) (Purchase, error)
	List(ctx context.Context, filter Filter) ([]Purchase, error)
}

// ========================================
// Inventory transaction port
// ========================================

// ReconcileOutcome reports the result of an atomic reconcile/restore.
// Applied is false when the operation was an idempotent no-op (already
// reconciled, or restoring a purchase that never took stock).
type ReconcileOutcome struct {
	Applied bool

	OfferID     string
	NewQuantity int
	NewStatus   string

	PurchasedQuantity int

	// SellerID / BuyerID are snapshots from the purchase read inside the
	// transaction, so callers can notify without a second lookup.
	SellerID string
	BuyerID  string
}

// InventoryTxPort performs the cross-document mutations that must be atomic:
// the purchase's reconciled flag and the offer's quantity/status move in a
// single backend transaction, so two concurrent purchases can never both
// pass the sufficient-inventory check.
type InventoryTxPort interface {
	// Reconcile decrements the offer by the purchase quantity, flipping the
	// offer to sold at zero, and sets purchase.reconciled. Fails with
	// offer.ErrInsufficientQuantity when stock does not cover the purchase;
	// never clamps.
	Reconcile(ctx context.Context, purchaseID string) (ReconcileOutcome, error)

	// Restore returns the purchase quantity to the offer, forces the offer
	// back to active and undeleted, and clears purchase.reconciled. A
	// purchase that never took stock yields Applied=false. A missing offer
	// is a loud failure: the rejection must not complete against inventory
	// that was never returned.
	Restore(ctx context.Context, purchaseID string) (ReconcileOutcome, error)
}
