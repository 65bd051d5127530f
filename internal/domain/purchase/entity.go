package purchase

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Status state machine
// ========================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// transitions is the forward edge set of the purchase lifecycle:
// pending -> approved -> shipped -> delivered -> completed, with the side
// branch pending|approved -> rejected|cancelled.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusShipped, StatusRejected, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {StatusCompleted},
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// ========================================
// Entity
// ========================================

// Purchase is one document of the purchases collection: a buyer's
// transaction against a single offer. Quantity and unit price are snapshots
// taken at checkout and never change afterwards.
//
// Reconciled is the persisted idempotency guard for inventory
// reconciliation: stock is decremented exactly once per purchase, and only a
// reconciled purchase returns stock when it is rejected or cancelled.
type Purchase struct {
	ID string

	OfferID    string
	OfferTitle string

	Quantity  int
	UnitPrice int

	SellerID string
	BuyerID  string

	Status         Status
	ApprovalStatus ApprovalStatus

	Reconciled bool

	ShippingProofURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound          = errors.New("purchase: not found")
	ErrInvalidOfferID    = errors.New("purchase: invalid offerId")
	ErrInvalidBuyerID    = errors.New("purchase: invalid buyerId")
	ErrInvalidSellerID   = errors.New("purchase: invalid sellerId")
	ErrInvalidQuantity   = errors.New("purchase: invalid quantity")
	ErrInvalidTransition = errors.New("purchase: invalid status transition")
	ErrNotBuyer          = errors.New("purchase: caller is not the buyer")
	ErrNotSeller         = errors.New("purchase: caller is not the seller")
)

// ========================================
// Constructor
// ========================================

func New(
	offerID string,
	offerTitle string,
	quantity int,
	unitPrice int,
	sellerID string,
	buyerID string,
	now time.Time,
) (Purchase, error) {
	oid := strings.TrimSpace(offerID)
	if oid == "" {
		return Purchase{}, ErrInvalidOfferID
	}
	bid := strings.TrimSpace(buyerID)
	if bid == "" {
		return Purchase{}, ErrInvalidBuyerID
	}
	sid := strings.TrimSpace(sellerID)
	if sid == "" {
		return Purchase{}, ErrInvalidSellerID
	}
	if quantity <= 0 {
		return Purchase{}, ErrInvalidQuantity
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Purchase{
		OfferID:        oid,
		OfferTitle:     strings.TrimSpace(offerTitle),
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		SellerID:       sid,
		BuyerID:        bid,
		Status:         StatusPending,
		ApprovalStatus: ApprovalPending,
		Reconciled:     false,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}, nil
}
