package offer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ========================================
// Status
// ========================================

type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
	StatusSold     Status = "sold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusRejected, StatusExpired, StatusSold:
		return true
	}
	return false
}

// ========================================
// Entity
// ========================================

// Offer is one document of the offers collection: a seller's listed lot of
// clearance goods.
//
// Purchasable() is the single source of truth for "visible in search and
// buyable": active, not soft-deleted, quantity above zero.
type Offer struct {
	ID         string
	ReadableID string // human-facing sequence id, "oid" + 6 digits

	SellerID  string
	CompanyID string

	Title       string
	Description string
	Category    string

	UnitPrice int // minor currency units
	Quantity  int

	Status  Status
	Deleted bool

	ImageURLs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Offer) Purchasable() bool {
	return o.Status == StatusActive && !o.Deleted && o.Quantity > 0
}

// OfferPatch represents partial updates. A nil field means "no change".
type OfferPatch struct {
	Title       *string
	Description *string
	Category    *string
	UnitPrice   *int
	Quantity    *int
	Status      *Status
	Deleted     *bool
	ImageURLs   *[]string
	UpdatedAt   *time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound             = errors.New("offer: not found")
	ErrConflict             = errors.New("offer: conflict")
	ErrInvalidSellerID      = errors.New("offer: invalid sellerId")
	ErrInvalidTitle         = errors.New("offer: invalid title")
	ErrInvalidUnitPrice     = errors.New("offer: invalid unitPrice")
	ErrInvalidQuantity      = errors.New("offer: invalid quantity")
	ErrInvalidStatus        = errors.New("offer: invalid status")
	ErrNotPurchasable       = errors.New("offer: not purchasable")
	ErrInsufficientQuantity = errors.New("offer: insufficient quantity")
)

// ========================================
// Constructor
// ========================================

// New validates and builds an Offer for creation. ID and ReadableID are
// assigned by the repository.
func New(
	sellerID string,
	companyID string,
	title string,
	description string,
	category string,
	unitPrice int,
	quantity int,
	now time.Time,
) (Offer, error) {
	sid := strings.TrimSpace(sellerID)
	if sid == "" {
		return Offer{}, ErrInvalidSellerID
	}

	t := strings.TrimSpace(title)
	if t == "" {
		return Offer{}, ErrInvalidTitle
	}

	if unitPrice < 0 {
		return Offer{}, ErrInvalidUnitPrice
	}
	if quantity <= 0 {
		return Offer{}, ErrInvalidQuantity
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Offer{
		SellerID:    sid,
		CompanyID:   strings.TrimSpace(companyID),
		Title:       t,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Status:      StatusActive,
		Deleted:     false,
		ImageURLs:   []string{},
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// FormatReadableID renders a counter value as the human-facing id.
func FormatReadableID(seq int64) string {
	return fmt.Sprintf("oid%06d", seq)
}
