package notification

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Types / priorities
// ========================================

type Type string

const (
	TypePurchaseCreated   Type = "purchase_created"
	TypePurchaseApproved  Type = "purchase_approved"
	TypePurchaseShipped   Type = "purchase_shipped"
	TypePurchaseDelivered Type = "purchase_delivered"
	TypePurchaseCompleted Type = "purchase_completed"
	TypePurchaseRejected  Type = "purchase_rejected"
	TypePurchaseCancelled Type = "purchase_cancelled"
	TypePayout            Type = "payout"
	TypeOfferSoldOut      Type = "offer_sold_out"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ========================================
// Entity
// ========================================

// Notification is one append-only document of the notifications collection.
// Nothing mutates it after creation except IsRead.
type Notification struct {
	ID       string
	UserID   string
	Type     Type
	Title    string
	Message  string
	IsRead   bool
	Priority Priority

	// Data carries free-form context (offerId, purchaseId, amounts).
	Data map[string]any

	CreatedAt time.Time
}

// Errors (single source)
var (
	ErrNotFound      = errors.New("notification: not found")
	ErrInvalidUserID = errors.New("notification: invalid userId")
	ErrInvalidType   = errors.New("notification: invalid type")
	ErrInvalidTitle  = errors.New("notification: invalid title")
)

// New validates and builds a Notification for creation. ID is assigned by
// the repository.
func New(
	userID string,
	typ Type,
	title string,
	message string,
	data map[string]any,
	priority Priority,
	now time.Time,
) (Notification, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return Notification{}, ErrInvalidUserID
	}
	if strings.TrimSpace(string(typ)) == "" {
		return Notification{}, ErrInvalidType
	}
	t := strings.TrimSpace(title)
	if t == "" {
		return Notification{}, ErrInvalidTitle
	}

	if priority == "" {
		priority = PriorityNormal
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if data == nil {
		data = map[string]any{}
	}

	return Notification{
		UserID:    uid,
		Type:      typ,
		Title:     t,
		Message:   strings.TrimSpace(message),
		IsRead:    false,
		Priority:  priority,
		Data:      data,
		CreatedAt: now.UTC(),
	}, nil
}
