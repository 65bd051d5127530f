package usecase

import (
	"context"
	"time"
)

// LedgerEntry is one append-only row of the admin reporting mirror.
type LedgerEntry struct {
	PurchaseID string
	OfferID    string
	SellerID   string
	BuyerID    string
	Quantity   int
	Amount     int // quantity * unit price, minor units
	Status     string
	RecordedAt time.Time
}

// PurchaseLedgerPort is the outbound port for the optional PostgreSQL
// reporting mirror. Recording is best-effort from the caller's point of
// view; the port itself just reports errors.
type PurchaseLedgerPort interface {
	Record(ctx context.Context, e LedgerEntry) error
	ListRecent(ctx context.Context, limit int) ([]LedgerEntry, error)
}
