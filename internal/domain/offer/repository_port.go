package offer

import (
	"context"
	"time"
)

// Filter narrows List results. Matching is done adapter-side.
type Filter struct {
	SearchQuery string
	SellerID    *string
	CompanyID   *string
	Category    *string
	Status      *Status
	Statuses    []Status

	// IncludeDeleted is only honored for owner/admin listings.
	IncludeDeleted bool

	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Page struct {
	Number  int
	PerPage int
}

type PageResult struct {
	Items      []Offer
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}

// RepositoryPort is the outbound port for the offers collection.
//
// Create assigns both the document id and the human-facing readable id; the
// readable id comes from an atomic counter so two concurrent creates can
// never observe the same sequence number.
type RepositoryPort interface {
	Create(ctx context.Context, o Offer) (Offer, error)
	GetByID(ctx context.Context, id string) (Offer, error)
	Update(ctx context.Context, id string, patch OfferPatch) (Offer, error)
	List(ctx context.Context, filter Filter, page Page) (PageResult, error)

	// SoftDelete marks the offer deleted without removing the document.
	SoftDelete(ctx context.Context, id string) (Offer, error)
}
