package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	offerdom "stocklot/internal/domain/offer"
	imgdom "stocklot/internal/domain/offerImage"
)

var (
	ErrOfferRepoMissing      = errors.New("offer: repository is not configured")
	ErrOfferImageRepoMissing = errors.New("offer: image repository is not configured")
	ErrOfferNotOwned         = errors.New("offer: not owned by caller")
)

// OfferUsecase owns offer CRUD and the soft-delete/expiry paths. Deleting
// or expiring an offer makes it unpurchasable, so both run the watchlist
// eviction projection afterwards (best-effort, logged).
type OfferUsecase struct {
	offers    offerdom.RepositoryPort
	images    imgdom.RepositoryPort
	watchlist *WatchlistUsecase

	now func() time.Time
}

func NewOfferUsecase(
	offers offerdom.RepositoryPort,
	images imgdom.RepositoryPort,
	watchlist *WatchlistUsecase,
) *OfferUsecase {
	return &OfferUsecase{
		offers:    offers,
		images:    images,
		watchlist: watchlist,
		now:       time.Now,
	}
}

// ========================================
// Commands
// ========================================

type CreateOfferInput struct {
	SellerID    string
	CompanyID   string
	Title       string
	Description string
	Category    string
	UnitPrice   int
	Quantity    int
}

func (u *OfferUsecase) Create(ctx context.Context, in CreateOfferInput) (offerdom.Offer, error) {
	if u == nil || u.offers == nil {
		return offerdom.Offer{}, ErrOfferRepoMissing
	}

	o, err := offerdom.New(in.SellerID, in.CompanyID, in.Title, in.Description, in.Category,
		in.UnitPrice, in.Quantity, u.now().UTC())
	if err != nil {
		return offerdom.Offer{}, err
	}

	created, err := u.offers.Create(ctx, o)
	if err != nil {
		return offerdom.Offer{}, err
	}

	log.Printf("[offer_uc] created offerId=%s readableId=%s sellerId=%s qty=%d",
		created.ID, created.ReadableID, created.SellerID, created.Quantity)
	return created, nil
}

type UpdateOfferInput struct {
	Title       *string
	Description *string
	Category    *string
	UnitPrice   *int
	Quantity    *int
}

// Update patches seller-editable fields after an ownership check. Status
// and the deleted flag move only through the dedicated paths (reconcile,
// restore, delete, expire).
func (u *OfferUsecase) Update(ctx context.Context, offerID, callerUID string, in UpdateOfferInput) (offerdom.Offer, error) {
	if u == nil || u.offers == nil {
		return offerdom.Offer{}, ErrOfferRepoMissing
	}

	cur, err := u.offers.GetByID(ctx, strings.TrimSpace(offerID))
	if err != nil {
		return offerdom.Offer{}, err
	}
	if cur.SellerID != strings.TrimSpace(callerUID) {
		return offerdom.Offer{}, ErrOfferNotOwned
	}

	if in.UnitPrice != nil && *in.UnitPrice < 0 {
		return offerdom.Offer{}, offerdom.ErrInvalidUnitPrice
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return offerdom.Offer{}, offerdom.ErrInvalidQuantity
	}

	patch := offerdom.OfferPatch{
		Title:       trimPtr(in.Title),
		Description: trimPtr(in.Description),
		Category:    trimPtr(in.Category),
		UnitPrice:   in.UnitPrice,
		Quantity:    in.Quantity,
	}

	updated, err := u.offers.Update(ctx, cur.ID, patch)
	if err != nil {
		return offerdom.Offer{}, err
	}

	// Seller pulled the remaining stock to zero by hand: same eviction as a
	// sell-out.
	if updated.Quantity <= 0 {
		u.projectEviction(ctx, updated.ID)
	}
	return updated, nil
}

// SoftDelete marks the offer deleted (owner, or admin=true) and evicts it
// from every watchlist.
func (u *OfferUsecase) SoftDelete(ctx context.Context, offerID, callerUID string, isAdmin bool) (offerdom.Offer, error) {
	if u == nil || u.offers == nil {
		return offerdom.Offer{}, ErrOfferRepoMissing
	}

	cur, err := u.offers.GetByID(ctx, strings.TrimSpace(offerID))
	if err != nil {
		return offerdom.Offer{}, err
	}
	if !isAdmin && cur.SellerID != strings.TrimSpace(callerUID) {
		return offerdom.Offer{}, ErrOfferNotOwned
	}
	if cur.Deleted {
		return cur, nil
	}

	deleted, err := u.offers.SoftDelete(ctx, cur.ID)
	if err != nil {
		return offerdom.Offer{}, err
	}

	u.projectEviction(ctx, deleted.ID)
	log.Printf("[offer_uc] soft-deleted offerId=%s by=%s admin=%t", deleted.ID, callerUID, isAdmin)
	return deleted, nil
}

// MarkExpired flips an offer to expired (admin moderation) and evicts it.
func (u *OfferUsecase) MarkExpired(ctx context.Context, offerID string) (offerdom.Offer, error) {
	if u == nil || u.offers == nil {
		return offerdom.Offer{}, ErrOfferRepoMissing
	}

	st := offerdom.StatusExpired
	updated, err := u.offers.Update(ctx, strings.TrimSpace(offerID), offerdom.OfferPatch{Status: &st})
	if err != nil {
		return offerdom.Offer{}, err
	}

	u.projectEviction(ctx, updated.ID)
	return updated, nil
}

// UploadImage stores image bytes in object storage and appends the public
// URL to the offer document.
func (u *OfferUsecase) UploadImage(
	ctx context.Context,
	offerID, callerUID, fileName, contentType string,
	data []byte,
) (imgdom.OfferImage, error) {
	if u == nil || u.offers == nil {
		return imgdom.OfferImage{}, ErrOfferRepoMissing
	}
	if u.images == nil {
		return imgdom.OfferImage{}, ErrOfferImageRepoMissing
	}

	cur, err := u.offers.GetByID(ctx, strings.TrimSpace(offerID))
	if err != nil {
		return imgdom.OfferImage{}, err
	}
	if cur.SellerID != strings.TrimSpace(callerUID) {
		return imgdom.OfferImage{}, ErrOfferNotOwned
	}

	if err := imgdom.ValidateUpload(contentType, int64(len(data))); err != nil {
		return imgdom.OfferImage{}, err
	}

	img := imgdom.OfferImage{
		OfferID:     cur.ID,
		FileName:    strings.TrimSpace(fileName),
		ContentType: strings.TrimSpace(contentType),
		Size:        int64(len(data)),
	}

	stored, err := u.images.Upload(ctx, img, data)
	if err != nil {
		return imgdom.OfferImage{}, fmt.Errorf("offer: upload image for %s: %w", cur.ID, err)
	}

	urls := append(append([]string{}, cur.ImageURLs...), stored.URL)
	if _, err := u.offers.Update(ctx, cur.ID, offerdom.OfferPatch{ImageURLs: &urls}); err != nil {
		// The blob exists but is unreferenced; remove it so it cannot leak.
		if dErr := u.images.Delete(ctx, stored.ObjectPath); dErr != nil {
			log.Printf("[offer_uc] WARN: orphan image cleanup failed objectPath=%s err=%v", stored.ObjectPath, dErr)
		}
		return imgdom.OfferImage{}, err
	}

	return stored, nil
}

// ========================================
// Queries
// ========================================

// Browse is the public listing: active, undeleted offers only, regardless
// of what the filter asked for.
func (u *OfferUsecase) Browse(ctx context.Context, filter offerdom.Filter, page offerdom.Page) (offerdom.PageResult, error) {
	if u == nil || u.offers == nil {
		return offerdom.PageResult{}, ErrOfferRepoMissing
	}

	active := offerdom.StatusActive
	filter.Status = &active
	filter.Statuses = nil
	filter.IncludeDeleted = false

	return u.offers.List(ctx, filter, page)
}

// ListForSeller shows a seller their own offers in every state.
func (u *OfferUsecase) ListForSeller(ctx context.Context, sellerUID string, page offerdom.Page) (offerdom.PageResult, error) {
	if u == nil || u.offers == nil {
		return offerdom.PageResult{}, ErrOfferRepoMissing
	}
	sellerUID = strings.TrimSpace(sellerUID)
	return u.offers.List(ctx, offerdom.Filter{SellerID: &sellerUID, IncludeDeleted: true}, page)
}

func (u *OfferUsecase) GetByID(ctx context.Context, id string) (offerdom.Offer, error) {
	if u == nil || u.offers == nil {
		return offerdom.Offer{}, ErrOfferRepoMissing
	}
	return u.offers.GetByID(ctx, strings.TrimSpace(id))
}

// ========================================
// Helpers
// ========================================

func (u *OfferUsecase) projectEviction(ctx context.Context, offerID string) {
	if u.watchlist == nil {
		return
	}
	if _, err := u.watchlist.Project(ctx, offerID, 0); err != nil {
		log.Printf("[offer_uc] WARN: watchlist eviction failed offerId=%s err=%v", offerID, err)
	}
}
