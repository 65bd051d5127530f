package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	purchasedom "stocklot/internal/domain/purchase"
)

var ErrRestoreTxMissing = errors.New("restore: inventory tx port is not configured")

// RestoreUsecase returns a rejected or cancelled purchase's quantity to its
// offer.
//
// A failed offer lookup here is business-critical, not best-effort: a
// purchase marked rejected against inventory that was never returned is the
// exact corruption this flow exists to prevent, so the error propagates
// loudly and the caller must not complete its status transition.
//
// Restoration never re-subscribes users: the projector is invoked with the
// restored (positive) quantity, which by contract performs no per-user
// write.
type RestoreUsecase struct {
	invTx     purchasedom.InventoryTxPort
	watchlist *WatchlistUsecase
}

func NewRestoreUsecase(invTx purchasedom.InventoryTxPort, watchlist *WatchlistUsecase) *RestoreUsecase {
	return &RestoreUsecase{invTx: invTx, watchlist: watchlist}
}

// Restore re-adds the purchase quantity, reactivates and un-deletes the
// offer, and clears the purchase's reconciled flag — all in one backend
// transaction. A purchase that never took stock yields Applied=false and no
// inventory change.
func (u *RestoreUsecase) Restore(ctx context.Context, purchaseID string) (purchasedom.ReconcileOutcome, error) {
	if u == nil || u.invTx == nil {
		return purchasedom.ReconcileOutcome{}, ErrRestoreTxMissing
	}

	purchaseID = strings.TrimSpace(purchaseID)
	if purchaseID == "" {
		return purchasedom.ReconcileOutcome{}, purchasedom.ErrNotFound
	}

	out, err := u.invTx.Restore(ctx, purchaseID)
	if err != nil {
		return purchasedom.ReconcileOutcome{}, fmt.Errorf("restore purchase %s: %w", purchaseID, err)
	}

	if !out.Applied {
		log.Printf("[restore_uc] purchase never took stock purchaseId=%s offerId=%s (no inventory change)", purchaseID, out.OfferID)
		return out, nil
	}

	log.Printf("[restore_uc] restored purchaseId=%s offerId=%s returned=%d quantity=%d",
		purchaseID, out.OfferID, out.PurchasedQuantity, out.NewQuantity)

	// Positive quantity: evict-only projector writes nothing, by design.
	if u.watchlist != nil {
		if _, err := u.watchlist.Project(ctx, out.OfferID, out.NewQuantity); err != nil {
			log.Printf("[restore_uc] WARN: watchlist projection failed offerId=%s err=%v", out.OfferID, err)
		}
	}

	return out, nil
}
