package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	notifdom "stocklot/internal/domain/notification"
	purchasedom "stocklot/internal/domain/purchase"
)

var ErrReconcileTxMissing = errors.New("reconcile: inventory tx port is not configured")

// ReconcileUsecase applies a purchase against offer inventory.
//
// The decrement itself runs inside a single backend transaction (see
// purchase.InventoryTxPort), so concurrent purchases against one offer can
// never both pass the sufficient-inventory check. The persisted reconciled
// flag makes the operation idempotent per purchase: the second call is a
// no-op, whichever code path issues it.
//
// The watchlist projection and the sold-out notification run after the
// committed mutation and are best-effort: their failures are logged, never
// propagated, because the primary effect is already durable.
type ReconcileUsecase struct {
	invTx     purchasedom.InventoryTxPort
	watchlist *WatchlistUsecase
	notifier  Notifier
}

func NewReconcileUsecase(
	invTx purchasedom.InventoryTxPort,
	watchlist *WatchlistUsecase,
	notifier Notifier,
) *ReconcileUsecase {
	return &ReconcileUsecase{
		invTx:     invTx,
		watchlist: watchlist,
		notifier:  notifier,
	}
}

// Reconcile decrements the purchase's offer once. Validation and not-found
// errors on the primary mutation propagate; the caller's transition must
// not be considered complete when they do.
func (u *ReconcileUsecase) Reconcile(ctx context.Context, purchaseID string) (purchasedom.ReconcileOutcome, error) {
	if u == nil || u.invTx == nil {
		return purchasedom.ReconcileOutcome{}, ErrReconcileTxMissing
	}

	purchaseID = strings.TrimSpace(purchaseID)
	if purchaseID == "" {
		return purchasedom.ReconcileOutcome{}, purchasedom.ErrNotFound
	}

	out, err := u.invTx.Reconcile(ctx, purchaseID)
	if err != nil {
		return purchasedom.ReconcileOutcome{}, fmt.Errorf("reconcile purchase %s: %w", purchaseID, err)
	}

	if !out.Applied {
		log.Printf("[reconcile_uc] already reconciled purchaseId=%s offerId=%s (no-op)", purchaseID, out.OfferID)
		return out, nil
	}

	log.Printf("[reconcile_uc] applied purchaseId=%s offerId=%s purchased=%d remaining=%d status=%s",
		purchaseID, out.OfferID, out.PurchasedQuantity, out.NewQuantity, out.NewStatus)

	u.projectWatchlists(ctx, out)
	u.notifySoldOut(out)

	return out, nil
}

// projectWatchlists runs the eviction fan-out with the NEW quantity.
// Failures are swallowed: the offer mutation is already committed.
func (u *ReconcileUsecase) projectWatchlists(ctx context.Context, out purchasedom.ReconcileOutcome) {
	if u.watchlist == nil {
		return
	}
	affected, err := u.watchlist.Project(ctx, out.OfferID, out.NewQuantity)
	if err != nil {
		log.Printf("[reconcile_uc] WARN: watchlist projection failed offerId=%s err=%v", out.OfferID, err)
		return
	}
	if len(affected) > 0 {
		log.Printf("[reconcile_uc] watchlist evicted offerId=%s users=%d", out.OfferID, len(affected))
	}
}

func (u *ReconcileUsecase) notifySoldOut(out purchasedom.ReconcileOutcome) {
	if u.notifier == nil || out.NewQuantity > 0 || out.SellerID == "" {
		return
	}
	u.notifier.Notify(EmitInput{
		UserID:  out.SellerID,
		Type:    notifdom.TypeOfferSoldOut,
		Title:   "Offer sold out",
		Message: "Your offer has sold out and was removed from buyer watchlists.",
		Data: map[string]any{
			"offerId": out.OfferID,
		},
		Priority: notifdom.PriorityNormal,
	})
}
