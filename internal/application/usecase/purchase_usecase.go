package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	notifdom "stocklot/internal/domain/notification"
	offerdom "stocklot/internal/domain/offer"
	purchasedom "stocklot/internal/domain/purchase"
)

var (
	ErrPurchaseRepoMissing     = errors.New("purchase: repository is not configured")
	ErrPurchaseOwnOffer        = errors.New("purchase: cannot buy your own offer")
	ErrPurchaseTerminal        = errors.New("purchase: already in a terminal state")
	ErrPurchaseProofURLMissing = errors.New("purchase: shipping proof url is required")
)

// PurchaseUsecase drives the purchase lifecycle:
//
//	pending -> approved -> shipped -> delivered -> completed
//	pending|approved -> rejected|cancelled
//
// Inventory moves exactly once, at checkout, guarded by the persisted
// reconciled flag; Complete re-invokes the reconciler, which no-ops. Reject
// and Cancel run the restorer BEFORE the status write, so a restoration
// failure leaves the transition un-applied.
type PurchaseUsecase struct {
	purchases purchasedom.RepositoryPort
	offers    offerdom.RepositoryPort

	reconciler *ReconcileUsecase
	restorer   *RestoreUsecase
	notifier   Notifier

	// ledger is optional; nil disables mirroring.
	ledger PurchaseLedgerPort

	now func() time.Time
}

func NewPurchaseUsecase(
	purchases purchasedom.RepositoryPort,
	offers offerdom.RepositoryPort,
	reconciler *ReconcileUsecase,
	restorer *RestoreUsecase,
	notifier Notifier,
	ledger PurchaseLedgerPort,
) *PurchaseUsecase {
	return &PurchaseUsecase{
		purchases:  purchases,
		offers:     offers,
		reconciler: reconciler,
		restorer:   restorer,
		notifier:   notifier,
		ledger:     ledger,
		now:        time.Now,
	}
}

// ========================================
// Checkout
// ========================================

type CheckoutInput struct {
	BuyerID  string
	OfferID  string
	Quantity int
}

// Checkout creates the pending purchase and immediately reconciles its
// inventory. The pre-checks here are advisory; the authoritative
// sufficient-inventory check runs inside the reconcile transaction. When
// that check fails the purchase is closed as cancelled and the validation
// error surfaces to the buyer.
func (u *PurchaseUsecase) Checkout(ctx context.Context, in CheckoutInput) (purchasedom.Purchase, error) {
	if u == nil || u.purchases == nil {
		return purchasedom.Purchase{}, ErrPurchaseRepoMissing
	}
	if u.offers == nil {
		return purchasedom.Purchase{}, ErrWatchlistOffersRepoMissing
	}
	if u.reconciler == nil {
		return purchasedom.Purchase{}, ErrReconcileTxMissing
	}

	o, err := u.offers.GetByID(ctx, strings.TrimSpace(in.OfferID))
	if err != nil {
		return purchasedom.Purchase{}, err
	}
	if !o.Purchasable() {
		return purchasedom.Purchase{}, offerdom.ErrNotPurchasable
	}
	if strings.TrimSpace(in.BuyerID) == o.SellerID {
		return purchasedom.Purchase{}, ErrPurchaseOwnOffer
	}
	if in.Quantity > o.Quantity {
		return purchasedom.Purchase{}, offerdom.ErrInsufficientQuantity
	}

	p, err := purchasedom.New(o.ID, o.Title, in.Quantity, o.UnitPrice, o.SellerID, in.BuyerID, u.now().UTC())
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	created, err := u.purchases.Create(ctx, p)
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	if _, err := u.reconciler.Reconcile(ctx, created.ID); err != nil {
		// The purchase took no stock; close it so it cannot linger pending.
		u.closeUnreconciled(ctx, created.ID, err)
		return purchasedom.Purchase{}, err
	}

	u.notify(o.SellerID, notifdom.TypePurchaseCreated, "New purchase",
		fmt.Sprintf("A buyer purchased %d units of %q.", created.Quantity, created.OfferTitle),
		created, notifdom.PriorityNormal)

	log.Printf("[purchase_uc] checkout ok purchaseId=%s offerId=%s buyerId=%s qty=%d",
		created.ID, created.OfferID, created.BuyerID, created.Quantity)

	return u.purchases.GetByID(ctx, created.ID)
}

func (u *PurchaseUsecase) closeUnreconciled(ctx context.Context, purchaseID string, cause error) {
	st := purchasedom.StatusCancelled
	now := u.now().UTC()
	if _, uErr := u.purchases.UpdateStatus(ctx, purchaseID, purchasedom.StatusPatch{
		Status:    &st,
		UpdatedAt: &now,
	}); uErr != nil {
		log.Printf("[purchase_uc] WARN: could not close unreconciled purchase purchaseId=%s cause=%v closeErr=%v",
			purchaseID, cause, uErr)
	}
}

// ========================================
// Lifecycle transitions
// ========================================

// Approve marks payment as confirmed (admin). No inventory effect.
func (u *PurchaseUsecase) Approve(ctx context.Context, purchaseID string) (purchasedom.Purchase, error) {
	approved := purchasedom.ApprovalApproved
	p, err := u.transition(ctx, purchaseID, purchasedom.StatusApproved, purchasedom.StatusPatch{
		ApprovalStatus: &approved,
	}, nil)
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	u.notify(p.SellerID, notifdom.TypePurchaseApproved, "Payment approved",
		fmt.Sprintf("Payment for %q has been approved. Please ship the goods.", p.OfferTitle),
		p, notifdom.PriorityHigh)

	return p, nil
}

// Ship records the proof-of-shipping upload (seller).
func (u *PurchaseUsecase) Ship(ctx context.Context, purchaseID, sellerUID, proofURL string) (purchasedom.Purchase, error) {
	proofURL = strings.TrimSpace(proofURL)
	if proofURL == "" {
		return purchasedom.Purchase{}, ErrPurchaseProofURLMissing
	}

	p, err := u.transition(ctx, purchaseID, purchasedom.StatusShipped, purchasedom.StatusPatch{
		ShippingProofURL: &proofURL,
	}, func(cur purchasedom.Purchase) error {
		if cur.SellerID != strings.TrimSpace(sellerUID) {
			return purchasedom.ErrNotSeller
		}
		return nil
	})
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	u.notify(p.BuyerID, notifdom.TypePurchaseShipped, "Goods shipped",
		fmt.Sprintf("The seller shipped your purchase of %q.", p.OfferTitle), p, notifdom.PriorityNormal)
	u.notify(p.SellerID, notifdom.TypePurchaseShipped, "Shipping recorded",
		fmt.Sprintf("Shipping proof for %q was recorded.", p.OfferTitle), p, notifdom.PriorityLow)

	return p, nil
}

// Deliver confirms receipt (buyer).
func (u *PurchaseUsecase) Deliver(ctx context.Context, purchaseID, buyerUID string) (purchasedom.Purchase, error) {
	p, err := u.transition(ctx, purchaseID, purchasedom.StatusDelivered, purchasedom.StatusPatch{},
		func(cur purchasedom.Purchase) error {
			if cur.BuyerID != strings.TrimSpace(buyerUID) {
				return purchasedom.ErrNotBuyer
			}
			return nil
		})
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	u.notify(p.BuyerID, notifdom.TypePurchaseDelivered, "Delivery confirmed",
		fmt.Sprintf("You confirmed delivery of %q.", p.OfferTitle), p, notifdom.PriorityNormal)
	u.notify(p.SellerID, notifdom.TypePurchaseDelivered, "Delivery confirmed",
		fmt.Sprintf("The buyer confirmed delivery of %q. Payout is pending.", p.OfferTitle), p, notifdom.PriorityNormal)

	return p, nil
}

// Complete closes the purchase administratively. The reconciler is invoked
// again and no-ops through the persisted flag; inventory already moved at
// checkout.
func (u *PurchaseUsecase) Complete(ctx context.Context, purchaseID string) (purchasedom.Purchase, error) {
	p, err := u.transition(ctx, purchaseID, purchasedom.StatusCompleted, purchasedom.StatusPatch{}, nil)
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	if u.reconciler != nil {
		if _, rErr := u.reconciler.Reconcile(ctx, p.ID); rErr != nil {
			log.Printf("[purchase_uc] WARN: completed-path reconcile failed purchaseId=%s err=%v", p.ID, rErr)
		}
	}

	u.notify(p.SellerID, notifdom.TypePayout, "Payout released",
		fmt.Sprintf("The purchase of %q is complete; payout has been released.", p.OfferTitle),
		p, notifdom.PriorityHigh)

	u.recordLedger(ctx, p)
	return p, nil
}

// Reject declines payment (admin). Inventory is restored BEFORE the status
// write; a restoration failure aborts the rejection.
func (u *PurchaseUsecase) Reject(ctx context.Context, purchaseID string) (purchasedom.Purchase, error) {
	return u.close(ctx, purchaseID, purchasedom.StatusRejected, "", notifdom.TypePurchaseRejected,
		"Purchase rejected", "The payment was rejected and the reserved goods were returned to the offer.")
}

// Cancel withdraws the purchase (buyer, or admin with empty callerUID).
func (u *PurchaseUsecase) Cancel(ctx context.Context, purchaseID, callerUID string) (purchasedom.Purchase, error) {
	return u.close(ctx, purchaseID, purchasedom.StatusCancelled, callerUID, notifdom.TypePurchaseCancelled,
		"Purchase cancelled", "The purchase was cancelled and the reserved goods were returned to the offer.")
}

func (u *PurchaseUsecase) close(
	ctx context.Context,
	purchaseID string,
	to purchasedom.Status,
	callerUID string,
	typ notifdom.Type,
	title, message string,
) (purchasedom.Purchase, error) {
	if u == nil || u.purchases == nil {
		return purchasedom.Purchase{}, ErrPurchaseRepoMissing
	}
	if u.restorer == nil {
		return purchasedom.Purchase{}, ErrRestoreTxMissing
	}

	cur, err := u.purchases.GetByID(ctx, strings.TrimSpace(purchaseID))
	if err != nil {
		return purchasedom.Purchase{}, err
	}
	if cur.Status.Terminal() {
		return purchasedom.Purchase{}, ErrPurchaseTerminal
	}
	if !purchasedom.CanTransition(cur.Status, to) {
		return purchasedom.Purchase{}, fmt.Errorf("%w: %s -> %s", purchasedom.ErrInvalidTransition, cur.Status, to)
	}
	if callerUID = strings.TrimSpace(callerUID); callerUID != "" && cur.BuyerID != callerUID {
		return purchasedom.Purchase{}, purchasedom.ErrNotBuyer
	}

	// Primary effect first: inventory back before the terminal status.
	if _, err := u.restorer.Restore(ctx, cur.ID); err != nil {
		return purchasedom.Purchase{}, err
	}

	now := u.now().UTC()
	patch := purchasedom.StatusPatch{Status: &to, UpdatedAt: &now}
	if to == purchasedom.StatusRejected {
		rejected := purchasedom.ApprovalRejected
		patch.ApprovalStatus = &rejected
	}

	p, err := u.purchases.UpdateStatus(ctx, cur.ID, patch)
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	u.notify(p.BuyerID, typ, title, message, p, notifdom.PriorityHigh)
	u.notify(p.SellerID, typ, title, message, p, notifdom.PriorityNormal)

	u.recordLedger(ctx, p)
	return p, nil
}

// transition is the shared guard-check-update path for forward edges.
func (u *PurchaseUsecase) transition(
	ctx context.Context,
	purchaseID string,
	to purchasedom.Status,
	patch purchasedom.StatusPatch,
	guard func(purchasedom.Purchase) error,
) (purchasedom.Purchase, error) {
	if u == nil || u.purchases == nil {
		return purchasedom.Purchase{}, ErrPurchaseRepoMissing
	}

	cur, err := u.purchases.GetByID(ctx, strings.TrimSpace(purchaseID))
	if err != nil {
		return purchasedom.Purchase{}, err
	}
	if !purchasedom.CanTransition(cur.Status, to) {
		return purchasedom.Purchase{}, fmt.Errorf("%w: %s -> %s", purchasedom.ErrInvalidTransition, cur.Status, to)
	}
	if guard != nil {
		if err := guard(cur); err != nil {
			return purchasedom.Purchase{}, err
		}
	}

	now := u.now().UTC()
	patch.Status = &to
	patch.UpdatedAt = &now

	p, err := u.purchases.UpdateStatus(ctx, cur.ID, patch)
	if err != nil {
		return purchasedom.Purchase{}, err
	}

	log.Printf("[purchase_uc] transition purchaseId=%s %s -> %s", p.ID, cur.Status, to)
	return p, nil
}

// ========================================
// Queries
// ========================================

// ListForUser returns purchases where uid is buyer or seller.
func (u *PurchaseUsecase) ListForUser(ctx context.Context, uid string) ([]purchasedom.Purchase, error) {
	if u == nil || u.purchases == nil {
		return nil, ErrPurchaseRepoMissing
	}
	uid = strings.TrimSpace(uid)

	asBuyer, err := u.purchases.List(ctx, purchasedom.Filter{BuyerID: &uid})
	if err != nil {
		return nil, err
	}
	asSeller, err := u.purchases.List(ctx, purchasedom.Filter{SellerID: &uid})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(asBuyer))
	out := make([]purchasedom.Purchase, 0, len(asBuyer)+len(asSeller))
	for _, p := range asBuyer {
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	for _, p := range asSeller {
		if _, ok := seen[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (u *PurchaseUsecase) GetByID(ctx context.Context, id string) (purchasedom.Purchase, error) {
	if u == nil || u.purchases == nil {
		return purchasedom.Purchase{}, ErrPurchaseRepoMissing
	}
	return u.purchases.GetByID(ctx, strings.TrimSpace(id))
}

// ========================================
// Helpers
// ========================================

func (u *PurchaseUsecase) notify(userID string, typ notifdom.Type, title, message string, p purchasedom.Purchase, prio notifdom.Priority) {
	if u.notifier == nil || strings.TrimSpace(userID) == "" {
		return
	}
	u.notifier.Notify(EmitInput{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data: map[string]any{
			"purchaseId": p.ID,
			"offerId":    p.OfferID,
			"quantity":   p.Quantity,
		},
		Priority: prio,
	})
}

// recordLedger mirrors terminal transitions into the reporting table,
// best-effort.
func (u *PurchaseUsecase) recordLedger(ctx context.Context, p purchasedom.Purchase) {
	if u.ledger == nil {
		return
	}
	err := u.ledger.Record(ctx, LedgerEntry{
		PurchaseID: p.ID,
		OfferID:    p.OfferID,
		SellerID:   p.SellerID,
		BuyerID:    p.BuyerID,
		Quantity:   p.Quantity,
		Amount:     p.Quantity * p.UnitPrice,
		Status:     string(p.Status),
		RecordedAt: u.now().UTC(),
	})
	if err != nil {
		log.Printf("[purchase_uc] WARN: ledger record failed purchaseId=%s err=%v", p.ID, err)
	}
}
