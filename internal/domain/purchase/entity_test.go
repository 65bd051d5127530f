package purchase

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	all := []Status{
		StatusPending, StatusApproved, StatusShipped, StatusDelivered,
		StatusCompleted, StatusRejected, StatusCancelled,
	}

	allowed := map[Status]map[Status]bool{
		StatusPending:   {StatusApproved: true, StatusRejected: true, StatusCancelled: true},
		StatusApproved:  {StatusShipped: true, StatusRejected: true, StatusCancelled: true},
		StatusShipped:   {StatusDelivered: true},
		StatusDelivered: {StatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %t, want %t", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	all := []Status{
		StatusPending, StatusApproved, StatusShipped, StatusDelivered,
		StatusCompleted, StatusRejected, StatusCancelled,
	}
	for _, from := range all {
		if !from.Terminal() {
			continue
		}
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("terminal status %s must not transition to %s", from, to)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:   false,
		StatusApproved:  false,
		StatusShipped:   false,
		StatusDelivered: false,
		StatusCompleted: true,
		StatusRejected:  true,
		StatusCancelled: true,
	}
	for s, want := range cases {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %t, want %t", s, got, want)
		}
	}
}

func TestNewValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		offerID  string
		quantity int
		sellerID string
		buyerID  string
		wantErr  error
	}{
		{"ok", "of-1", 3, "seller-1", "buyer-1", nil},
		{"empty offer", " ", 3, "seller-1", "buyer-1", ErrInvalidOfferID},
		{"empty buyer", "of-1", 3, "seller-1", "", ErrInvalidBuyerID},
		{"empty seller", "of-1", 3, "", "buyer-1", ErrInvalidSellerID},
		{"zero quantity", "of-1", 0, "seller-1", "buyer-1", ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.offerID, "Pallet of jackets", tc.quantity, 1500, tc.sellerID, tc.buyerID, now)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("New() err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if p.Status != StatusPending {
				t.Fatalf("new purchase status = %s, want %s", p.Status, StatusPending)
			}
			if p.ApprovalStatus != ApprovalPending {
				t.Fatalf("new purchase approval = %s, want %s", p.ApprovalStatus, ApprovalPending)
			}
			if p.Reconciled {
				t.Fatalf("new purchase must not be reconciled")
			}
		})
	}
}
