package firestore

import (
	"testing"

	offerdom "stocklot/internal/domain/offer"
)

func updatePaths(t *testing.T, patch offerdom.OfferPatch) []string {
	t.Helper()
	updates, err := offerPatchUpdates(patch)
	if err != nil {
		t.Fatalf("offerPatchUpdates: %v", err)
	}
	paths := make([]string, 0, len(updates))
	for _, u := range updates {
		paths = append(paths, u.Path)
	}
	return paths
}

func countPath(paths []string, want string) int {
	n := 0
	for _, p := range paths {
		if p == want {
			n++
		}
	}
	return n
}

func TestOfferPatchZeroQuantityFlipsStatusToSold(t *testing.T) {
	zero := 0
	paths := updatePaths(t, offerdom.OfferPatch{Quantity: &zero})

	if countPath(paths, "status") != 1 {
		t.Fatalf("status paths = %v, want exactly one", paths)
	}
	updates, _ := offerPatchUpdates(offerdom.OfferPatch{Quantity: &zero})
	for _, u := range updates {
		if u.Path == "status" && u.Value != string(offerdom.StatusSold) {
			t.Fatalf("status value = %v, want sold", u.Value)
		}
	}
}

func TestOfferPatchZeroQuantityWithExplicitStatusHasSingleStatusPath(t *testing.T) {
	zero := 0
	st := offerdom.StatusExpired
	paths := updatePaths(t, offerdom.OfferPatch{Quantity: &zero, Status: &st})

	if countPath(paths, "status") != 1 {
		t.Fatalf("status paths = %v, want exactly one (duplicate field paths are rejected)", paths)
	}
	updates, _ := offerPatchUpdates(offerdom.OfferPatch{Quantity: &zero, Status: &st})
	for _, u := range updates {
		if u.Path == "status" && u.Value != string(offerdom.StatusExpired) {
			t.Fatalf("status value = %v, want the caller's status", u.Value)
		}
	}
}

func TestOfferPatchValidation(t *testing.T) {
	neg := -1
	if _, err := offerPatchUpdates(offerdom.OfferPatch{Quantity: &neg}); err != offerdom.ErrInvalidQuantity {
		t.Fatalf("negative quantity err = %v, want %v", err, offerdom.ErrInvalidQuantity)
	}
	bad := offerdom.Status("liquidated")
	if _, err := offerPatchUpdates(offerdom.OfferPatch{Status: &bad}); err != offerdom.ErrInvalidStatus {
		t.Fatalf("bad status err = %v, want %v", err, offerdom.ErrInvalidStatus)
	}
	if paths := updatePaths(t, offerdom.OfferPatch{}); len(paths) != 0 {
		t.Fatalf("empty patch paths = %v, want none", paths)
	}
}
