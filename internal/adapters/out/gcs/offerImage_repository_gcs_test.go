// internal/adapters/out/gcs/offerImage_repository_gcs_test.go
package gcs

import (
	"testing"

	imgdom "stocklot/internal/domain/offerImage"
)

func TestEnsureImageIDGeneratesDistinctIDs(t *testing.T) {
	blank := imgdom.OfferImage{OfferID: "of-1", ContentType: "image/jpeg"}

	a := ensureImageID(blank)
	b := ensureImageID(blank)
	if a.ID == "" || b.ID == "" {
		t.Fatalf("generated ids must not be blank: %q / %q", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("two uploads drew the same id %q", a.ID)
	}

	pathA, err := imgdom.BuildObjectPath(a.OfferID, a.ID, a.ContentType)
	if err != nil {
		t.Fatalf("BuildObjectPath: %v", err)
	}
	pathB, err := imgdom.BuildObjectPath(b.OfferID, b.ID, b.ContentType)
	if err != nil {
		t.Fatalf("BuildObjectPath: %v", err)
	}
	if pathA == pathB {
		t.Fatalf("object path collision: %q", pathA)
	}
}

func TestEnsureImageIDKeepsProvidedID(t *testing.T) {
	img := ensureImageID(imgdom.OfferImage{OfferID: "of-1", ID: "  img-7  ", ContentType: "image/png"})
	if img.ID != "img-7" {
		t.Fatalf("id = %q, want caller's id trimmed", img.ID)
	}
}
