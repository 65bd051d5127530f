// internal/adapters/out/gcs/common/gcs_repository_test.go
package common

import "testing"

func TestGCSPublicURL(t *testing.T) {
	cases := []struct {
		name                          string
		bucket, objectPath, fallback  string
		want                          string
	}{
		{"plain", "lots", "offers/of-1/images/img-1.png", "", "https://storage.googleapis.com/lots/offers/of-1/images/img-1.png"},
		{"leading slash stripped", "lots", "/offers/x.png", "", "https://storage.googleapis.com/lots/offers/x.png"},
		{"fallback bucket", "  ", "offers/x.png", "default-lots", "https://storage.googleapis.com/default-lots/offers/x.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GCSPublicURL(tc.bucket, tc.objectPath, tc.fallback); got != tc.want {
				t.Fatalf("GCSPublicURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseGCSURL(t *testing.T) {
	bucket, obj, ok := ParseGCSURL("https://storage.googleapis.com/lots/offers/of-1/images/img-1.png")
	if !ok || bucket != "lots" || obj != "offers/of-1/images/img-1.png" {
		t.Fatalf("ParseGCSURL = %q %q %t", bucket, obj, ok)
	}

	bucket, obj, ok = ParseGCSURL("https://storage.cloud.google.com/lots/a%20b.png")
	if !ok || bucket != "lots" || obj != "a b.png" {
		t.Fatalf("ParseGCSURL escaped = %q %q %t", bucket, obj, ok)
	}

	for _, bad := range []string{
		"https://example.com/lots/x.png",
		"https://storage.googleapis.com/",
		"https://storage.googleapis.com/bucket-only",
		"offers/of-1/images/img-1.png",
	} {
		if _, _, ok := ParseGCSURL(bad); ok {
			t.Fatalf("ParseGCSURL(%q) should not parse", bad)
		}
	}
}
