package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GCP_PROJECT_ID", "FIRESTORE_PROJECT_ID", "FIREBASE_PROJECT_ID",
		"OFFER_IMAGE_BUCKET", "MAIL_FROM_ADDRESS", "ALLOWED_ORIGIN", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.FirestoreProjectID != "stocklot-clearance" {
		t.Fatalf("FirestoreProjectID = %q", cfg.FirestoreProjectID)
	}
	if cfg.OfferImageBucket != "stocklot-offer-images" {
		t.Fatalf("OfferImageBucket = %q", cfg.OfferImageBucket)
	}
	if cfg.AllowedOrigin != "*" {
		t.Fatalf("AllowedOrigin = %q, want *", cfg.AllowedOrigin)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty (ledger disabled)", cfg.DatabaseURL)
	}
}

func TestLoadProjectIDFanout(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "stocklot-prod")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	cfg := Load()

	if cfg.FirestoreProjectID != "stocklot-prod" || cfg.FirebaseProjectID != "stocklot-prod" {
		t.Fatalf("project fanout = %q / %q, want stocklot-prod for both",
			cfg.FirestoreProjectID, cfg.FirebaseProjectID)
	}

	t.Setenv("FIRESTORE_PROJECT_ID", "stocklot-fs")
	cfg = Load()
	if cfg.FirestoreProjectID != "stocklot-fs" {
		t.Fatalf("explicit FIRESTORE_PROJECT_ID not honored: %q", cfg.FirestoreProjectID)
	}
}
