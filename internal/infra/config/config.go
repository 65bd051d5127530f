package config

import "os"

// Config holds the environment-derived settings for the whole service.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string
	GCPCreds                 string

	// Offer image bucket (public).
	OfferImageBucket string

	// SendGrid: API key from env, or resolved from Secret Manager when only
	// the secret name is set.
	SendGridAPIKey     string
	SendGridSecretName string
	MailFromAddress    string

	// Optional Postgres reporting mirror. Empty disables the ledger.
	DatabaseURL string

	// CORS allowed origin for the web client.
	AllowedOrigin string
}

// Load reads the environment once and returns the Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "stocklot-clearance")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		OfferImageBucket: getenvDefault("OFFER_IMAGE_BUCKET", "stocklot-offer-images"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		MailFromAddress:    getenvDefault("MAIL_FROM_ADDRESS", "noreply@stocklot.example"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
