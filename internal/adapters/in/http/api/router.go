// internal/adapters/in/http/api/router.go
package api

import (
	"log"
	"net/http"
)

// Deps is the marketplace handler set.
type Deps struct {
	// public reads + authed writes (Optional auth wrapped)
	Offer   http.Handler
	Company http.Handler

	// authenticated
	SignIn       http.Handler // also serves /api/me
	MeOffer      http.Handler
	Purchase     http.Handler
	Watchlist    http.Handler
	Notification http.Handler

	// authenticated + admin claim
	Admin http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[api.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers marketplace routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// offers
	handleSafe(mux, "/api/offers", deps.Offer, "Offer")
	handleSafe(mux, "/api/offers/", deps.Offer, "Offer")
	handleSafe(mux, "/api/me/offers", deps.MeOffer, "MeOffer")

	// purchases
	handleSafe(mux, "/api/purchases", deps.Purchase, "Purchase")
	handleSafe(mux, "/api/purchases/", deps.Purchase, "Purchase")

	// watchlist
	handleSafe(mux, "/api/me/watchlist", deps.Watchlist, "Watchlist")
	handleSafe(mux, "/api/me/watchlist/", deps.Watchlist, "Watchlist")

	// notifications
	handleSafe(mux, "/api/me/notifications", deps.Notification, "Notification")
	handleSafe(mux, "/api/me/notifications/", deps.Notification, "Notification")

	// companies
	handleSafe(mux, "/api/companies", deps.Company, "Company")
	handleSafe(mux, "/api/companies/", deps.Company, "Company")

	// profile
	handleSafe(mux, "/api/signin", deps.SignIn, "SignIn")
	handleSafe(mux, "/api/me", deps.SignIn, "Me")

	// admin
	handleSafe(mux, "/api/admin/", deps.Admin, "Admin")
}
