// internal/platform/di/api/register.go
package api

import (
	"encoding/json"
	"log"
	"net/http"

	apihttp "stocklot/internal/adapters/in/http/api"
	apihandler "stocklot/internal/adapters/in/http/api/handler"
	"stocklot/internal/adapters/in/http/middleware"
)

// notImplemented returns a non-nil handler (so deps are never nil) for
// endpoints that are not wired yet.
func notImplemented(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "not_implemented",
			"name":  name,
		})
	})
}

// requireUserAuth wraps handler with UserAuthMiddleware (fail-closed).
// If middleware is not initialized, it returns 503 so the bug is obvious.
func requireUserAuth(mw *middleware.UserAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[api.register] ERROR: UserAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// Register registers marketplace routes onto mux.
// Pure DI: construct handlers and pass into api router.Register.
// - No method/path branching here
// - deps must be non-nil for all handlers
// - UserAuthMiddleware is applied to all authenticated endpoints;
//   Optional auth to the mixed public/authed ones.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	var userAuthMW *middleware.UserAuthMiddleware
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		userAuthMW = &middleware.UserAuthMiddleware{
			FirebaseAuth: cont.Infra.FirebaseAuth,
		}
	} else {
		// fail-closed in requireUserAuth
		log.Printf("[api.register] WARN: cont.Infra or cont.Infra.FirebaseAuth is nil (user auth will return 503 on protected endpoints)")
		userAuthMW = &middleware.UserAuthMiddleware{FirebaseAuth: nil}
	}

	// ----------------------------
	// Handlers (construct only)
	// ----------------------------
	offerH := notImplemented("Offer")
	companyH := notImplemented("Company")
	signInH := notImplemented("SignIn")
	meOfferH := notImplemented("MeOffer")
	purchaseH := notImplemented("Purchase")
	watchlistH := notImplemented("Watchlist")
	notificationH := notImplemented("Notification")
	adminH := notImplemented("Admin")

	if cont.OfferUC != nil {
		offerH = userAuthMW.Optional(apihandler.NewOfferHandler(cont.OfferUC))
		meOfferH = requireUserAuth(userAuthMW, apihandler.NewMeOfferHandler(cont.OfferUC), "MeOffer")
	}
	if cont.CompanyUC != nil {
		companyH = userAuthMW.Optional(apihandler.NewCompanyHandler(cont.CompanyUC))
	}
	if cont.UserUC != nil {
		signInH = requireUserAuth(userAuthMW, apihandler.NewSignInHandler(cont.UserUC), "SignIn")
	}
	if cont.PurchaseUC != nil {
		purchaseH = requireUserAuth(userAuthMW, apihandler.NewPurchaseHandler(cont.PurchaseUC), "Purchase")
	}
	if cont.WatchlistUC != nil {
		watchlistH = requireUserAuth(userAuthMW, apihandler.NewWatchlistHandler(cont.WatchlistUC), "Watchlist")
	}
	if cont.NotificationUC != nil {
		notificationH = requireUserAuth(userAuthMW, apihandler.NewNotificationHandler(cont.NotificationUC), "Notification")
	}
	if cont.PurchaseUC != nil && cont.CompanyUC != nil {
		adminH = requireUserAuth(
			userAuthMW,
			middleware.AdminOnly(apihandler.NewAdminHandler(cont.PurchaseUC, cont.OfferUC, cont.CompanyUC, cont.Ledger)),
			"Admin",
		)
	}

	apihttp.Register(mux, apihttp.Deps{
		Offer:        offerH,
		Company:      companyH,
		SignIn:       signInH,
		MeOffer:      meOfferH,
		Purchase:     purchaseH,
		Watchlist:    watchlistH,
		Notification: notificationH,
		Admin:        adminH,
	})
}
