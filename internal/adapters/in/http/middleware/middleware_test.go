// internal/adapters/in/http/middleware/middleware_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func authedRequest(uid string, admin bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/ledger", nil)
	ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
	ctx = context.WithValue(ctx, ctxKeyAdmin, admin)
	return r.WithContext(ctx)
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	AdminOnly(next).ServeHTTP(rec, authedRequest("uid-1", false))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	AdminOnly(next).ServeHTTP(rec, authedRequest("uid-1", true))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin = %d, want 200", rec.Code)
	}

	// No auth context at all.
	rec = httptest.NewRecorder()
	AdminOnly(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/ledger", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous = %d, want 403", rec.Code)
	}
}

func TestCurrentUserHelpers(t *testing.T) {
	if _, ok := CurrentUserUID(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatalf("CurrentUserUID on a bare request must report !ok")
	}

	r := authedRequest("uid-1", false)
	uid, ok := CurrentUserUID(r)
	if !ok || uid != "uid-1" {
		t.Fatalf("CurrentUserUID = %q %t", uid, ok)
	}
	if IsAdmin(r) {
		t.Fatalf("IsAdmin must be false without the claim")
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	h := CORS("https://app.stocklot.example")(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/offers", nil))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.stocklot.example" {
		t.Fatalf("allow-origin = %q", got)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("GET must pass through, code = %d", rec.Code)
	}

	// Preflight short-circuits before the handler.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/offers", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d, want 204", rec.Code)
	}

	// Blank origin falls back to the wildcard.
	rec = httptest.NewRecorder()
	CORS("  ")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("fallback allow-origin = %q", got)
	}
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/offers", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("panic = %d, want 500", rec.Code)
	}
}
