// internal/adapters/in/http/api/handler/helpers_test.go
package apiHandler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	usecase "stocklot/internal/application/usecase"
	companydom "stocklot/internal/domain/company"
	notifdom "stocklot/internal/domain/notification"
	offerdom "stocklot/internal/domain/offer"
	imgdom "stocklot/internal/domain/offerImage"
	purchasedom "stocklot/internal/domain/purchase"
	userdom "stocklot/internal/domain/user"
)

func TestWriteErrStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{offerdom.ErrNotFound, http.StatusNotFound},
		{purchasedom.ErrNotFound, http.StatusNotFound},
		{userdom.ErrNotFound, http.StatusNotFound},
		{notifdom.ErrNotFound, http.StatusNotFound},
		{companydom.ErrNotFound, http.StatusNotFound},

		{offerdom.ErrNotPurchasable, http.StatusConflict},
		{offerdom.ErrInsufficientQuantity, http.StatusConflict},
		{purchasedom.ErrInvalidTransition, http.StatusConflict},
		{usecase.ErrPurchaseTerminal, http.StatusConflict},
		{usecase.ErrWatchlistOfferGone, http.StatusConflict},

		{usecase.ErrOfferNotOwned, http.StatusForbidden},
		{usecase.ErrNotificationNotOwned, http.StatusForbidden},
		{purchasedom.ErrNotBuyer, http.StatusForbidden},
		{purchasedom.ErrNotSeller, http.StatusForbidden},

		{offerdom.ErrInvalidTitle, http.StatusBadRequest},
		{offerdom.ErrInvalidQuantity, http.StatusBadRequest},
		{usecase.ErrPurchaseOwnOffer, http.StatusBadRequest},
		{usecase.ErrPurchaseProofURLMissing, http.StatusBadRequest},
		{imgdom.ErrInvalidContentType, http.StatusBadRequest},
		{imgdom.ErrFileTooLarge, http.StatusBadRequest},
		{companydom.ErrInvalidContactEmail, http.StatusBadRequest},

		{errors.New("backend down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeErr(rec, tc.err)
			if rec.Code != tc.want {
				t.Fatalf("writeErr(%v) = %d, want %d", tc.err, rec.Code, tc.want)
			}
		})
	}
}

func TestWriteErrWrappedErrorKeepsMapping(t *testing.T) {
	wrapped := fmt.Errorf("reconcile purchase pur-1: %w", offerdom.ErrInsufficientQuantity)
	rec := httptest.NewRecorder()
	writeErr(rec, wrapped)
	if rec.Code != http.StatusConflict {
		t.Fatalf("wrapped writeErr = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestWriteErrNeverLeaksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErr(rec, errors.New("pq: password authentication failed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"internal_error\"}\n" {
		t.Fatalf("body leaked internals: %q", body)
	}
}

func TestTrimAPIPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/offers", "/offers"},
		{"/api/offers/", "/offers"},
		{"/api/offers/of-1/images", "/offers/of-1/images"},
		{"/healthz", "/healthz"},
	}
	for _, tc := range cases {
		if got := trimAPIPath(tc.in); got != tc.want {
			t.Fatalf("trimAPIPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/offers?page=3&perPage=abc", nil)
	if got := queryInt(r, "page", 1); got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}
	if got := queryInt(r, "perPage", 20); got != 20 {
		t.Fatalf("malformed perPage = %d, want default 20", got)
	}
	if got := queryInt(r, "missing", 7); got != 7 {
		t.Fatalf("missing key = %d, want default 7", got)
	}
}
