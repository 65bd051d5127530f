// internal/adapters/in/http/api/handler/admin_handler.go
package apiHandler

import (
	"net/http"
	"strings"

	usecase "stocklot/internal/application/usecase"
)

// AdminHandler serves /api/admin: purchase moderation, company
// verification, and the optional SQL ledger. The router wraps it with
// auth + the admin-claim check.
type AdminHandler struct {
	purchases *usecase.PurchaseUsecase
	offers    *usecase.OfferUsecase
	companies *usecase.CompanyUsecase
	ledger    usecase.PurchaseLedgerPort // nil when DATABASE_URL is unset
}

func NewAdminHandler(
	purchases *usecase.PurchaseUsecase,
	offers *usecase.OfferUsecase,
	companies *usecase.CompanyUsecase,
	ledger usecase.PurchaseLedgerPort,
) http.Handler {
	return &AdminHandler{purchases: purchases, offers: offers, companies: companies, ledger: ledger}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	// POST /admin/purchases/{id}/approve
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/admin/purchases/") && strings.HasSuffix(path, "/approve"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/purchases/"), "/approve")
		h.approve(w, r, id)
		return

	// POST /admin/purchases/{id}/reject
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/admin/purchases/") && strings.HasSuffix(path, "/reject"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/purchases/"), "/reject")
		h.reject(w, r, id)
		return

	// POST /admin/purchases/{id}/complete
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/admin/purchases/") && strings.HasSuffix(path, "/complete"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/purchases/"), "/complete")
		h.complete(w, r, id)
		return

	// POST /admin/offers/{id}/expire
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/admin/offers/") && strings.HasSuffix(path, "/expire"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/offers/"), "/expire")
		h.expireOffer(w, r, id)
		return

	// POST /admin/companies/{id}/verify
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/admin/companies/") && strings.HasSuffix(path, "/verify"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/companies/"), "/verify")
		h.verifyCompany(w, r, id)
		return

	// GET /admin/ledger
	case r.Method == http.MethodGet && path == "/admin/ledger":
		h.listLedger(w, r)
		return

	default:
		notFound(w)
		return
	}
}

func (h *AdminHandler) approve(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.purchases.Approve(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}

func (h *AdminHandler) reject(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.purchases.Reject(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}

func (h *AdminHandler) complete(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.purchases.Complete(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}

func (h *AdminHandler) expireOffer(w http.ResponseWriter, r *http.Request, id string) {
	o, err := h.offers.MarkExpired(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferDTO(o))
}

func (h *AdminHandler) verifyCompany(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.companies.SetVerified(r.Context(), id, true)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDTO(c))
}

// GET /admin/ledger?limit=
func (h *AdminHandler) listLedger(w http.ResponseWriter, r *http.Request) {
	if h.ledger == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "ledger_not_configured",
		})
		return
	}

	entries, err := h.ledger.ListRecent(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		writeErr(w, err)
		return
	}

	type entryDTO struct {
		PurchaseID string `json:"purchaseId"`
		OfferID    string `json:"offerId"`
		SellerID   string `json:"sellerId"`
		BuyerID    string `json:"buyerId"`
		Quantity   int    `json:"quantity"`
		Amount     int    `json:"amount"`
		Status     string `json:"status"`
		RecordedAt string `json:"recordedAt"`
	}
	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryDTO{
			PurchaseID: e.PurchaseID,
			OfferID:    e.OfferID,
			SellerID:   e.SellerID,
			BuyerID:    e.BuyerID,
			Quantity:   e.Quantity,
			Amount:     e.Amount,
			Status:     e.Status,
			RecordedAt: e.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}
