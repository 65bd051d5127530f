// internal/adapters/in/http/api/handler/purchase_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "stocklot/internal/application/usecase"
)

// PurchaseHandler serves /api/purchases. Every route is authenticated;
// the router wraps this handler with UserAuthMiddleware.
type PurchaseHandler struct {
	uc *usecase.PurchaseUsecase
}

func NewPurchaseHandler(uc *usecase.PurchaseUsecase) http.Handler {
	return &PurchaseHandler{uc: uc}
}

func (h *PurchaseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	// GET /purchases (buyer + seller sides merged)
	case r.Method == http.MethodGet && path == "/purchases":
		h.list(w, r)
		return

	// POST /purchases
	case r.Method == http.MethodPost && path == "/purchases":
		h.checkout(w, r)
		return

	// POST /purchases/{id}/ship
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/purchases/") && strings.HasSuffix(path, "/ship"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/purchases/"), "/ship")
		h.ship(w, r, id)
		return

	// POST /purchases/{id}/deliver
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/purchases/") && strings.HasSuffix(path, "/deliver"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/purchases/"), "/deliver")
		h.deliver(w, r, id)
		return

	// POST /purchases/{id}/cancel
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/purchases/") && strings.HasSuffix(path, "/cancel"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/purchases/"), "/cancel")
		h.cancel(w, r, id)
		return

	// GET /purchases/{id}
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/purchases/"):
		h.get(w, r, strings.TrimPrefix(path, "/purchases/"))
		return

	default:
		notFound(w)
		return
	}
}

// POST /purchases
func (h *PurchaseHandler) checkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var b struct {
		OfferID  string `json:"offerId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}

	p, err := h.uc.Checkout(r.Context(), usecase.CheckoutInput{
		BuyerID:  uid,
		OfferID:  b.OfferID,
		Quantity: b.Quantity,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPurchaseDTO(p))
}

// GET /purchases
func (h *PurchaseHandler) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	items, err := h.uc.ListForUser(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toPurchaseDTOs(items)})
}

// GET /purchases/{id}
func (h *PurchaseHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	p, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeErr(w, err)
		return
	}
	// only the two parties may read a purchase
	if p.BuyerID != uid && p.SellerID != uid {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}

// POST /purchases/{id}/ship
func (h *PurchaseHandler) ship(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var b struct {
		ShippingProofURL string `json:"shippingProofUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}

	p, err := h.uc.Ship(r.Context(), id, uid, b.ShippingProofURL)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}

// POST /purchases/{id}/deliver
func (h *PurchaseHandler) deliver(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	p, err := h.uc.Deliver(r.Context(), id, uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}

// POST /purchases/{id}/cancel
func (h *PurchaseHandler) cancel(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	p, err := h.uc.Cancel(r.Context(), id, uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPurchaseDTO(p))
}
