// internal/adapters/in/http/api/handler/watchlist_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "stocklot/internal/application/usecase"
)

// WatchlistHandler serves /api/me/watchlist. Authenticated only.
type WatchlistHandler struct {
	uc *usecase.WatchlistUsecase
}

func NewWatchlistHandler(uc *usecase.WatchlistUsecase) http.Handler {
	return &WatchlistHandler{uc: uc}
}

func (h *WatchlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	// GET /me/watchlist
	case r.Method == http.MethodGet && path == "/me/watchlist":
		h.list(w, r)
		return

	// POST /me/watchlist
	case r.Method == http.MethodPost && path == "/me/watchlist":
		h.add(w, r)
		return

	// DELETE /me/watchlist/{offerId}
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/me/watchlist/"):
		h.remove(w, r, strings.TrimPrefix(path, "/me/watchlist/"))
		return

	default:
		notFound(w)
		return
	}
}

// GET /me/watchlist resolves subscribed offers live; stale entries are
// skipped, never re-added.
func (h *WatchlistHandler) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	offers, err := h.uc.ListOffers(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toOfferDTOs(offers)})
}

// POST /me/watchlist {"offerId": "..."}
func (h *WatchlistHandler) add(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var b struct {
		OfferID string `json:"offerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if strings.TrimSpace(b.OfferID) == "" {
		badRequest(w, "offerId is required")
		return
	}

	u, err := h.uc.Add(r.Context(), uid, b.OfferID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// DELETE /me/watchlist/{offerId}
func (h *WatchlistHandler) remove(w http.ResponseWriter, r *http.Request, offerID string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	u, err := h.uc.Remove(r.Context(), uid, offerID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}
