// internal/adapters/in/http/api/handler/offer_handler.go
package apiHandler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"stocklot/internal/adapters/in/http/middleware"
	usecase "stocklot/internal/application/usecase"
	offerdom "stocklot/internal/domain/offer"
)

// OfferHandler serves /api/offers. Listing and reads are public; every
// mutation requires a verified uid (Optional auth runs in front).
type OfferHandler struct {
	uc *usecase.OfferUsecase
}

func NewOfferHandler(uc *usecase.OfferUsecase) http.Handler {
	return &OfferHandler{uc: uc}
}

func (h *OfferHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	// GET /offers
	case r.Method == http.MethodGet && path == "/offers":
		h.browse(w, r)
		return

	// POST /offers
	case r.Method == http.MethodPost && path == "/offers":
		h.post(w, r)
		return

	// POST /offers/{id}/images
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/offers/") && strings.HasSuffix(path, "/images"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/offers/"), "/images")
		h.uploadImage(w, r, id)
		return

	// GET /offers/{id}
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/offers/"):
		h.get(w, r, strings.TrimPrefix(path, "/offers/"))
		return

	// PUT|PATCH /offers/{id}
	case (r.Method == http.MethodPut || r.Method == http.MethodPatch) && strings.HasPrefix(path, "/offers/"):
		h.patch(w, r, strings.TrimPrefix(path, "/offers/"))
		return

	// DELETE /offers/{id}
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/offers/"):
		h.delete(w, r, strings.TrimPrefix(path, "/offers/"))
		return

	default:
		notFound(w)
		return
	}
}

// GET /offers?q=&category=&sellerId=&page=&perPage=
func (h *OfferHandler) browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := offerdom.Filter{
		SearchQuery: strings.TrimSpace(q.Get("q")),
	}
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		filter.Category = &v
	}
	if v := strings.TrimSpace(q.Get("sellerId")); v != "" {
		filter.SellerID = &v
	}
	if v := strings.TrimSpace(q.Get("companyId")); v != "" {
		filter.CompanyID = &v
	}

	page := offerdom.Page{
		Number:  queryInt(r, "page", 1),
		PerPage: queryInt(r, "perPage", 50),
	}

	res, err := h.uc.Browse(r.Context(), filter, page)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferPageDTO(res))
}

// GET /offers/{id}
func (h *OfferHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	o, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferDTO(o))
}

// POST /offers
func (h *OfferHandler) post(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var b struct {
		CompanyID   string `json:"companyId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		UnitPrice   int    `json:"unitPrice"`
		Quantity    int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}

	o, err := h.uc.Create(r.Context(), usecase.CreateOfferInput{
		SellerID:    uid,
		CompanyID:   b.CompanyID,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		UnitPrice:   b.UnitPrice,
		Quantity:    b.Quantity,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOfferDTO(o))
}

// PATCH /offers/{id}
func (h *OfferHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var b struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		UnitPrice   *int    `json:"unitPrice"`
		Quantity    *int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}

	o, err := h.uc.Update(r.Context(), id, uid, usecase.UpdateOfferInput{
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		UnitPrice:   b.UnitPrice,
		Quantity:    b.Quantity,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferDTO(o))
}

// DELETE /offers/{id}
func (h *OfferHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	o, err := h.uc.SoftDelete(r.Context(), id, uid, middleware.IsAdmin(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferDTO(o))
}

// POST /offers/{id}/images
//
// Accepts multipart/form-data (field "file") or a raw body with an image
// Content-Type.
func (h *OfferHandler) uploadImage(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var (
		data        []byte
		fileName    string
		contentType string
	)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			badRequest(w, "invalid multipart form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "missing file field")
			return
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			badRequest(w, "unreadable file")
			return
		}
		fileName = header.Filename
		contentType = header.Header.Get("Content-Type")
	} else {
		var err error
		data, err = io.ReadAll(r.Body)
		if err != nil {
			badRequest(w, "unreadable body")
			return
		}
		contentType = ct
	}

	img, err := h.uc.UploadImage(r.Context(), id, uid, fileName, contentType, data)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         img.ID,
		"offerId":    img.OfferID,
		"url":        img.URL,
		"objectPath": img.ObjectPath,
		"size":       img.Size,
	})
}

// MeOfferHandler serves /api/me/offers: the seller's own listings,
// deleted included.
type MeOfferHandler struct {
	uc *usecase.OfferUsecase
}

func NewMeOfferHandler(uc *usecase.OfferUsecase) http.Handler {
	return &MeOfferHandler{uc: uc}
}

func (h *MeOfferHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	page := offerdom.Page{
		Number:  queryInt(r, "page", 1),
		PerPage: queryInt(r, "perPage", 50),
	}

	res, err := h.uc.ListForSeller(r.Context(), uid, page)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferPageDTO(res))
}
