// internal/adapters/in/http/api/handler/company_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "stocklot/internal/application/usecase"
)

// CompanyHandler serves /api/companies. Reads are public; create/update
// require auth (Optional auth runs in front). Verification lives under
// /api/admin.
type CompanyHandler struct {
	uc *usecase.CompanyUsecase
}

func NewCompanyHandler(uc *usecase.CompanyUsecase) http.Handler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	// GET /companies
	case r.Method == http.MethodGet && path == "/companies":
		h.list(w, r)
		return

	// POST /companies
	case r.Method == http.MethodPost && path == "/companies":
		h.post(w, r)
		return

	// GET /companies/{id}
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/companies/"):
		h.get(w, r, strings.TrimPrefix(path, "/companies/"))
		return

	// PUT|PATCH /companies/{id}
	case (r.Method == http.MethodPut || r.Method == http.MethodPatch) && strings.HasPrefix(path, "/companies/"):
		h.patch(w, r, strings.TrimPrefix(path, "/companies/"))
		return

	default:
		notFound(w)
		return
	}
}

func (h *CompanyHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]companyDTO, 0, len(items))
	for _, c := range items {
		out = append(out, toCompanyDTO(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *CompanyHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDTO(c))
}

func (h *CompanyHandler) post(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUID(w, r); !ok {
		return
	}

	var b struct {
		Name         string `json:"name"`
		Address      string `json:"address"`
		ContactEmail string `json:"contactEmail"`
		LogoURL      string `json:"logoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}

	c, err := h.uc.Create(r.Context(), usecase.CreateCompanyInput{
		Name:         b.Name,
		Address:      b.Address,
		ContactEmail: b.ContactEmail,
		LogoURL:      b.LogoURL,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyDTO(c))
}

func (h *CompanyHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := requireUID(w, r); !ok {
		return
	}

	var b struct {
		Name         *string `json:"name"`
		Address      *string `json:"address"`
		ContactEmail *string `json:"contactEmail"`
		LogoURL      *string `json:"logoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid json")
		return
	}

	c, err := h.uc.Update(r.Context(), id, usecase.UpdateCompanyInput{
		Name:         b.Name,
		Address:      b.Address,
		ContactEmail: b.ContactEmail,
		LogoURL:      b.LogoURL,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDTO(c))
}
