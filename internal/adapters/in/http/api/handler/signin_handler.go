// internal/adapters/in/http/api/handler/signin_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"

	"stocklot/internal/adapters/in/http/middleware"
	usecase "stocklot/internal/application/usecase"
)

// SignInHandler serves POST /api/signin: upsert the profile document for
// the verified Firebase user, and GET /api/me: the current profile.
type SignInHandler struct {
	uc *usecase.UserUsecase
}

func NewSignInHandler(uc *usecase.UserUsecase) http.Handler {
	return &SignInHandler{uc: uc}
}

func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && path == "/signin":
		h.signIn(w, r)
		return
	case r.Method == http.MethodGet && path == "/me":
		h.me(w, r)
		return
	default:
		notFound(w)
		return
	}
}

func (h *SignInHandler) signIn(w http.ResponseWriter, r *http.Request) {
	uid, email, ok := middleware.CurrentUserUIDAndEmail(r)
	if !ok {
		unauthorized(w)
		return
	}

	var b struct {
		DisplayName string `json:"displayName"`
		CompanyID   string `json:"companyId"`
	}
	// body is optional on sign-in
	_ = json.NewDecoder(r.Body).Decode(&b)

	u, err := h.uc.Upsert(r.Context(), usecase.UpsertUserInput{
		UID:         uid,
		Email:       email,
		DisplayName: b.DisplayName,
		CompanyID:   b.CompanyID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

func (h *SignInHandler) me(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	u, err := h.uc.GetByUID(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}
