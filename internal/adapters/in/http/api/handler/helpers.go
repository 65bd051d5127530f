// internal/adapters/in/http/api/handler/helpers.go
package apiHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stocklot/internal/adapters/in/http/middleware"
	usecase "stocklot/internal/application/usecase"
	companydom "stocklot/internal/domain/company"
	notifdom "stocklot/internal/domain/notification"
	offerdom "stocklot/internal/domain/offer"
	imgdom "stocklot/internal/domain/offerImage"
	purchasedom "stocklot/internal/domain/purchase"
	userdom "stocklot/internal/domain/user"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

// requireUID extracts the verified uid or ends the request with 401.
func requireUID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return "", false
	}
	return uid, true
}

// writeErr maps domain/application errors onto status codes. Unknown
// errors become 500 without leaking internals.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return

	// 404
	case errors.Is(err, offerdom.ErrNotFound),
		errors.Is(err, purchasedom.ErrNotFound),
		errors.Is(err, userdom.ErrNotFound),
		errors.Is(err, notifdom.ErrNotFound),
		errors.Is(err, companydom.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})

	// 409: business state conflicts
	case errors.Is(err, offerdom.ErrNotPurchasable),
		errors.Is(err, offerdom.ErrInsufficientQuantity),
		errors.Is(err, offerdom.ErrConflict),
		errors.Is(err, purchasedom.ErrInvalidTransition),
		errors.Is(err, usecase.ErrPurchaseTerminal),
		errors.Is(err, usecase.ErrWatchlistOfferGone):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})

	// 403: ownership / role
	case errors.Is(err, usecase.ErrOfferNotOwned),
		errors.Is(err, usecase.ErrNotificationNotOwned),
		errors.Is(err, purchasedom.ErrNotBuyer),
		errors.Is(err, purchasedom.ErrNotSeller):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})

	// 400: validation
	case errors.Is(err, offerdom.ErrInvalidSellerID),
		errors.Is(err, offerdom.ErrInvalidTitle),
		errors.Is(err, offerdom.ErrInvalidUnitPrice),
		errors.Is(err, offerdom.ErrInvalidQuantity),
		errors.Is(err, offerdom.ErrInvalidStatus),
		errors.Is(err, purchasedom.ErrInvalidOfferID),
		errors.Is(err, purchasedom.ErrInvalidBuyerID),
		errors.Is(err, purchasedom.ErrInvalidSellerID),
		errors.Is(err, purchasedom.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrPurchaseOwnOffer),
		errors.Is(err, usecase.ErrPurchaseProofURLMissing),
		errors.Is(err, userdom.ErrInvalidUID),
		errors.Is(err, companydom.ErrInvalidName),
		errors.Is(err, companydom.ErrInvalidContactEmail),
		errors.Is(err, imgdom.ErrInvalidContentType),
		errors.Is(err, imgdom.ErrFileTooLarge),
		errors.Is(err, imgdom.ErrEmptyFile),
		errors.Is(err, imgdom.ErrInvalidOfferID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})

	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}
}

// trimAPIPath strips the trailing slash and the /api prefix.
func trimAPIPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	return strings.TrimPrefix(p, "/api")
}

func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ============================================================
// DTOs (wire shape, camelCase)
// ============================================================

type offerDTO struct {
	ID          string    `json:"id"`
	ReadableID  string    `json:"readableId"`
	SellerID    string    `json:"sellerId"`
	CompanyID   string    `json:"companyId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	UnitPrice   int       `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	Deleted     bool      `json:"deleted"`
	ImageURLs   []string  `json:"imageUrls,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toOfferDTO(o offerdom.Offer) offerDTO {
	return offerDTO{
		ID:          o.ID,
		ReadableID:  o.ReadableID,
		SellerID:    o.SellerID,
		CompanyID:   o.CompanyID,
		Title:       o.Title,
		Description: o.Description,
		Category:    o.Category,
		UnitPrice:   o.UnitPrice,
		Quantity:    o.Quantity,
		Status:      string(o.Status),
		Deleted:     o.Deleted,
		ImageURLs:   o.ImageURLs,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOfferDTOs(items []offerdom.Offer) []offerDTO {
	out := make([]offerDTO, 0, len(items))
	for _, o := range items {
		out = append(out, toOfferDTO(o))
	}
	return out
}

type offerPageDTO struct {
	Items      []offerDTO `json:"items"`
	TotalCount int        `json:"totalCount"`
	TotalPages int        `json:"totalPages"`
	Page       int        `json:"page"`
	PerPage    int        `json:"perPage"`
}

func toOfferPageDTO(res offerdom.PageResult) offerPageDTO {
	return offerPageDTO{
		Items:      toOfferDTOs(res.Items),
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
		Page:       res.Page,
		PerPage:    res.PerPage,
	}
}

type purchaseDTO struct {
	ID               string    `json:"id"`
	OfferID          string    `json:"offerId"`
	OfferTitle       string    `json:"offerTitle,omitempty"`
	Quantity         int       `json:"quantity"`
	UnitPrice        int       `json:"unitPrice"`
	SellerID         string    `json:"sellerId"`
	BuyerID          string    `json:"buyerId"`
	Status           string    `json:"status"`
	ApprovalStatus   string    `json:"approvalStatus,omitempty"`
	ShippingProofURL string    `json:"shippingProofUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toPurchaseDTO(p purchasedom.Purchase) purchaseDTO {
	return purchaseDTO{
		ID:               p.ID,
		OfferID:          p.OfferID,
		OfferTitle:       p.OfferTitle,
		Quantity:         p.Quantity,
		UnitPrice:        p.UnitPrice,
		SellerID:         p.SellerID,
		BuyerID:          p.BuyerID,
		Status:           string(p.Status),
		ApprovalStatus:   string(p.ApprovalStatus),
		ShippingProofURL: p.ShippingProofURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toPurchaseDTOs(items []purchasedom.Purchase) []purchaseDTO {
	out := make([]purchaseDTO, 0, len(items))
	for _, p := range items {
		out = append(out, toPurchaseDTO(p))
	}
	return out
}

type notificationDTO struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message,omitempty"`
	IsRead    bool           `json:"isRead"`
	Priority  string         `json:"priority"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toNotificationDTO(n notifdom.Notification) notificationDTO {
	return notificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Priority:  string(n.Priority),
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}

type companyDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toCompanyDTO(c companydom.Company) companyDTO {
	return companyDTO{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		LogoURL:      c.LogoURL,
		Verified:     c.Verified,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type userDTO struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	CompanyID   string    `json:"companyId,omitempty"`
	Watchlist   []string  `json:"watchlist"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserDTO(u userdom.User) userDTO {
	wl := u.Watchlist
	if wl == nil {
		wl = []string{}
	}
	return userDTO{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CompanyID:   u.CompanyID,
		Watchlist:   wl,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
