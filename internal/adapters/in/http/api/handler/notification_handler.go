// internal/adapters/in/http/api/handler/notification_handler.go
package apiHandler

import (
	"net/http"
	"strings"

	usecase "stocklot/internal/application/usecase"
)

// NotificationHandler serves /api/me/notifications. Authenticated only.
type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) http.Handler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := trimAPIPath(r.URL.Path)

	switch {
	// GET /me/notifications
	case r.Method == http.MethodGet && path == "/me/notifications":
		h.list(w, r)
		return

	// POST /me/notifications/{id}/read
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/me/notifications/") && strings.HasSuffix(path, "/read"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/me/notifications/"), "/read")
		h.markRead(w, r, id)
		return

	default:
		notFound(w)
		return
	}
}

// GET /me/notifications?limit=
func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	items, err := h.uc.ListForUser(r.Context(), uid, queryInt(r, "limit", 50))
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]notificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationDTO(n))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// POST /me/notifications/{id}/read
func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	n, err := h.uc.MarkRead(r.Context(), uid, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationDTO(n))
}
