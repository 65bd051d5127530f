package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notifdom "stocklot/internal/domain/notification"
)

const notificationsCollection = "notifications"

// NotificationRepositoryFS implements notification.RepositoryPort with
// Firestore. Documents are append-only; isRead is the only field that
// ever changes after creation.
type NotificationRepositoryFS struct {
	Client *firestore.Client
}

func NewNotificationRepositoryFS(client *firestore.Client) *NotificationRepositoryFS {
	return &NotificationRepositoryFS{Client: client}
}

func (r *NotificationRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(notificationsCollection)
}

// Compile-time check
var _ notifdom.RepositoryPort = (*NotificationRepositoryFS)(nil)

// =======================
// Mutations
// =======================

func (r *NotificationRepositoryFS) Create(ctx context.Context, n notifdom.Notification) (notifdom.Notification, error) {
	if r.Client == nil {
		return notifdom.Notification{}, errors.New("firestore client is nil")
	}

	docRef := r.col().NewDoc()
	n.ID = docRef.ID

	if _, err := docRef.Create(ctx, notificationToDocData(n)); err != nil {
		return notifdom.Notification{}, err
	}
	return n, nil
}

func (r *NotificationRepositoryFS) MarkRead(ctx context.Context, id string) (notifdom.Notification, error) {
	if r.Client == nil {
		return notifdom.Notification{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return notifdom.Notification{}, notifdom.ErrNotFound
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return notifdom.Notification{}, notifdom.ErrNotFound
		}
		return notifdom.Notification{}, err
	}

	return r.GetByID(ctx, id)
}

// =======================
// Queries
// =======================

func (r *NotificationRepositoryFS) GetByID(ctx context.Context, id string) (notifdom.Notification, error) {
	if r.Client == nil {
		return notifdom.Notification{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return notifdom.Notification{}, notifdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return notifdom.Notification{}, notifdom.ErrNotFound
		}
		return notifdom.Notification{}, err
	}
	return docToNotification(snap)
}

func (r *NotificationRepositoryFS) ListByUser(ctx context.Context, uid string, limit int) ([]notifdom.Notification, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, notifdom.ErrInvalidUserID
	}
	if limit <= 0 {
		limit = 50
	}

	it := r.col().
		Where("userId", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	var out []notifdom.Notification
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		n, err := docToNotification(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// =======================
// Codecs
// =======================

func notificationToDocData(n notifdom.Notification) map[string]any {
	data := map[string]any{
		"userId":    n.UserID,
		"type":      string(n.Type),
		"title":     n.Title,
		"message":   n.Message,
		"isRead":    n.IsRead,
		"priority":  string(n.Priority),
		"createdAt": n.CreatedAt,
	}
	if len(n.Data) > 0 {
		data["data"] = n.Data
	}
	return data
}

func docToNotification(doc *firestore.DocumentSnapshot) (notifdom.Notification, error) {
	data := doc.Data()
	if data == nil {
		return notifdom.Notification{}, fmt.Errorf("empty notification document: %s", doc.Ref.ID)
	}

	getStr := func(key string) string {
		if v, ok := data[key].(string); ok {
			return v
		}
		return ""
	}
	getBool := func(key string) bool {
		if v, ok := data[key].(bool); ok {
			return v
		}
		return false
	}
	getTime := func(key string) time.Time {
		if v, ok := data[key].(time.Time); ok {
			return v.UTC()
		}
		return time.Time{}
	}

	var payload map[string]any
	if v, ok := data["data"].(map[string]any); ok {
		payload = v
	}

	return notifdom.Notification{
		ID:        doc.Ref.ID,
		UserID:    getStr("userId"),
		Type:      notifdom.Type(getStr("type")),
		Title:     getStr("title"),
		Message:   getStr("message"),
		IsRead:    getBool("isRead"),
		Priority:  notifdom.Priority(getStr("priority")),
		Data:      payload,
		CreatedAt: getTime("createdAt"),
	}, nil
}
