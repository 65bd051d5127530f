package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	notifdom "stocklot/internal/domain/notification"
	"stocklot/internal/infra/events"
)

// EventNotificationCreated is the local event published after a
// notification document is persisted.
const EventNotificationCreated = "notification.created"

var (
	ErrNotificationUsecaseRepoMissing = errors.New("notification: repository is not configured")
	ErrNotificationNotOwned           = errors.New("notification: not owned by caller")
)

// NotificationUsecase persists notification documents and publishes the
// matching local event.
//
// Ordering contract: the document is written FIRST, then the event carrying
// the persisted id is published, so a subscriber can always dereference the
// id it receives.
type NotificationUsecase struct {
	repo notifdom.RepositoryPort
	bus  *events.Bus
	now  func() time.Time
}

func NewNotificationUsecase(repo notifdom.RepositoryPort, bus *events.Bus) *NotificationUsecase {
	return &NotificationUsecase{
		repo: repo,
		bus:  bus,
		now:  time.Now,
	}
}

// EmitInput is the app-level input for one notification.
type EmitInput struct {
	UserID   string
	Type     notifdom.Type
	Title    string
	Message  string
	Data     map[string]any
	Priority notifdom.Priority
}

// Emit persists and then publishes. Any error propagates to the caller;
// best-effort semantics are the dispatcher's job, not this method's.
func (u *NotificationUsecase) Emit(ctx context.Context, in EmitInput) (notifdom.Notification, error) {
	if u == nil || u.repo == nil {
		return notifdom.Notification{}, ErrNotificationUsecaseRepoMissing
	}

	n, err := notifdom.New(in.UserID, in.Type, in.Title, in.Message, in.Data, in.Priority, u.now().UTC())
	if err != nil {
		return notifdom.Notification{}, err
	}

	created, err := u.repo.Create(ctx, n)
	if err != nil {
		return notifdom.Notification{}, err
	}

	if u.bus != nil {
		u.bus.Publish(events.Event{
			Name: EventNotificationCreated,
			Data: map[string]any{
				"id":       created.ID,
				"userId":   created.UserID,
				"type":     string(created.Type),
				"title":    created.Title,
				"message":  created.Message,
				"priority": string(created.Priority),
				"data":     created.Data,
			},
		})
	}

	return created, nil
}

// ListForUser returns the newest notifications for uid.
func (u *NotificationUsecase) ListForUser(ctx context.Context, uid string, limit int) ([]notifdom.Notification, error) {
	if u == nil || u.repo == nil {
		return nil, ErrNotificationUsecaseRepoMissing
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, notifdom.ErrInvalidUserID
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.repo.ListByUser(ctx, uid, limit)
}

// MarkRead flips IsRead after an ownership check.
func (u *NotificationUsecase) MarkRead(ctx context.Context, uid, id string) (notifdom.Notification, error) {
	if u == nil || u.repo == nil {
		return notifdom.Notification{}, ErrNotificationUsecaseRepoMissing
	}

	n, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return notifdom.Notification{}, err
	}
	if n.UserID != strings.TrimSpace(uid) {
		return notifdom.Notification{}, ErrNotificationNotOwned
	}
	if n.IsRead {
		return n, nil
	}

	out, err := u.repo.MarkRead(ctx, n.ID)
	if err != nil {
		return notifdom.Notification{}, err
	}
	log.Printf("[notification_uc] marked read id=%s userId=%s", out.ID, out.UserID)
	return out, nil
}
