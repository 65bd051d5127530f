package notification

import "context"

// RepositoryPort is the outbound port for the notifications collection.
type RepositoryPort interface {
	// Create persists n and returns it with the assigned id.
	Create(ctx context.Context, n Notification) (Notification, error)

	GetByID(ctx context.Context, id string) (Notification, error)

	// ListByUser returns the newest notifications for uid, newest first.
	ListByUser(ctx context.Context, uid string, limit int) ([]Notification, error)

	// MarkRead flips IsRead; the only mutation this collection ever sees.
	MarkRead(ctx context.Context, id string) (Notification, error)
}
