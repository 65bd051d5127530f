package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	notifdom "stocklot/internal/domain/notification"
	userdom "stocklot/internal/domain/user"
)

// Notifier is the inbound face of the best-effort notification channel.
// Business flows call Notify and move on; delivery failures never reach
// them.
type Notifier interface {
	Notify(in EmitInput)
}

// NotificationMailSender is an outbound port for the optional email copy of
// high-priority notifications.
type NotificationMailSender interface {
	SendNotificationEmail(ctx context.Context, toEmail, subject, body string) error
}

const (
	dispatcherDefaultWorkers = 2
	dispatcherDefaultQueue   = 256
	dispatcherMaxAttempts    = 3
	dispatcherBaseBackoff    = 100 * time.Millisecond
	dispatcherJobTimeout     = 10 * time.Second
)

// NotificationDispatcher decouples notification emission from the caller's
// transaction: jobs go onto a bounded channel served by worker goroutines
// with per-job retry/backoff. A full queue drops the job with a log line,
// and exhausted retries end in a dead-letter log line — at-most-once, no
// durability, matching the channel's contract.
type NotificationDispatcher struct {
	uc     *NotificationUsecase
	users  userdom.RepositoryPort // optional, for email resolution
	mailer NotificationMailSender // optional

	jobs chan EmitInput
	wg   sync.WaitGroup

	closeOnce sync.Once

	// mu orders intake against Close so a late Notify can never send on
	// the closed jobs channel.
	mu     sync.RWMutex
	closed bool
}

func NewNotificationDispatcher(
	uc *NotificationUsecase,
	users userdom.RepositoryPort,
	mailer NotificationMailSender,
	workers int,
	queueSize int,
) *NotificationDispatcher {
	if workers <= 0 {
		workers = dispatcherDefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = dispatcherDefaultQueue
	}

	d := &NotificationDispatcher{
		uc:     uc,
		users:  users,
		mailer: mailer,
		jobs:   make(chan EmitInput, queueSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker(i)
	}
	return d
}

var _ Notifier = (*NotificationDispatcher)(nil)

// Notify enqueues without blocking. When the queue is full the job is
// dropped and logged; the caller is never slowed down.
func (d *NotificationDispatcher) Notify(in EmitInput) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("[notify_dispatch] WARN: dispatcher closed, dropped userId=%s type=%s", in.UserID, in.Type)
		return
	}
	select {
	case d.jobs <- in:
	default:
		log.Printf("[notify_dispatch] WARN: queue full, dropped userId=%s type=%s", in.UserID, in.Type)
	}
}

// Close stops intake and waits for in-flight jobs to drain.
func (d *NotificationDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()
		close(d.jobs)
	})
	d.wg.Wait()
}

func (d *NotificationDispatcher) worker(id int) {
	defer d.wg.Done()
	for in := range d.jobs {
		d.deliver(id, in)
	}
}

func (d *NotificationDispatcher) deliver(worker int, in EmitInput) {
	var lastErr error
	for attempt := 1; attempt <= dispatcherMaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), dispatcherJobTimeout)
		created, err := d.uc.Emit(ctx, in)
		cancel()

		if err == nil {
			d.mailCopy(created)
			return
		}
		lastErr = err

		log.Printf("[notify_dispatch] WARN: emit failed worker=%d attempt=%d/%d userId=%s type=%s err=%v",
			worker, attempt, dispatcherMaxAttempts, in.UserID, in.Type, err)

		if attempt < dispatcherMaxAttempts {
			time.Sleep(dispatcherBaseBackoff << (attempt - 1))
		}
	}

	// dead-letter: the only trace of an undeliverable notification
	log.Printf("[notify_dispatch] ERROR: dead-letter userId=%s type=%s title=%q err=%v",
		in.UserID, in.Type, in.Title, lastErr)
}

// mailCopy sends the email copy for high-priority notifications,
// best-effort.
func (d *NotificationDispatcher) mailCopy(n notifdom.Notification) {
	if d.mailer == nil || d.users == nil || n.Priority != notifdom.PriorityHigh {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatcherJobTimeout)
	defer cancel()

	u, err := d.users.GetByUID(ctx, n.UserID)
	if err != nil {
		log.Printf("[notify_dispatch] WARN: mail copy skipped, user lookup failed userId=%s err=%v", n.UserID, err)
		return
	}
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return
	}

	if err := d.mailer.SendNotificationEmail(ctx, email, n.Title, n.Message); err != nil {
		log.Printf("[notify_dispatch] WARN: mail copy failed userId=%s err=%v", n.UserID, err)
	}
}
