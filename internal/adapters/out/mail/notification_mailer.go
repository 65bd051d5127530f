// internal/adapters/out/mail/notification_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"
)

// NotificationMailer sends the email copy of high-priority in-app
// notifications. It satisfies usecase.NotificationMailSender.
type NotificationMailer struct {
	client      EmailClient
	fromAddress string
}

func NewNotificationMailer(client EmailClient, fromAddress string) *NotificationMailer {
	return &NotificationMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

func (m *NotificationMailer) SendNotificationEmail(ctx context.Context, toEmail, subject, body string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("notification mailer: to address is empty")
	}

	text := fmt.Sprintf(
		`%s

This is a copy of an in-app notification from Stocklot.
Sign in to see the full details and take action.

-- 
Stocklot`,
		strings.TrimSpace(body),
	)

	return m.client.Send(ctx, m.fromAddress, toEmail, subject, text)
}
