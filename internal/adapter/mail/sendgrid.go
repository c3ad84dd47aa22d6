package mail

import (
	"context"
	"fmt"

	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier implements domain.Notifier over the SendGrid API. The
// recipient is fixed by configuration: completion mails go to the team
// mailbox that tracks induction sign-offs, not to the user.
type SendGridNotifier struct {
	client    *sendgrid.Client
	from      *sgmail.Email
	recipient string
}

// NewSendGridNotifier creates a new instance of SendGridNotifier.
func NewSendGridNotifier(cfg config.NotificationConfig) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:      sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		recipient: cfg.RecipientEmail,
	}
}

func (n *SendGridNotifier) SubmissionCompleted(_ context.Context, notification *domain.CompletionNotification) error {
	subject := "Induction Training Completed - " + notification.InductionTitle
	plain := fmt.Sprintf("%s (%s) has completed the induction %q.\nSubmission: %s",
		notification.UserName, notification.UserEmail, notification.InductionTitle, notification.SubmissionID)
	html := fmt.Sprintf("<p><strong>%s</strong> (%s) has completed the induction <strong>%s</strong>.</p><p>Submission: %s</p>",
		notification.UserName, notification.UserEmail, notification.InductionTitle, notification.SubmissionID)

	message := sgmail.NewSingleEmail(n.from, subject, sgmail.NewEmail("", n.recipient), plain, html)
	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send completion notification: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected completion notification: status %d", response.StatusCode)
	}
	return nil
}

var _ domain.Notifier = (*SendGridNotifier)(nil)
