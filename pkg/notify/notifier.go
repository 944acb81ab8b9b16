package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/mailer"
)

// Notifier is the out-of-band channel that delivers reset codes to users.
// The auth core only hands the generated code to this channel; delivery
// itself is outside its scope.
type Notifier interface {
	PasswordResetCode(ctx context.Context, email, name, code string, expiresAt time.Time) error
}

// LogNotifier emits the reset code to the application log. This is the
// default channel for development and for deployments without email.
type LogNotifier struct {
	Logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) PasswordResetCode(ctx context.Context, email, name, code string, expiresAt time.Time) error {
	n.Logger.WithFields(logrus.Fields{
		"email":      email,
		"code":       code,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}).Info("generated password reset code")
	return nil
}

// QueueNotifier publishes an email job to RabbitMQ; cmd/email_worker consumes
// the queue and sends the message through Mailgun.
type QueueNotifier struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueNotifier(pub *helpers.RabbitPublisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (n *QueueNotifier) PasswordResetCode(ctx context.Context, email, name, code string, expiresAt time.Time) error {
	job := mailer.EmailJob{
		To:       email,
		Template: "reset_code",
		Data: map[string]any{
			"Name":      name,
			"Code":      code,
			"ExpiresAt": expiresAt.UTC().Format(time.RFC3339),
		},
	}
	return n.Pub.PublishJSON(ctx, job)
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*QueueNotifier)(nil)
)
