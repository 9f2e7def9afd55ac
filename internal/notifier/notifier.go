// Package notifier delivers transactional email through the configured SMTP
// relay.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/mail"
)

// Config describes the SMTP relay used for outgoing mail.
type Config struct {
	Enabled     bool
	SenderName  string
	SenderEmail string
	Username    string
	Password    string
	Host        string
	Port        string
}

// Notifier sends alert and account email. Callers check Enabled before
// composing a message.
type Notifier struct {
	config Config
}

func New(config Config) *Notifier {
	return &Notifier{config: config}
}

func (n *Notifier) Enabled() bool {
	return n.config.Enabled
}

func (n *Notifier) senderAddress() string {
	if n.config.SenderName != "" {
		return fmt.Sprintf("%s <%s>", n.config.SenderName, n.config.SenderEmail)
	}

	return n.config.SenderEmail
}

// Send delivers a plain-text message to the recipients. Each call builds a
// fresh mail service because the recipient list varies per message.
func (n *Notifier) Send(ctx context.Context, subject, body string, recipients ...string) error {
	slog.Debug(">>notifier.Send", "subject", subject, "recipients", len(recipients))
	defer slog.Debug("<<notifier.Send")

	service := mail.New(n.senderAddress(), net.JoinHostPort(n.config.Host, n.config.Port))
	service.AuthenticateSMTP("", n.config.Username, n.config.Password, n.config.Host)
	service.AddReceivers(recipients...)
	service.BodyFormat(mail.PlainText)

	notifier := notify.New()
	notifier.UseServices(service)

	return notifier.Send(ctx, subject, body)
}
