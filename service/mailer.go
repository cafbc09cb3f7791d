package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	mail "github.com/go-mail/mail/v2"
	"github.com/kevinaaaquil/myb/backend/models"
)

type sender interface {
	DialAndSend(m ...*mail.Message) error
}

// Mailer emails newly filed reports to the site operator.
type Mailer struct {
	From   string
	To     string
	dialer sender
}

// NewMailer returns nil when host or to is empty, which disables notifications.
func NewMailer(host string, port int, username, password, from, to string) *Mailer {
	if host == "" || to == "" {
		return nil
	}
	if from == "" {
		from = username
	}
	d := mail.NewDialer(host, port, username, password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return &Mailer{From: from, To: to, dialer: d}
}

// NotifyReport sends one plain-text message describing r.
func (m *Mailer) NotifyReport(ctx context.Context, r models.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(reportMessage(m.From, m.To, r)); err != nil {
		return fmt.Errorf("send report %s: %w", r.ID, err)
	}
	return nil
}

func reportMessage(from, to string, r models.Report) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	if r.Email != "" {
		msg.SetHeader("Reply-To", r.Email)
	}
	msg.SetHeader("Subject", reportSubject(r))
	msg.SetBody("text/plain", reportBody(r))
	return msg
}

func reportSubject(r models.Report) string {
	kind := r.Type
	if kind == "" {
		kind = "report"
	}
	if r.Subject != "" {
		return fmt.Sprintf("[myb %s] %s", kind, r.Subject)
	}
	return fmt.Sprintf("[myb %s] %s", kind, r.ID)
}

func reportBody(r models.Report) string {
	var b strings.Builder
	line := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	line("Report", r.ID)
	line("Filed", r.CreatedAt)
	line("Type", r.Type)
	line("Name", r.Name)
	line("Email", r.Email)
	line("Book", r.BookID)
	line("User", r.UserID)
	line("Reason", r.Reason)
	for _, k := range slices.Sorted(maps.Keys(r.Extra)) {
		line(k, fmt.Sprint(r.Extra[k]))
	}
	if r.Message != "" {
		b.WriteString("\n")
		b.WriteString(r.Message)
		b.WriteString("\n")
	}
	return b.String()
}
