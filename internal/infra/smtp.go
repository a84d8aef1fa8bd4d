package infra

import (
	"fmt"
	"net/smtp"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending alert emails.
// Sends go through a circuit breaker so a flaky mail server cannot pile up
// blocked workers.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	breaker  *sendBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		breaker:  newSendBreaker(),
	}
}

// CircuitState exposes the breaker state for the health endpoint.
func (m *Mailer) CircuitState() BreakerState { return m.breaker.currentState() }

// Send delivers a plain-text email through the configured SMTP server.
func (m *Mailer) Send(to, subject, body string) error {
	return m.breaker.do(func() error {
		e := email.NewEmail()
		e.From = m.user
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		return e.Send(m.addr, auth)
	})
}
