package infra

import (
	"fmt"
	"net/smtp"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends the taller's outbound mail: maintenance reminders to
// clients and payroll receipts to mechanics.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text message through the configured SMTP relay.
// pdfPath may be empty; when set the file is attached as-is.
func (m *Mailer) Send(to, subject, body, pdfPath string) error {
	msg := email.NewEmail()
	msg.From = m.user
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	if pdfPath != "" {
		if _, err := msg.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", pdfPath, err)
		}
	}

	return msg.Send(m.addr, smtp.PlainAuth("", m.user, m.password, m.host))
}
