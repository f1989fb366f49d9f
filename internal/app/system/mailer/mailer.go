// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages. The SMTP mailer is the production implementation;
// tests substitute a recorder.
type Sender interface {
	Send(msg Message) error
}

// Mailer sends mail over SMTP with plain auth.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
	log  *zap.Logger
}

// New builds an SMTP mailer. user and pass may be empty for servers that
// accept unauthenticated relay (local dev).
func New(host string, port int, user, pass, from string, logger *zap.Logger) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, log: logger}
}

// Send delivers the message.
func (m *Mailer) Send(msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", uuid.New(), m.host)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	m.log.Debug("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// VerificationEmailData fills the registration verification email.
type VerificationEmailData struct {
	SiteName  string
	Code      string
	ExpiresIn string
}

// BuildVerificationEmail renders the verification message; the caller sets To.
func BuildVerificationEmail(data VerificationEmailData) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Your %s verification code is: %s\n\n", data.SiteName, data.Code)
	fmt.Fprintf(&b, "Enter this code to verify your email address and finish registering your firm.\n\n")
	fmt.Fprintf(&b, "The code expires in %s. If you did not register, you can ignore this email.\n", data.ExpiresIn)
	return Message{
		Subject: fmt.Sprintf("%s verification code", data.SiteName),
		Body:    b.String(),
	}
}

// TempPasswordEmailData fills the invited-user credential email.
type TempPasswordEmailData struct {
	SiteName     string
	TempPassword string
	LoginURL     string
}

// BuildTempPasswordEmail renders the temporary-credential message sent when
// an administrator invites a user; the caller sets To.
func BuildTempPasswordEmail(data TempPasswordEmailData) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "An account has been created for you on %s.\n\n", data.SiteName)
	fmt.Fprintf(&b, "Temporary password: %s\n\n", data.TempPassword)
	fmt.Fprintf(&b, "Sign in at %s with this password; you will be asked to choose a new one.\n", data.LoginURL)
	return Message{
		Subject: fmt.Sprintf("Your %s account", data.SiteName),
		Body:    b.String(),
	}
}

// ResetCodeEmailData fills the password-reset email.
type ResetCodeEmailData struct {
	SiteName  string
	Code      string
	ExpiresIn string
}

// BuildResetCodeEmail renders the password-reset message; the caller sets To.
func BuildResetCodeEmail(data ResetCodeEmailData) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Your %s password reset code is: %s\n\n", data.SiteName, data.Code)
	fmt.Fprintf(&b, "Enter this code with your new password to finish the reset.\n\n")
	fmt.Fprintf(&b, "The code expires in %s. If you did not request a reset, you can ignore this email.\n", data.ExpiresIn)
	return Message{
		Subject: fmt.Sprintf("%s password reset", data.SiteName),
		Body:    b.String(),
	}
}
