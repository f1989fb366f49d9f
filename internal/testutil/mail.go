// internal/testutil/mail.go
package testutil

import (
	"sync"

	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
)

// MailRecorder is a mailer.Sender that captures messages instead of
// delivering them.
type MailRecorder struct {
	mu   sync.Mutex
	Sent []mailer.Message

	// Err, when set, is returned by Send without recording.
	Err error
}

func (m *MailRecorder) Send(msg mailer.Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}

// LastTo returns the recipient of the most recent message, or "".
func (m *MailRecorder) LastTo() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].To
}
