package receipt

import (
	"context"
	"log"
)

// Message is an outgoing HTML email.
type Message struct {
	From     string
	FromName string
	To       string
	ToName   string
	Subject  string
	HTML     string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct{}

// Send logs the envelope of msg.
func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[receipt] Mail to %s <%s>: %q (%d bytes)", msg.ToName, msg.To, msg.Subject, len(msg.HTML))
	return nil
}
