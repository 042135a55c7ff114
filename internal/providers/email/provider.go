package email

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("email_not_configured")

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DisabledProvider rejects every message. It is used when no SMTP host
// is configured.
type DisabledProvider struct{}

func (p *DisabledProvider) Send(ctx context.Context, msg Message) error {
	return ErrNotConfigured
}
