package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// EmailChannel delivers events over the Resend transactional email API.
type EmailChannel struct {
	client   *resend.Client
	from     string
	fallback string // recipient used when the event names none (security desk)
}

func NewEmailChannel(apiKey, from, fallbackRecipient string) *EmailChannel {
	return &EmailChannel{
		client:   resend.NewClient(apiKey),
		from:     from,
		fallback: fallbackRecipient,
	}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Send(ctx context.Context, ev Event) error {
	to := ev.EmailRecipient
	if to == "" {
		to = c.fallback
	}
	if to == "" {
		return fmt.Errorf("no email recipient for %s %s", ev.Kind, ev.Reference)
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: EmailSubject(ev),
		Html:    EmailHTML(ev),
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
