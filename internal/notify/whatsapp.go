package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const graphAPIBase = "https://graph.facebook.com/v22.0"

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppChannel delivers events through the Meta WhatsApp Business API.
// When the API is not configured it degrades to generating a wa.me deep link
// for manual sending, which counts as a successful send — the link is the
// delivery mechanism in that mode, matching how the reception desk actually
// operates without a Business API contract.
type WhatsAppChannel struct {
	token         string
	phoneNumberID string
	recipients    map[string]string // supplier/company name -> recipient number
	defaultTo     string
	httpClient    *http.Client
	logger        *slog.Logger
}

func NewWhatsAppChannel(token, phoneNumberID string, recipients map[string]string, defaultTo string, logger *slog.Logger) *WhatsAppChannel {
	return &WhatsAppChannel{
		token:         token,
		phoneNumberID: phoneNumberID,
		recipients:    recipients,
		defaultTo:     defaultTo,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
	}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Send(ctx context.Context, ev Event) error {
	recipient := c.recipientFor(ev)
	message := PlainText(ev)

	if c.token == "" || c.phoneNumberID == "" {
		// Fallback: the deep link is logged for manual sending.
		c.logger.InfoContext(ctx, "whatsapp API not configured, deep link generated",
			"reference", ev.Reference,
			"link", DeepLink(recipient, message),
		)
		return nil
	}

	return c.sendViaGraphAPI(ctx, recipient, message)
}

// DeepLink builds an externally openable wa.me URL carrying the rendered
// message, for manual sending or frontend use.
func DeepLink(recipient, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		nonDigits.ReplaceAllString(recipient, ""),
		url.QueryEscape(message),
	)
}

// LinkFor exposes the manual-send deep link for an event so callers can offer
// it when a dispatch reports failure.
func (c *WhatsAppChannel) LinkFor(ev Event) string {
	return DeepLink(c.recipientFor(ev), PlainText(ev))
}

func (c *WhatsAppChannel) recipientFor(ev Event) string {
	if ev.WhatsAppRecipient != "" {
		return ev.WhatsAppRecipient
	}
	if to, ok := c.recipients[ev.Company]; ok {
		return to
	}
	return c.defaultTo
}

type graphTextMessage struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Text             graphText `json:"text"`
}

type graphText struct {
	Body string `json:"body"`
}

func (c *WhatsAppChannel) sendViaGraphAPI(ctx context.Context, recipient, message string) error {
	// Graph API wants bare digits, no plus sign.
	body, err := json.Marshal(graphTextMessage{
		MessagingProduct: "whatsapp",
		To:               nonDigits.ReplaceAllString(recipient, ""),
		Type:             "text",
		Text:             graphText{Body: message},
	})
	if err != nil {
		return fmt.Errorf("marshal whatsapp message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", graphAPIBase, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("whatsapp API returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
