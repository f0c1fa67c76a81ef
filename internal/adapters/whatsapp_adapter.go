package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/HackingCorp/ltcgroup-sub001/pkg/httpclient"
)

// ErrNotConfigured is returned by notification channels without credentials.
var ErrNotConfigured = errors.New("notification channel not configured")

const defaultWhatsAppAPI = "https://graph.facebook.com/v19.0"

type WhatsAppConfig struct {
	APIURL        string
	PhoneNumberID string
	AccessToken   string
}

// WhatsAppAdapter sends plain text messages through the WhatsApp Cloud API.
type WhatsAppAdapter struct {
	cfg    WhatsAppConfig
	client *httpclient.Client
}

func NewWhatsAppAdapter(cfg WhatsAppConfig, client *httpclient.Client) *WhatsAppAdapter {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultWhatsAppAPI
	}
	return &WhatsAppAdapter{cfg: cfg, client: client}
}

type whatsAppText struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

func (w *WhatsAppAdapter) SendText(ctx context.Context, to, body string) error {
	if w.cfg.AccessToken == "" || w.cfg.PhoneNumberID == "" {
		return ErrNotConfigured
	}

	recipient, err := FormatPhoneForEnkap(to)
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+w.cfg.AccessToken)

	target := fmt.Sprintf("%s/%s/messages", strings.TrimRight(w.cfg.APIURL, "/"), w.cfg.PhoneNumberID)
	resp, err := w.client.PostJSON(ctx, target, headers, whatsAppMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               recipient,
		Type:             "text",
		Text:             whatsAppText{Body: body},
	})
	if err != nil {
		return fmt.Errorf("whatsapp send failed: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("whatsapp send returned %d: %s", resp.StatusCode, string(resp.Body))
	}
	return nil
}
