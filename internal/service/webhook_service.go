package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/internal/webhook"
)

// SignatureValidator checks the signature of a raw webhook body.
type SignatureValidator interface {
	ValidateWebhookSignature(payload []byte, signature string) bool
}

type WebhookConfig struct {
	TeamPhone string
	TeamEmail string
	// VerifyEnkapSignature rejects E-nkap callbacks without a valid signature.
	VerifyEnkapSignature bool
}

type WebhookService struct {
	cfg          WebhookConfig
	orders       ports.IOrderRepository
	transactions ports.ITransactionRepository
	messenger    ports.IMessenger
	mailer       ports.IMailer
	events       ports.IEventPublisher
	signatures   SignatureValidator
	now          func() time.Time
}

func NewWebhookService(
	cfg WebhookConfig,
	orders ports.IOrderRepository,
	transactions ports.ITransactionRepository,
	messenger ports.IMessenger,
	mailer ports.IMailer,
	events ports.IEventPublisher,
	signatures SignatureValidator,
) *WebhookService {
	return &WebhookService{
		cfg:          cfg,
		orders:       orders,
		transactions: transactions,
		messenger:    messenger,
		mailer:       mailer,
		events:       events,
		signatures:   signatures,
		now:          time.Now,
	}
}

type WebhookResult struct {
	Kind     webhook.Kind        `json:"kind"`
	OrderRef string              `json:"orderRef,omitempty"`
	Status   model.PaymentStatus `json:"status,omitempty"`
}

// paymentUpdate is the provider-neutral outcome of one callback.
type paymentUpdate struct {
	Provider      model.PaymentProvider
	OrderRef      string
	Reference     string
	RawStatus     string
	Status        model.PaymentStatus
	Method        string
	Amount        int64
	CustomerName  string
	CustomerPhone string
	ErrorMessage  string
}

// Handle parses a callback and reconciles the order it refers to. Payloads of
// an unrecognised shape are acknowledged without side effects.
func (s *WebhookService) Handle(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	evt, err := webhook.Parse(body)
	if err != nil {
		return nil, err
	}

	var update paymentUpdate
	switch evt.Kind {
	case webhook.KindEnkap:
		if s.cfg.VerifyEnkapSignature && (s.signatures == nil || !s.signatures.ValidateWebhookSignature(body, signature)) {
			return nil, model.ErrInvalidSignature
		}
		update = fromEnkap(evt.Enkap)
	case webhook.KindS3P:
		update = fromS3P(evt.S3P)
	default:
		slog.InfoContext(ctx, "ignoring webhook with unrecognised payload shape", "bytes", len(body))
		return &WebhookResult{Kind: webhook.KindUnknown}, nil
	}

	if err := s.apply(ctx, update); err != nil {
		return nil, err
	}
	return &WebhookResult{Kind: evt.Kind, OrderRef: update.OrderRef, Status: update.Status}, nil
}

func fromEnkap(e *webhook.EnkapEvent) paymentUpdate {
	method := string(model.MethodEnkap)
	if e.PaymentMethod != "" {
		method = method + "_" + strings.ToLower(e.PaymentMethod)
	}
	u := paymentUpdate{
		Provider:  model.ProviderEnkap,
		OrderRef:  e.MerchantReference,
		Reference: e.OrderTransactionID,
		RawStatus: strings.ToUpper(e.Status),
		Status:    webhook.MapEnkapStatus(e.Status),
		Method:    method,
		Amount:    webhook.AmountInt64(e.Amount),
	}
	if e.Customer != nil {
		u.CustomerName = e.Customer.Name
		u.CustomerPhone = e.Customer.Phone
	}
	return u
}

func fromS3P(e *webhook.S3PEvent) paymentUpdate {
	return paymentUpdate{
		Provider:      model.ProviderS3P,
		OrderRef:      e.TRID,
		Reference:     e.PTN,
		RawStatus:     strings.ToUpper(e.Status),
		Status:        webhook.MapS3PStatus(e.Status),
		Amount:        webhook.AmountInt64(e.Amount),
		CustomerPhone: e.ServiceNumber,
		ErrorMessage:  e.ErrorMessage,
	}
}

// apply persists the update, then runs the best-effort side effects. Only the
// order write can fail the callback.
func (s *WebhookService) apply(ctx context.Context, u paymentUpdate) error {
	if err := s.orders.UpdatePayment(ctx, u.OrderRef, u.Status, u.Method); err != nil {
		return fmt.Errorf("failed to update order %s: %w", u.OrderRef, err)
	}
	slog.InfoContext(ctx, "order payment status updated",
		"order_ref", u.OrderRef, "provider", u.Provider, "status", u.Status)

	// Each attempt has its own provider reference; trid is shared by every
	// retry of the order.
	filters := map[string]interface{}{"trid": u.OrderRef}
	if u.Reference != "" {
		filters = map[string]interface{}{"ptn": u.Reference}
	}
	if err := s.transactions.UpdateStatus(ctx, u.RawStatus, u.ErrorMessage, filters); err != nil && !errors.Is(err, model.ErrTransactionNotFound) {
		slog.WarnContext(ctx, "failed to update transaction", "order_ref", u.OrderRef, "error", err)
	}

	s.publish(ctx, u)

	if u.Status == model.StatusSuccess {
		s.notifySuccess(ctx, u)
	}
	return nil
}

func (s *WebhookService) publish(ctx context.Context, u paymentUpdate) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, model.PaymentStatusEvent{
		OrderRef:      u.OrderRef,
		Provider:      u.Provider,
		Reference:     u.Reference,
		Status:        u.Status,
		Amount:        u.Amount,
		PaymentMethod: u.Method,
		OccurredAt:    s.now().UTC(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish payment event", "order_ref", u.OrderRef, "error", err)
	}
}

type successView struct {
	OrderRef     string
	Provider     model.PaymentProvider
	Reference    string
	Amount       int64
	CustomerName string
	Phone        string
	Email        string
	CardType     string
}

var (
	teamMessageTmpl = template.Must(template.New("team").Parse(
		`✅ Payment received
Order: {{.OrderRef}}
Amount: {{.Amount}} XAF
Provider: {{.Provider}}{{if .Reference}} ({{.Reference}}){{end}}
{{- if .CustomerName}}
Customer: {{.CustomerName}}{{end}}
{{- if .Phone}}
Phone: {{.Phone}}{{end}}
{{- if .CardType}}
Card: {{.CardType}}{{end}}`))

	customerMessageTmpl = template.Must(template.New("customer").Parse(
		`Hello{{if .CustomerName}} {{.CustomerName}}{{end}}, we have received your payment of {{.Amount}} XAF for order {{.OrderRef}}. LTC Group will contact you about delivery shortly. Thank you!`))

	emailBodyTmpl = template.Must(template.New("email").Parse(
		`A payment has been confirmed.

Order reference: {{.OrderRef}}
Amount: {{.Amount}} XAF
Provider: {{.Provider}}
Provider reference: {{.Reference}}
Customer: {{.CustomerName}}
Phone: {{.Phone}}
Email: {{.Email}}
Card type: {{.CardType}}
`))
)

func render(t *template.Template, v successView) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return fmt.Sprintf("Payment received for order %s (%d XAF)", v.OrderRef, v.Amount)
	}
	return buf.String()
}

// notifySuccess sends one team WhatsApp message, a customer WhatsApp message
// when the callback carried a phone number, and a team email. Failures are
// logged and never propagated.
func (s *WebhookService) notifySuccess(ctx context.Context, u paymentUpdate) {
	view := successView{
		OrderRef:     u.OrderRef,
		Provider:     u.Provider,
		Reference:    u.Reference,
		Amount:       u.Amount,
		CustomerName: u.CustomerName,
		Phone:        u.CustomerPhone,
	}
	if order, err := s.orders.FindByReference(ctx, u.OrderRef); err == nil {
		if view.CustomerName == "" {
			view.CustomerName = order.CustomerName
		}
		if view.Amount == 0 {
			view.Amount = order.Total
		}
		if view.Phone == "" {
			view.Phone = order.Phone
		}
		view.Email = order.Email
		view.CardType = order.CardType
	} else {
		slog.DebugContext(ctx, "order details unavailable for notification", "order_ref", u.OrderRef, "error", err)
	}

	if s.cfg.TeamPhone != "" {
		if err := s.messenger.SendText(ctx, s.cfg.TeamPhone, render(teamMessageTmpl, view)); err != nil {
			slog.ErrorContext(ctx, "team whatsapp notification failed", "order_ref", u.OrderRef, "error", err)
		}
	}

	if u.CustomerPhone != "" {
		if err := s.messenger.SendText(ctx, u.CustomerPhone, render(customerMessageTmpl, view)); err != nil {
			slog.ErrorContext(ctx, "customer whatsapp notification failed", "order_ref", u.OrderRef, "error", err)
		}
	}

	if s.cfg.TeamEmail != "" {
		err := s.mailer.Send(ctx, model.Email{
			To:      []string{s.cfg.TeamEmail},
			ReplyTo: view.Email,
			Subject: fmt.Sprintf("Payment confirmed - order %s", u.OrderRef),
			Body:    render(emailBodyTmpl, view),
		})
		if err != nil {
			slog.ErrorContext(ctx, "payment confirmation email failed", "order_ref", u.OrderRef, "error", err)
		}
	}
}
