package ports

import (
	"context"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

// IMessenger delivers short text messages (WhatsApp).
type IMessenger interface {
	SendText(ctx context.Context, to, body string) error
}

type IMailer interface {
	Send(ctx context.Context, email model.Email) error
}

type IEventPublisher interface {
	Publish(ctx context.Context, event model.PaymentStatusEvent) error
	Close() error
}
