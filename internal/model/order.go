package model

import "time"

// PaymentStatus is the internal tri-state (plus NOT_PAID) mirrored on orders.
type PaymentStatus string

const (
	StatusNotPaid PaymentStatus = "NOT_PAID"
	StatusPending PaymentStatus = "PENDING"
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailed  PaymentStatus = "FAILED"
)

// Terminal reports whether no further provider transition is expected.
func (s PaymentStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

type Order struct {
	ID              string        `json:"id"`
	OrderRef        string        `json:"orderRef"`
	CardType        string        `json:"cardType"`
	CustomerName    string        `json:"customerName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	NIU             string        `json:"niu,omitempty"`
	DeliveryOption  string        `json:"deliveryOption"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	CardPrice       int64         `json:"cardPrice"`
	DeliveryFee     int64         `json:"deliveryFee"`
	NIUFee          int64         `json:"niuFee"`
	Total           int64         `json:"total"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type OrderRequest struct {
	CardType        string `json:"cardType"`
	CustomerName    string `json:"customerName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	NIU             string `json:"niu"`
	RequestNIU      bool   `json:"requestNiu"`
	DeliveryOption  string `json:"deliveryOption"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Email is a provider-neutral outbound message.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}
