package model

import "time"

// PaymentProvider names an upstream payment integration.
type PaymentProvider string

const (
	ProviderS3P   PaymentProvider = "s3p"
	ProviderEnkap PaymentProvider = "enkap"
)

// PaymentMethod is the client-facing selector sent to the initiation endpoint.
type PaymentMethod string

const (
	MethodMobileMoney PaymentMethod = "mobile_money"
	MethodEnkap       PaymentMethod = "enkap"
)

// MobileOperator is the mobile-money network behind a Cameroonian number.
type MobileOperator string

const (
	OperatorMTN    MobileOperator = "MTN"
	OperatorOrange MobileOperator = "ORANGE"
)

type PaymentRequest struct {
	Method      PaymentMethod `json:"method"`
	Amount      int64         `json:"amount"`
	OrderRef    string        `json:"orderRef"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// PaymentProcessorResponse is what a provider adapter hands back after a
// successful initiation.
type PaymentProcessorResponse struct {
	Provider           PaymentProvider
	Operator           MobileOperator
	PTN                string
	TRID               string
	OrderTransactionID string
	RedirectURL        string
	Status             string
	Amount             int64
	Phone              string
	Message            string
}

type PaymentResponse struct {
	Success            bool            `json:"success"`
	Provider           PaymentProvider `json:"provider"`
	Method             PaymentMethod   `json:"method"`
	Status             string          `json:"status"`
	PTN                string          `json:"ptn,omitempty"`
	TRID               string          `json:"trid,omitempty"`
	OrderTransactionID string          `json:"orderTransactionId,omitempty"`
	RedirectURL        string          `json:"redirectUrl,omitempty"`
	Message            string          `json:"message,omitempty"`
}

// TransactionStatus is a provider-side view of a single payment attempt.
type TransactionStatus struct {
	PTN          string
	TRID         string
	Status       string
	Amount       int64
	ErrorMessage string
	CheckedAt    time.Time
}

type StatusResponse struct {
	Success       bool          `json:"success"`
	PTN           string        `json:"ptn,omitempty"`
	TRID          string        `json:"trid,omitempty"`
	Status        string        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	Amount        int64         `json:"amount,omitempty"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
	CheckedAt     time.Time     `json:"checkedAt"`
}

// PaymentStatusEvent is published to the event bus whenever an order reaches
// a new payment status.
type PaymentStatusEvent struct {
	OrderRef      string          `json:"order_ref"`
	Provider      PaymentProvider `json:"provider"`
	Reference     string          `json:"reference"`
	Status        PaymentStatus   `json:"status"`
	Amount        int64           `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
