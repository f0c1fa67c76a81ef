package model

import "time"

// Transaction records one payment attempt against an order.
type Transaction struct {
	ID           string
	Provider     PaymentProvider
	PTN          string
	TRID         string
	OrderRef     string
	Amount       int64
	Phone        string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
