// Package webhook turns raw provider callbacks into a typed event. The two
// providers share no schema, so the payload shape selects the variant before
// the variant's schema is enforced.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/internal/validation"
)

type Kind string

const (
	KindUnknown Kind = "unknown"
	KindEnkap   Kind = "enkap"
	KindS3P     Kind = "s3p"
)

var (
	enkapValidator = validation.MustCompile(enkapSchema)
	s3pValidator   = validation.MustCompile(s3pSchema)
)

type EnkapCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type EnkapEvent struct {
	OrderID            string         `json:"order_id"`
	OrderTransactionID string         `json:"order_transaction_id"`
	MerchantReference  string         `json:"merchant_reference"`
	Status             string         `json:"status"`
	Amount             json.Number    `json:"amount"`
	Currency           string         `json:"currency"`
	PaymentMethod      string         `json:"payment_method"`
	Customer           *EnkapCustomer `json:"customer"`
	CompletedAt        string         `json:"completed_at"`
}

type S3PEvent struct {
	PTN           string      `json:"ptn"`
	TRID          string      `json:"trid"`
	Status        string      `json:"status"`
	Amount        json.Number `json:"amount"`
	ServiceNumber string      `json:"serviceNumber"`
	ErrorMessage  string      `json:"errorMessage"`
}

// Event is a tagged union: exactly one of Enkap or S3P is set unless Kind is
// KindUnknown.
type Event struct {
	Kind  Kind
	Enkap *EnkapEvent
	S3P   *S3PEvent
}

// decodeObject returns the top-level fields of body. ok is false for an empty
// body or valid JSON that is not an object; malformed JSON is an error.
func decodeObject(body []byte) (fields map[string]json.RawMessage, ok bool, err error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false, nil
	}
	if !json.Valid(trimmed) {
		return nil, false, model.NewValidationError("webhook body is not valid JSON")
	}
	if trimmed[0] != '{' {
		return nil, false, nil
	}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false, model.NewValidationError("webhook body: %v", err)
	}
	return fields, true, nil
}

func classify(fields map[string]json.RawMessage) Kind {
	has := func(key string) bool {
		v, ok := fields[key]
		return ok && strings.TrimSpace(string(v)) != "null"
	}

	switch {
	case has("order_id") && has("merchant_reference"):
		return KindEnkap
	case has("ptn") && has("trid"):
		return KindS3P
	default:
		return KindUnknown
	}
}

// Detect classifies a payload by the keys it carries. Anything that is not a
// JSON object is KindUnknown.
func Detect(body []byte) (Kind, error) {
	fields, ok, err := decodeObject(body)
	if err != nil || !ok {
		return KindUnknown, err
	}
	return classify(fields), nil
}

// normalizeStatus upper-cases a string status so providers that send
// "completed" still match the schema enums.
func normalizeStatus(fields map[string]json.RawMessage) ([]byte, error) {
	var status string
	if raw, ok := fields["status"]; ok && json.Unmarshal(raw, &status) == nil {
		upper, err := json.Marshal(strings.ToUpper(strings.TrimSpace(status)))
		if err != nil {
			return nil, err
		}
		fields["status"] = upper
	}
	return json.Marshal(fields)
}

// Parse detects the provider and strictly validates the payload against that
// provider's schema.
func Parse(body []byte) (*Event, error) {
	fields, ok, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Event{Kind: KindUnknown}, nil
	}

	kind := classify(fields)
	if kind == KindUnknown {
		return &Event{Kind: KindUnknown}, nil
	}

	normalized, err := normalizeStatus(fields)
	if err != nil {
		return nil, model.NewValidationError("webhook body: %v", err)
	}

	switch kind {
	case KindEnkap:
		if err := validation.Validate(enkapValidator, normalized); err != nil {
			return nil, fmt.Errorf("enkap webhook: %w", err)
		}
		var evt EnkapEvent
		if err := json.Unmarshal(normalized, &evt); err != nil {
			return nil, model.NewValidationError("enkap webhook: %v", err)
		}
		return &Event{Kind: KindEnkap, Enkap: &evt}, nil

	default:
		if err := validation.Validate(s3pValidator, normalized); err != nil {
			return nil, fmt.Errorf("s3p webhook: %w", err)
		}
		var evt S3PEvent
		if err := json.Unmarshal(normalized, &evt); err != nil {
			return nil, model.NewValidationError("s3p webhook: %v", err)
		}
		return &Event{Kind: KindS3P, S3P: &evt}, nil
	}
}

// AmountInt64 reads a provider amount that may be sent as "15000",
// "15000.00" or 15000.
func AmountInt64(n json.Number) int64 {
	if n == "" {
		return 0
	}
	if v, err := n.Int64(); err == nil {
		return v
	}
	if f, err := n.Float64(); err == nil {
		return int64(f)
	}
	return 0
}

// MapEnkapStatus folds an E-nkap status onto the internal payment status.
func MapEnkapStatus(status string) model.PaymentStatus {
	switch strings.ToUpper(status) {
	case ports.EnkapCompleted:
		return model.StatusSuccess
	case ports.EnkapFailed, ports.EnkapCancelled:
		return model.StatusFailed
	default:
		return model.StatusPending
	}
}

// MapS3PStatus folds an S3P status onto the internal payment status.
func MapS3PStatus(status string) model.PaymentStatus {
	switch strings.ToUpper(status) {
	case ports.S3PSuccess:
		return model.StatusSuccess
	case ports.S3PFailed, ports.S3PErrored:
		return model.StatusFailed
	default:
		return model.StatusPending
	}
}
