package adapters

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/httpclient"
)

const (
	s3pHeaderKey       = "X-Api-Key"
	s3pHeaderNonce     = "X-Api-Nonce"
	s3pHeaderSignature = "X-Api-Signature"

	s3pQuoteEndpoint   = "/quotestd"
	s3pCollectEndpoint = "/collectstd"
	s3pVerifyEndpoint  = "/verifytx"
)

type S3PConfig struct {
	BaseURL         string
	APIKey          string
	APISecret       string
	MTNPayItemID    string
	OrangePayItemID string
}

// S3PAdapter talks to the Smobilpay S3P mobile-money API.
type S3PAdapter struct {
	cfg    S3PConfig
	client *httpclient.Client
	now    func() time.Time
}

func NewS3PAdapter(cfg S3PConfig, client *httpclient.Client) *S3PAdapter {
	return &S3PAdapter{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}
}

func (s *S3PAdapter) Name() model.PaymentProvider {
	return model.ProviderS3P
}

type s3pQuoteRequest struct {
	PayItemID string `json:"payItemId"`
	Amount    int64  `json:"amount"`
}

type S3PQuote struct {
	QuoteID        string  `json:"quoteId"`
	PayItemID      string  `json:"payItemId"`
	ExpiresAt      string  `json:"expiresAt"`
	AmountLocalCur float64 `json:"amountLocalCur"`
	PriceLocalCur  float64 `json:"priceLocalCur"`
}

type S3PCollectRequest struct {
	QuoteID       string `json:"quoteId"`
	CustomerPhone string `json:"customerPhonenumber"`
	CustomerEmail string `json:"customerEmailaddress"`
	CustomerName  string `json:"customerName"`
	ServiceNumber string `json:"serviceNumber"`
	TRID          string `json:"trid"`
}

type S3PCollectResponse struct {
	PTN           string  `json:"ptn"`
	TRID          string  `json:"trid"`
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	ReceiptNumber string  `json:"receiptNumber"`
	VeriCode      string  `json:"veriCode"`
	PriceLocalCur float64 `json:"priceLocalCur"`
	PayItemID     string  `json:"payItemId"`
}

type s3pVerifyEntry struct {
	PTN           string  `json:"ptn"`
	TRID          string  `json:"trid"`
	Status        string  `json:"status"`
	PriceLocalCur float64 `json:"priceLocalCur"`
	ErrorCode     int     `json:"errorCode"`
	ErrorMessage  string  `json:"errorMessage"`
}

// sign computes base64(HMAC-SHA1(secret, method+endpoint+nonce+body)).
func (s *S3PAdapter) sign(method, endpoint, nonce string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(s.cfg.APISecret))
	mac.Write([]byte(method + endpoint + nonce))
	if len(body) > 0 {
		mac.Write(body)
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (s *S3PAdapter) call(ctx context.Context, method, endpoint string, query url.Values, payload interface{}) (*httpclient.Response, error) {
	var body []byte
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal s3p payload: %w", err)
		}
		body = raw
	}

	nonce := strconv.FormatInt(s.now().UnixMilli(), 10)
	headers := http.Header{}
	headers.Set(s3pHeaderKey, s.cfg.APIKey)
	headers.Set(s3pHeaderNonce, nonce)
	headers.Set(s3pHeaderSignature, s.sign(method, endpoint, nonce, body))
	headers.Set("Accept", "application/json")
	if body != nil {
		headers.Set("Content-Type", "application/json")
	}

	target := strings.TrimRight(s.cfg.BaseURL, "/") + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := s.client.Do(ctx, method, target, headers, body)
	if err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderS3P, Operation: endpoint, Body: err.Error()}
	}
	if !resp.OK() {
		return nil, &model.ProviderError{
			Provider:   model.ProviderS3P,
			Operation:  endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(resp.Body)),
		}
	}
	return resp, nil
}

func (s *S3PAdapter) payItemFor(op model.MobileOperator) string {
	if op == model.OperatorOrange {
		return s.cfg.OrangePayItemID
	}
	return s.cfg.MTNPayItemID
}

// Quote asks S3P to price a collection of amount against a pay item.
func (s *S3PAdapter) Quote(ctx context.Context, payItemID string, amount int64) (*S3PQuote, error) {
	resp, err := s.call(ctx, http.MethodPost, s3pQuoteEndpoint, nil, s3pQuoteRequest{PayItemID: payItemID, Amount: amount})
	if err != nil {
		return nil, err
	}

	var quote S3PQuote
	if err := resp.DecodeJSON(&quote); err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderS3P, Operation: s3pQuoteEndpoint, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	if quote.QuoteID == "" {
		return nil, &model.ProviderError{Provider: model.ProviderS3P, Operation: s3pQuoteEndpoint, StatusCode: resp.StatusCode, Body: "missing quoteId in response: " + string(resp.Body)}
	}
	return &quote, nil
}

// Collect triggers the push prompt on the customer's handset.
func (s *S3PAdapter) Collect(ctx context.Context, req S3PCollectRequest) (*S3PCollectResponse, error) {
	resp, err := s.call(ctx, http.MethodPost, s3pCollectEndpoint, nil, req)
	if err != nil {
		return nil, err
	}

	var out S3PCollectResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderS3P, Operation: s3pCollectEndpoint, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	if out.PTN == "" {
		return nil, &model.ProviderError{Provider: model.ProviderS3P, Operation: s3pCollectEndpoint, StatusCode: resp.StatusCode, Body: "missing ptn in response: " + string(resp.Body)}
	}
	if out.TRID == "" {
		out.TRID = req.TRID
	}
	return &out, nil
}

// VerifyTransaction looks a transaction up by ptn, or by trid when ptn is empty.
func (s *S3PAdapter) VerifyTransaction(ctx context.Context, ptn, trid string) (*model.TransactionStatus, error) {
	query := url.Values{}
	switch {
	case ptn != "":
		query.Set("ptn", ptn)
	case trid != "":
		query.Set("trid", trid)
	default:
		return nil, model.NewValidationError("a ptn or trid is required")
	}

	resp, err := s.call(ctx, http.MethodGet, s3pVerifyEndpoint, query, nil)
	if err != nil {
		return nil, err
	}

	entry, err := decodeVerifyBody(resp.Body)
	if err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderS3P, Operation: s3pVerifyEndpoint, StatusCode: resp.StatusCode, Body: err.Error()}
	}

	return &model.TransactionStatus{
		PTN:          entry.PTN,
		TRID:         entry.TRID,
		Status:       strings.ToUpper(entry.Status),
		Amount:       int64(entry.PriceLocalCur),
		ErrorMessage: entry.ErrorMessage,
		CheckedAt:    s.now(),
	}, nil
}

// decodeVerifyBody accepts both the list form and a bare object.
func decodeVerifyBody(body []byte) (*s3pVerifyEntry, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var entries []s3pVerifyEntry
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, fmt.Errorf("malformed verify response: %s", trimmed)
		}
		if len(entries) == 0 {
			return nil, errors.New("transaction not found")
		}
		return &entries[0], nil
	}

	var entry s3pVerifyEntry
	if err := json.Unmarshal(body, &entry); err != nil || entry.Status == "" {
		return nil, fmt.Errorf("malformed verify response: %s", trimmed)
	}
	return &entry, nil
}

// Initiate quotes the amount against the operator pay item, then collects.
func (s *S3PAdapter) Initiate(ctx context.Context, req model.PaymentRequest) (*model.PaymentProcessorResponse, error) {
	phone, err := FormatPhoneForS3P(req.Phone)
	if err != nil {
		return nil, err
	}

	operator := DetectOperator(phone)
	payItemID := s.payItemFor(operator)
	if payItemID == "" {
		return nil, fmt.Errorf("no s3p pay item configured for %s", operator)
	}

	quote, err := s.Quote(ctx, payItemID, req.Amount)
	if err != nil {
		return nil, err
	}

	collected, err := s.Collect(ctx, S3PCollectRequest{
		QuoteID:       quote.QuoteID,
		CustomerPhone: phone,
		CustomerEmail: req.Email,
		CustomerName:  req.Name,
		ServiceNumber: phone,
		TRID:          req.OrderRef,
	})
	if err != nil {
		return nil, err
	}

	status := strings.ToUpper(collected.Status)
	if status == "" {
		status = ports.S3PPending
	}

	return &model.PaymentProcessorResponse{
		Provider: model.ProviderS3P,
		Operator: operator,
		PTN:      collected.PTN,
		TRID:     collected.TRID,
		Status:   status,
		Amount:   req.Amount,
		Phone:    phone,
		Message:  fmt.Sprintf("Confirm the %s Mobile Money payment on your phone", operator),
	}, nil
}
