package adapters

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/httpclient"
)

const (
	enkapTokenEndpoint  = "/token"
	enkapOrderEndpoint  = "/purchase/v1.2/api/order"
	enkapStatusEndpoint = "/purchase/v1.2/api/order/status"

	// EnkapSignatureHeader carries the hex HMAC-SHA256 of a webhook body.
	EnkapSignatureHeader = "X-Enkap-Signature"
)

type EnkapConfig struct {
	BaseURL         string
	ConsumerKey     string
	ConsumerSecret  string
	ReturnURL       string
	NotificationURL string
	Currency        string
	Language        string
}

// EnkapAdapter wraps the E-nkap merchant API (cards and wallets behind a
// hosted payment page).
type EnkapAdapter struct {
	cfg    EnkapConfig
	client *httpclient.Client
	tokens *TokenCache
}

func NewEnkapAdapter(cfg EnkapConfig, client *httpclient.Client, tokens *TokenCache) *EnkapAdapter {
	if cfg.Currency == "" {
		cfg.Currency = "XAF"
	}
	if cfg.Language == "" {
		cfg.Language = "fr"
	}
	if tokens == nil {
		tokens = NewTokenCache(DefaultTokenMargin, time.Now)
	}
	return &EnkapAdapter{cfg: cfg, client: client, tokens: tokens}
}

func (e *EnkapAdapter) Name() model.PaymentProvider {
	return model.ProviderEnkap
}

type enkapTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type enkapOrderItem struct {
	ItemID      string `json:"itemId"`
	Particulars string `json:"particulars"`
	UnitCost    int64  `json:"unitCost"`
	Quantity    int    `json:"quantity"`
	SubTotal    int64  `json:"subTotal"`
}

type EnkapOrderRequest struct {
	MerchantReference string           `json:"merchantReference"`
	Email             string           `json:"email,omitempty"`
	CustomerName      string           `json:"customerName,omitempty"`
	PhoneNumber       string           `json:"phoneNumber"`
	TotalAmount       int64            `json:"totalAmount"`
	Description       string           `json:"description"`
	Currency          string           `json:"currency"`
	LangKey           string           `json:"langKey"`
	Items             []enkapOrderItem `json:"items"`
	ReturnURL         string           `json:"returnUrl,omitempty"`
	NotificationURL   string           `json:"notificationUrl,omitempty"`
}

type EnkapOrderResponse struct {
	OrderTransactionID  string `json:"orderTransactionId"`
	MerchantReferenceID string `json:"merchantReferenceId"`
	RedirectURL         string `json:"redirectUrl"`
}

type enkapStatusResponse struct {
	Status string `json:"status"`
}

func (e *EnkapAdapter) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")
	headers.Set("Accept", "application/json")
	credentials := base64.StdEncoding.EncodeToString([]byte(e.cfg.ConsumerKey + ":" + e.cfg.ConsumerSecret))
	headers.Set("Authorization", "Basic "+credentials)

	resp, err := e.client.Do(ctx, http.MethodPost, e.endpoint(enkapTokenEndpoint), headers, []byte(form.Encode()))
	if err != nil {
		return "", 0, &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapTokenEndpoint, Body: err.Error()}
	}
	if !resp.OK() {
		return "", 0, &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapTokenEndpoint, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var tok enkapTokenResponse
	if err := resp.DecodeJSON(&tok); err != nil || tok.AccessToken == "" {
		return "", 0, &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapTokenEndpoint, StatusCode: resp.StatusCode, Body: "missing access_token: " + string(resp.Body)}
	}
	return tok.AccessToken, time.Duration(tok.ExpiresIn) * time.Second, nil
}

// AccessToken returns a cached bearer token, fetching one when needed.
func (e *EnkapAdapter) AccessToken(ctx context.Context) (string, error) {
	return e.tokens.Get(ctx, e.fetchToken)
}

func (e *EnkapAdapter) endpoint(path string) string {
	return strings.TrimRight(e.cfg.BaseURL, "/") + path
}

func (e *EnkapAdapter) authorized(ctx context.Context) (http.Header, error) {
	token, err := e.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)
	headers.Set("Accept", "application/json")
	return headers, nil
}

// CreateOrder registers an order and returns the hosted payment page URL.
func (e *EnkapAdapter) CreateOrder(ctx context.Context, order EnkapOrderRequest) (*EnkapOrderResponse, error) {
	headers, err := e.authorized(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.PostJSON(ctx, e.endpoint(enkapOrderEndpoint), headers, order)
	if err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapOrderEndpoint, Body: err.Error()}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		e.tokens.Invalidate()
	}
	if !resp.OK() {
		return nil, &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapOrderEndpoint, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var out EnkapOrderResponse
	if err := resp.DecodeJSON(&out); err != nil || out.RedirectURL == "" {
		return nil, &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapOrderEndpoint, StatusCode: resp.StatusCode, Body: "missing redirectUrl: " + string(resp.Body)}
	}
	return &out, nil
}

// OrderStatus polls the status of an order by its E-nkap transaction id.
func (e *EnkapAdapter) OrderStatus(ctx context.Context, orderTransactionID string) (string, error) {
	headers, err := e.authorized(ctx)
	if err != nil {
		return "", err
	}

	target := e.endpoint(enkapStatusEndpoint) + "?" + url.Values{"txid": {orderTransactionID}}.Encode()
	resp, err := e.client.Do(ctx, http.MethodGet, target, headers, nil)
	if err != nil {
		return "", &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapStatusEndpoint, Body: err.Error()}
	}
	if !resp.OK() {
		return "", &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapStatusEndpoint, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var out enkapStatusResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", &model.ProviderError{Provider: model.ProviderEnkap, Operation: enkapStatusEndpoint, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	return strings.ToUpper(out.Status), nil
}

// VerifyTransaction polls an order by its E-nkap transaction id, which is
// stored as the attempt's ptn. E-nkap cannot be queried by merchant reference.
func (e *EnkapAdapter) VerifyTransaction(ctx context.Context, ptn, trid string) (*model.TransactionStatus, error) {
	if ptn == "" {
		return nil, model.NewValidationError("an E-nkap order transaction id (txid) is required")
	}
	status, err := e.OrderStatus(ctx, ptn)
	if err != nil {
		return nil, err
	}
	return &model.TransactionStatus{
		PTN:       ptn,
		TRID:      trid,
		Status:    status,
		CheckedAt: time.Now(),
	}, nil
}

func (e *EnkapAdapter) Initiate(ctx context.Context, req model.PaymentRequest) (*model.PaymentProcessorResponse, error) {
	phone, err := FormatPhoneForEnkap(req.Phone)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("LTC Group order %s", req.OrderRef)
	}

	order, err := e.CreateOrder(ctx, EnkapOrderRequest{
		MerchantReference: req.OrderRef,
		Email:             req.Email,
		CustomerName:      req.Name,
		PhoneNumber:       phone,
		TotalAmount:       req.Amount,
		Description:       description,
		Currency:          e.cfg.Currency,
		LangKey:           e.cfg.Language,
		Items: []enkapOrderItem{{
			ItemID:      req.OrderRef,
			Particulars: description,
			UnitCost:    req.Amount,
			Quantity:    1,
			SubTotal:    req.Amount,
		}},
		ReturnURL:       e.cfg.ReturnURL,
		NotificationURL: e.cfg.NotificationURL,
	})
	if err != nil {
		return nil, err
	}

	return &model.PaymentProcessorResponse{
		Provider:           model.ProviderEnkap,
		TRID:               req.OrderRef,
		PTN:                order.OrderTransactionID,
		OrderTransactionID: order.OrderTransactionID,
		RedirectURL:        order.RedirectURL,
		Status:             ports.EnkapPending,
		Amount:             req.Amount,
		Phone:              phone,
		Message:            "Continue to the E-nkap payment page",
	}, nil
}

// ValidateWebhookSignature checks a hex HMAC-SHA256 of the raw payload keyed
// with the consumer secret.
func (e *EnkapAdapter) ValidateWebhookSignature(payload []byte, signature string) bool {
	if e.cfg.ConsumerSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(e.cfg.ConsumerSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
