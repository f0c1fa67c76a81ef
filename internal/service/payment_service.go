package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HackingCorp/ltcgroup-sub001/internal/core"
	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/internal/webhook"
)

// providerTimeout bounds the whole outbound call chain of one request.
const providerTimeout = 30 * time.Second

type PaymentService struct {
	providers    *core.ProviderRegistry
	orders       ports.IOrderRepository
	transactions ports.ITransactionRepository
	newID        func() string
}

func NewPaymentService(providers *core.ProviderRegistry, orders ports.IOrderRepository, transactions ports.ITransactionRepository) *PaymentService {
	return &PaymentService{
		providers:    providers,
		orders:       orders,
		transactions: transactions,
		newID:        uuid.NewString,
	}
}

func validatePaymentRequest(req *model.PaymentRequest) error {
	req.OrderRef = strings.TrimSpace(req.OrderRef)
	req.Phone = strings.TrimSpace(req.Phone)

	var missing []string
	if req.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if req.OrderRef == "" {
		missing = append(missing, "orderRef")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return model.NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// paymentMethodLabel is what ends up in orders.payment_method.
func paymentMethodLabel(method model.PaymentMethod, operator model.MobileOperator) string {
	if method == model.MethodMobileMoney && operator != "" {
		return fmt.Sprintf("%s_%s", method, strings.ToLower(string(operator)))
	}
	return string(method)
}

// Initiate validates the request, hands it to the provider registered for
// req.Method and records the attempt. Store failures after a successful
// provider call are logged only: the customer has already been prompted.
func (s *PaymentService) Initiate(ctx context.Context, req model.PaymentRequest) (*model.PaymentResponse, error) {
	if req.Method == "" {
		return nil, model.NewValidationError("payment method is required")
	}
	processor, err := s.providers.Get(req.Method)
	if err != nil {
		return nil, err
	}
	if err := validatePaymentRequest(&req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	res, err := processor.Initiate(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "payment initiation failed",
			"order_ref", req.OrderRef, "provider", processor.Name(), "error", err)
		return nil, err
	}

	tx := &model.Transaction{
		ID:       s.newID(),
		Provider: res.Provider,
		PTN:      res.PTN,
		TRID:     req.OrderRef,
		OrderRef: req.OrderRef,
		Amount:   req.Amount,
		Phone:    res.Phone,
		Status:   res.Status,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "failed to record transaction", "order_ref", req.OrderRef, "error", err)
	}

	method := paymentMethodLabel(req.Method, res.Operator)
	if err := s.orders.UpdatePayment(ctx, req.OrderRef, model.StatusPending, method); err != nil {
		slog.WarnContext(ctx, "failed to mark order pending", "order_ref", req.OrderRef, "error", err)
	}

	slog.InfoContext(ctx, "payment initiated",
		"order_ref", req.OrderRef, "provider", res.Provider, "ptn", res.PTN, "status", res.Status)

	return &model.PaymentResponse{
		Success:            true,
		Provider:           res.Provider,
		Method:             req.Method,
		Status:             res.Status,
		PTN:                res.PTN,
		TRID:               res.TRID,
		OrderTransactionID: res.OrderTransactionID,
		RedirectURL:        res.RedirectURL,
		Message:            res.Message,
	}, nil
}

// providerStatus folds a raw provider status onto the order payment status.
func providerStatus(method model.PaymentMethod, raw string) model.PaymentStatus {
	if method == model.MethodEnkap {
		return webhook.MapEnkapStatus(raw)
	}
	return webhook.MapS3PStatus(raw)
}

// CheckStatus polls the provider behind method for a payment attempt, ptn
// taking precedence over trid, and writes terminal outcomes back to the
// stores. For E-nkap the ptn is the order transaction id.
func (s *PaymentService) CheckStatus(ctx context.Context, method model.PaymentMethod, ptn, trid string) (*model.StatusResponse, error) {
	ptn = strings.TrimSpace(ptn)
	trid = strings.TrimSpace(trid)
	if ptn == "" && trid == "" {
		return nil, model.NewValidationError("a transaction reference (ptn, trid or txid) is required")
	}
	if method == "" {
		method = model.MethodMobileMoney
	}

	verifier, err := s.providers.Verifier(method)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	lookupTRID := trid
	if ptn != "" {
		lookupTRID = ""
	}
	st, err := verifier.VerifyTransaction(ctx, ptn, lookupTRID)
	if err != nil {
		return nil, err
	}

	if st.PTN == "" {
		st.PTN = ptn
	}
	if st.TRID == "" {
		st.TRID = trid
	}

	resp := &model.StatusResponse{
		Success:       true,
		PTN:           st.PTN,
		TRID:          st.TRID,
		Status:        st.Status,
		PaymentStatus: providerStatus(method, st.Status),
		Amount:        st.Amount,
		ErrorMessage:  st.ErrorMessage,
		CheckedAt:     st.CheckedAt,
	}
	if !resp.PaymentStatus.Terminal() {
		return resp, nil
	}

	s.recordVerification(ctx, st, resp.PaymentStatus)
	return resp, nil
}

func (s *PaymentService) recordVerification(ctx context.Context, st *model.TransactionStatus, status model.PaymentStatus) {
	filters := map[string]interface{}{"trid": st.TRID}
	if st.PTN != "" {
		filters = map[string]interface{}{"ptn": st.PTN}
	}
	if err := s.transactions.UpdateStatus(ctx, st.Status, st.ErrorMessage, filters); err != nil && !errors.Is(err, model.ErrTransactionNotFound) {
		slog.ErrorContext(ctx, "failed to update transaction", "ptn", st.PTN, "error", err)
	}

	orderRef := st.TRID
	if orderRef == "" {
		tx, err := s.transactions.FindByReference(ctx, st.PTN)
		if err != nil {
			slog.WarnContext(ctx, "cannot resolve order for transaction", "ptn", st.PTN, "error", err)
			return
		}
		orderRef = tx.OrderRef
	}

	if err := s.orders.UpdatePayment(ctx, orderRef, status, ""); err != nil {
		slog.ErrorContext(ctx, "failed to update order status", "order_ref", orderRef, "error", err)
		return
	}
	slog.InfoContext(ctx, "order status reconciled", "order_ref", orderRef, "status", status)
}
