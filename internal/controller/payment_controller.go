package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/service"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/utils"
)

type PaymentController struct {
	service *service.PaymentService
}

func NewPaymentController(service *service.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

// paymentErrorStatus maps input and provider failures to 400, anything else
// to 500.
func paymentErrorStatus(err error) int {
	var perr *model.ProviderError
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrUnsupportedMethod),
		errors.Is(err, model.ErrInvalidPhone),
		errors.As(err, &perr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (c *PaymentController) Initiate(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	response, err := c.service.Initiate(r.Context(), req)
	if err != nil {
		code := paymentErrorStatus(err)
		message := err.Error()
		if code == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "payment initiation error", "order_ref", req.OrderRef, "error", err)
			message = "Payment could not be initiated"
		}
		utils.RespondWithError(w, code, message)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (c *PaymentController) CheckStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// txid is the E-nkap order transaction id; everything else is S3P
	// unless method says otherwise.
	method := model.PaymentMethod(q.Get("method"))
	ptn := q.Get("ptn")
	if txid := q.Get("txid"); txid != "" {
		method = model.MethodEnkap
		ptn = txid
	}

	response, err := c.service.CheckStatus(r.Context(), method, ptn, q.Get("trid"))
	if err != nil {
		code := paymentErrorStatus(err)
		message := err.Error()
		if code == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "status check error", "ptn", q.Get("ptn"), "trid", q.Get("trid"), "error", err)
			message = "Status check failed"
		}
		utils.RespondWithError(w, code, message)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (c *PaymentController) GetHealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
