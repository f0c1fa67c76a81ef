package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/service"
	"github.com/HackingCorp/ltcgroup-sub001/internal/validation"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/utils"
)

type OrderController struct {
	service *service.OrderService
}

func NewOrderController(service *service.OrderService) *OrderController {
	return &OrderController{service: service}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := validation.Validate(orderSchema, rawBody); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.OrderRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	order, err := c.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "order creation failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order could not be created")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "order": order})
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	order, err := c.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		slog.ErrorContext(r.Context(), "order lookup failed", "order_ref", ref, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order lookup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": order})
}
