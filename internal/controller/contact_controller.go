package controller

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/service"
	"github.com/HackingCorp/ltcgroup-sub001/internal/validation"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/utils"
)

type ContactController struct {
	service *service.ContactService
}

func NewContactController(service *service.ContactService) *ContactController {
	return &ContactController{service: service}
}

func (c *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := validation.Validate(contactSchema, rawBody); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.ContactRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := c.service.Send(r.Context(), req); err != nil {
		slog.ErrorContext(r.Context(), "contact mail failed", "from", req.Email, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Message could not be sent")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Message sent"})
}
