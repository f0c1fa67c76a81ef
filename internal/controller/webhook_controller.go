package controller

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/HackingCorp/ltcgroup-sub001/internal/adapters"
	"github.com/HackingCorp/ltcgroup-sub001/internal/service"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/utils"
)

type WebhookController struct {
	service *service.WebhookService
}

func NewWebhookController(service *service.WebhookService) *WebhookController {
	return &WebhookController{service: service}
}

// Receive always answers 200 so providers do not keep retrying; failures are
// reported in the body.
func (c *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "Invalid body"})
		return
	}

	signature := utils.GetHeader(r.Header, adapters.EnkapSignatureHeader)
	result, err := c.service.Handle(r.Context(), rawBody, signature)
	if err != nil {
		slog.ErrorContext(r.Context(), "webhook processing failed", "error", err)
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	response := map[string]interface{}{"success": true}
	if result.OrderRef != "" {
		response["orderRef"] = result.OrderRef
		response["status"] = result.Status
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Verify answers the provider's endpoint verification handshake.
func (c *WebhookController) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	challenge := q.Get("challenge")
	if challenge == "" {
		challenge = q.Get("hub.challenge")
	}
	if challenge == "" {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, challenge)
}
