package handlers

import (
	"io"
	"net/http"

	"loja-api/internal/dto"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Webhook payloads are small; anything beyond this is not a gateway call.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	orders *service.OrderService
	log    *zap.Logger
}

func NewWebhookHandler(orders *service.OrderService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{orders: orders, log: log}
}

// PagBank godoc
// @Summary      Webhook de notificação de pagamento
// @Description  Armazena o payload bruto e, quando o reference_id casa com um
// @Description  pedido, atualiza o status de pagamento. Sempre responde 200
// @Description  para payloads armazenados, mesmo sem pedido correspondente.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Router       /api/webhooks/pagbank [post]
func (h *WebhookHandler) PagBank(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("corpo da notificação vazio", nil))
		return
	}

	refID, err := h.orders.ApplyPaymentNotification(c.Request.Context(), body)
	if err != nil {
		h.log.Error("payment notification processing failed",
			zap.String("reference_id", refID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "notificação recebida"})
}
