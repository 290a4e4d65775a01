package handlers

import (
	"errors"
	"net/http"

	"loja-api/internal/dto"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatusHandler struct {
	status *service.StatusService
	log    *zap.Logger
}

func NewStatusHandler(status *service.StatusService, log *zap.Logger) *StatusHandler {
	return &StatusHandler{status: status, log: log}
}

// History godoc
// @Summary      Histórico de status de entrega (admin)
// @Tags         pedidos
// @Produce      json
// @Param        id path string true "ID do pedido"
// @Success      200 {array} dto.HistoricoResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Failure      404 {object} dto.NotFoundErrorResponse
// @Router       /api/pedidos/{id}/status-entrega [get]
func (h *StatusHandler) History(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id de pedido inválido", nil))
		return
	}

	history, err := h.status.History(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("pedido não encontrado"))
			return
		}
		h.log.Error("status history lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusOK, dto.FromHistoricos(history))
}

// Change godoc
// @Summary      Alteração de status de entrega (admin)
// @Description  Grava o novo status e a linha de auditoria na mesma
// @Description  transação. O ator precisa estar na lista de permitidos.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        id    path string                     true "ID do pedido"
// @Param        input body service.ChangeStatusInput true "Novo status"
// @Success      200 {object} dto.HistoricoResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Failure      404 {object} dto.NotFoundErrorResponse
// @Router       /api/pedidos/{id}/status-entrega [post]
func (h *StatusHandler) Change(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id de pedido inválido", nil))
		return
	}

	var in service.ChangeStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	entry, err := h.status.ChangeStatus(c.Request.Context(), orderID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, dto.NewValidationError("status de entrega desconhecido", nil))
		case errors.Is(err, service.ErrActorNotAllowed):
			c.JSON(http.StatusForbidden, dto.NewForbiddenError("ator não autorizado a alterar status"))
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("pedido não encontrado"))
		default:
			h.log.Error("status change failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromHistorico(entry))
}
