package handlers

import (
	"errors"
	"net/http"

	"loja-api/internal/dto"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FreteHandler struct {
	frete *service.FreteService
	log   *zap.Logger
}

func NewFreteHandler(frete *service.FreteService, log *zap.Logger) *FreteHandler {
	return &FreteHandler{frete: frete, log: log}
}

// Quote godoc
// @Summary      Cálculo de frete
// @Description  Calcula o frete pela tabela por UF. Subtotal acima do mínimo
// @Description  configurado zera o valor.
// @Tags         frete
// @Accept       json
// @Produce      json
// @Param        input body service.FreteQuoteInput true "UF de destino e subtotal"
// @Success      200 {object} service.FreteQuote
// @Failure      400 {object} dto.ValidationErrorResponse
// @Router       /api/frete [post]
func (h *FreteHandler) Quote(c *gin.Context) {
	var in service.FreteQuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	quote, err := h.frete.Quote(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrUFInvalid) {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("UF desconhecida", nil))
			return
		}
		h.log.Error("frete quote failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusOK, quote)
}
