package handlers

import (
	"net/http"

	"loja-api/internal/dto"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart *service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart *service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

// Validate godoc
// @Summary      Validação de carrinho
// @Description  Reconcilia os preços do carrinho com o catálogo e valida os
// @Description  cupons aplicados. Retorna os itens divergentes e um laudo por
// @Description  cupom; atualizado=true significa que nada mudou.
// @Tags         carrinho
// @Accept       json
// @Produce      json
// @Param        input body service.ValidateCartInput true "Itens e cupons do carrinho"
// @Success      200 {object} service.ValidateCartResult
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      502 {object} dto.UpstreamErrorResponse
// @Router       /api/carrinho/validar [post]
func (h *CartHandler) Validate(c *gin.Context) {
	var in service.ValidateCartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	result, err := h.cart.ValidateCart(c.Request.Context(), in)
	if err != nil {
		h.log.Error("cart validation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway,
			dto.NewUpstreamError("falha ao consultar o catálogo", err.Error()))
		return
	}

	c.JSON(http.StatusOK, result)
}
