package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"loja-api/internal/dto"
	"loja-api/internal/middleware"
	"loja-api/internal/models"
	"loja-api/internal/repository"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Create godoc
// @Summary      Criação de pedido
// @Description  Persiste o pedido e cria o checkout hospedado no PagBank em
// @Description  uma única passada. Se o gateway falhar, o pedido é removido e
// @Description  a resposta é 502.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        input body service.CreateOrderInput true "Pedido"
// @Success      201 {object} dto.OrderCreatedResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      502 {object} dto.UpstreamErrorResponse
// @Router       /api/pedido [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	result, err := h.orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyItems):
			c.JSON(http.StatusBadRequest, dto.NewValidationError("pedido sem itens", nil))
		case errors.Is(err, service.ErrQuantityInvalid):
			c.JSON(http.StatusBadRequest, dto.NewValidationError("quantidade inválida", nil))
		case errors.Is(err, service.ErrGateway):
			h.log.Error("checkout gateway failed", zap.Error(err))
			c.JSON(http.StatusBadGateway,
				dto.NewUpstreamError("falha ao criar o checkout de pagamento", ""))
		default:
			h.log.Error("order creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OrderCreatedResponse{
		Message: "pedido criado com sucesso",
		ID:      result.ID,
		Link:    result.Link,
	})
}

// Get godoc
// @Summary      Consulta de pedido
// @Description  Admin consulta qualquer pedido; cliente autenticado consulta
// @Description  apenas os próprios.
// @Tags         pedidos
// @Produce      json
// @Param        id path string true "ID do pedido"
// @Success      200 {object} dto.OrderResponse
// @Failure      401 {object} dto.UnauthorizedErrorResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Failure      404 {object} dto.NotFoundErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id de pedido inválido", nil))
		return
	}

	var (
		order *models.Order
	)
	if c.GetBool(middleware.CtxIsAdmin) {
		order, err = h.orders.GetOrder(c.Request.Context(), orderID)
	} else if customerID, ok := currentCustomerID(c); ok {
		order, err = h.orders.GetOrderForCustomer(c.Request.Context(), orderID, customerID)
	} else {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("autenticação necessária"))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("pedido não encontrado"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.NewForbiddenError("pedido pertence a outro cliente"))
		default:
			h.log.Error("order lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(order))
}

// List godoc
// @Summary      Listagem de pedidos (admin)
// @Tags         pedidos
// @Produce      json
// @Param        status_entrega   query string false "Filtro por status de entrega"
// @Param        status_pagamento query string false "Filtro por status de pagamento"
// @Param        limit            query int    false "Tamanho da página" default(50)
// @Param        offset           query int    false "Deslocamento"
// @Success      200 {object} dto.OrderListResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Router       /api/pedidos [get]
func (h *OrderHandler) List(c *gin.Context) {
	f := repository.OrderListFilter{Limit: 50}

	if v := c.Query("status_entrega"); v != "" {
		st := models.StatusEntrega(v)
		if !models.ValidStatusEntrega(st) {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("status de entrega desconhecido", nil))
			return
		}
		f.StatusEntrega = &st
	}
	if v := c.Query("status_pagamento"); v != "" {
		sp := models.StatusPagamento(v)
		f.StatusPagamento = &sp
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			f.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		h.log.Error("order list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	resp := dto.OrderListResponse{Total: total, Pedidos: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Pedidos = append(resp.Pedidos, dto.FromOrder(o))
	}
	c.JSON(http.StatusOK, resp)
}
