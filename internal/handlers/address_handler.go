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

type AddressHandler struct {
	addresses *service.AddressService
	log       *zap.Logger
}

func NewAddressHandler(addresses *service.AddressService, log *zap.Logger) *AddressHandler {
	return &AddressHandler{addresses: addresses, log: log}
}

// List godoc
// @Summary      Endereços do cliente
// @Tags         enderecos
// @Produce      json
// @Success      200 {array} dto.AddressResponse
// @Failure      401 {object} dto.UnauthorizedErrorResponse
// @Router       /api/cliente/enderecos [get]
func (h *AddressHandler) List(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	list, err := h.addresses.List(c.Request.Context(), customerID)
	if err != nil {
		h.log.Error("address list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusOK, dto.FromAddresses(list))
}

// Create godoc
// @Summary      Novo endereço
// @Tags         enderecos
// @Accept       json
// @Produce      json
// @Param        input body service.AddressInput true "Endereço"
// @Success      201 {object} dto.AddressResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      401 {object} dto.UnauthorizedErrorResponse
// @Router       /api/cliente/enderecos [post]
func (h *AddressHandler) Create(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	var in service.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), customerID, in)
	if err != nil {
		h.log.Error("address create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusCreated, dto.FromAddress(a))
}

// Update godoc
// @Summary      Atualização de endereço
// @Tags         enderecos
// @Accept       json
// @Produce      json
// @Param        id    path string               true "ID do endereço"
// @Param        input body service.AddressInput true "Endereço"
// @Success      200 {object} dto.AddressResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Failure      404 {object} dto.NotFoundErrorResponse
// @Router       /api/cliente/enderecos/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id de endereço inválido", nil))
		return
	}

	var in service.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	a, err := h.addresses.Update(c.Request.Context(), customerID, addressID, in)
	if err != nil {
		h.writeAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAddress(a))
}

// Delete godoc
// @Summary      Remoção de endereço
// @Tags         enderecos
// @Produce      json
// @Param        id path string true "ID do endereço"
// @Success      200 {object} dto.MessageResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Failure      404 {object} dto.NotFoundErrorResponse
// @Router       /api/cliente/enderecos/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id de endereço inválido", nil))
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), customerID, addressID); err != nil {
		h.writeAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "endereço removido"})
}

// SetPrincipal godoc
// @Summary      Define o endereço principal
// @Description  Marca o endereço como principal e desmarca os demais na mesma
// @Description  transação.
// @Tags         enderecos
// @Produce      json
// @Param        id path string true "ID do endereço"
// @Success      200 {object} dto.MessageResponse
// @Failure      403 {object} dto.ForbiddenErrorResponse
// @Failure      404 {object} dto.NotFoundErrorResponse
// @Router       /api/cliente/enderecos/{id}/principal [put]
func (h *AddressHandler) SetPrincipal(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("id de endereço inválido", nil))
		return
	}

	if err := h.addresses.SetPrincipal(c.Request.Context(), customerID, addressID); err != nil {
		h.writeAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "endereço principal atualizado"})
}

func (h *AddressHandler) writeAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("endereço não encontrado"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("endereço pertence a outro cliente"))
	default:
		h.log.Error("address operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}
