package handlers

import (
	"errors"
	"net/http"

	"loja-api/internal/dto"
	"loja-api/internal/middleware"
	"loja-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth         *service.AuthService
	cookieMaxAge int
	log          *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, cookieMaxAge int, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookieMaxAge: cookieMaxAge, log: log}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type changePasswordRequest struct {
	SenhaAtual string `json:"senhaAtual" binding:"required"`
	SenhaNova  string `json:"senhaNova" binding:"required,min=8"`
}

// Register godoc
// @Summary      Cadastro de cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body service.RegisterInput true "Dados do cliente"
// @Success      201 {object} dto.CustomerProfile
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      409 {object} dto.ConflictErrorResponse
// @Router       /api/cliente/registrar [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	customer, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, dto.NewConflictError("e-mail já cadastrado"))
			return
		}
		h.log.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusCreated, dto.FromCustomer(customer))
}

// Login godoc
// @Summary      Login de cliente
// @Description  Autentica por e-mail e senha e grava o token de sessão em
// @Description  cookie httpOnly. Limitado a 5 tentativas por ip:e-mail a cada
// @Description  15 minutos.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body loginRequest true "Credenciais"
// @Success      200 {object} dto.LoginResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      401 {object} dto.UnauthorizedErrorResponse
// @Failure      429 {object} dto.RateLimitedErrorResponse
// @Router       /api/cliente/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	meta := clientMeta(c)
	customer, token, exp, err := h.auth.Login(c.Request.Context(), req.Email, req.Senha, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests,
				dto.NewRateLimitedError("muitas tentativas de login, aguarde alguns minutos"))
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrCustomerInactive):
			// Inactive accounts look identical to wrong credentials.
			c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("e-mail ou senha inválidos"))
		default:
			h.log.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.ClienteCookie, token, h.cookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    token,
		ExpiraEm: exp,
		Cliente:  dto.FromCustomer(customer),
	})
}

// Logout godoc
// @Summary      Logout de cliente
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.MessageResponse
// @Router       /api/cliente/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := c.Get(middleware.CtxSessionID); ok {
		if id, ok := sid.(uuid.UUID); ok {
			if err := h.auth.Logout(c.Request.Context(), id); err != nil {
				h.log.Warn("logout failed", zap.Error(err))
			}
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.ClienteCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "sessão encerrada"})
}

// Me godoc
// @Summary      Perfil do cliente autenticado
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.CustomerProfile
// @Failure      401 {object} dto.UnauthorizedErrorResponse
// @Router       /api/cliente/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	customer, err := h.auth.Customer(c.Request.Context(), customerID)
	if err != nil {
		h.log.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	if customer == nil {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	c.JSON(http.StatusOK, dto.FromCustomer(customer))
}

// ChangePassword godoc
// @Summary      Troca de senha
// @Description  Verifica a senha atual, grava a nova e revoga todas as
// @Description  sessões do cliente.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body changePasswordRequest true "Senhas"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ValidationErrorResponse
// @Failure      401 {object} dto.UnauthorizedErrorResponse
// @Router       /api/cliente/senha [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	customerID, ok := currentCustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("sessão inválida"))
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), customerID, req.SenhaAtual, req.SenhaNova)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("senha atual incorreta"))
			return
		}
		h.log.Error("password change failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	// Every session was revoked, including this one.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.ClienteCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "senha alterada, faça login novamente"})
}

func currentCustomerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxCustomerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func clientMeta(c *gin.Context) service.ClientMeta {
	meta := service.ClientMeta{}
	if ip := c.ClientIP(); ip != "" {
		meta.IP = &ip
	}
	if ua := c.Request.UserAgent(); ua != "" {
		meta.UserAgent = &ua
	}
	return meta
}
