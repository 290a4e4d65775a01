package router

import (
	"net/http"
	"time"

	"loja-api/internal/handlers"
	"loja-api/internal/middleware"
	"loja-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Auth      *service.AuthService
	Cart      *handlers.CartHandler
	Orders    *handlers.OrderHandler
	Status    *handlers.StatusHandler
	Webhooks  *handlers.WebhookHandler
	Addresses *handlers.AddressHandler
	Frete     *handlers.FreteHandler
	AuthH     *handlers.AuthHandler

	AdminToken string
	Log        *zap.Logger
}

func New(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	clienteAuth := middleware.ClienteAuth(d.Auth, d.Log)
	clienteOptional := middleware.ClienteOptional(d.Auth, d.Log)
	adminAuth := middleware.AdminAuth(d.AdminToken, d.Log)
	adminOptional := middleware.AdminOptional(d.AdminToken)

	api := r.Group("/api")
	{
		// Storefront, no authentication required.
		api.POST("/carrinho/validar", d.Cart.Validate)
		api.POST("/frete", d.Frete.Quote)
		api.POST("/pedido", clienteOptional, d.Orders.Create)
		api.POST("/webhooks/pagbank", d.Webhooks.PagBank)

		// Customer account.
		cliente := api.Group("/cliente")
		{
			cliente.POST("/registrar", d.AuthH.Register)
			cliente.POST("/login", d.AuthH.Login)
			cliente.POST("/logout", clienteOptional, d.AuthH.Logout)
			cliente.GET("/me", clienteAuth, d.AuthH.Me)
			cliente.PUT("/senha", clienteAuth, d.AuthH.ChangePassword)

			enderecos := cliente.Group("/enderecos", clienteAuth)
			{
				enderecos.GET("", d.Addresses.List)
				enderecos.POST("", d.Addresses.Create)
				enderecos.PUT("/:id", d.Addresses.Update)
				enderecos.DELETE("/:id", d.Addresses.Delete)
				enderecos.PUT("/:id/principal", d.Addresses.SetPrincipal)
			}
		}

		// Order lookup: admin sees everything, customers see their own.
		api.GET("/pedidos/:id", adminOptional, clienteOptional, d.Orders.Get)
		api.GET("/pedidos", adminAuth, d.Orders.List)
		api.GET("/pedidos/:id/status-entrega", adminAuth, d.Status.History)
		api.POST("/pedidos/:id/status-entrega", adminAuth, d.Status.Change)
	}

	return r
}
