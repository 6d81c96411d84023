package api

import (
	"log"
	stdhttp "net/http"

	intconfig "rentalops/internal/config"
	h "rentalops/internal/http/handlers"
	"rentalops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Bookings (read only, data keberangkatan sudah ada di sistem lain)
		bookings := api.Group("/bookings")
		bookings.GET("/:id", h.GetBookingByID)

		// Returns & billing
		returns := api.Group("/returns")
		returns.POST("/quote", h.QuoteReturn)
		returns.GET("", h.GetReturns)
		returns.GET("/:id", h.GetReturnByID)
		returns.GET("/:id/bill", h.GetReturnBill)

		// Mutating return flow requires a logged in operator. The
		// operator identity rides the token and is passed explicitly
		// into the service layer.
		secured := returns.Group("")
		secured.Use(middleware.RequireAuth(h.JWTSecret()))
		secured.GET("/:id/payment", h.GetPaymentState)
		secured.POST("/:id/payment/method", h.SelectPaymentMethod)
		secured.POST("/:id/payment/gateway/order", h.CreateGatewayOrder)
		secured.POST("/:id/payment/gateway/verify", h.VerifyGatewayPayment)
		secured.POST("/:id/payment/gateway/cancel", h.CancelGatewayPayment)
		secured.POST("/:id/payment/cash/confirm", h.ConfirmCashPayment)
		secured.POST("/:id/finalize",
			middleware.RequireRoles("admin", "operator"), h.FinalizeReturn)
	}

	return r
}
