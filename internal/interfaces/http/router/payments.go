package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rentmanager/backend/internal/interfaces/http/handler"
)

// PaymentRoutes registers payment ledger routes
type PaymentRoutes struct {
	handler *handler.PaymentEntryHandler
}

// NewPaymentRoutes creates a new PaymentRoutes registrar
func NewPaymentRoutes(h *handler.PaymentEntryHandler) *PaymentRoutes {
	return &PaymentRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (p *PaymentRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", p.handler.Create)
		payments.GET("", p.handler.List)
		payments.GET("/:id", p.handler.Get)
		payments.POST("/:id/capture", p.handler.Capture)
		payments.POST("/:id/void", p.handler.Void)
	}
}
