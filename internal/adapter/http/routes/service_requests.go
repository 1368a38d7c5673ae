package routes

import (
	"mecanica_hub/internal/adapter/http/handlers"
	"mecanica_hub/internal/adapter/http/middleware"
	"mecanica_hub/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathServiceRequests = "/service-requests"
	PathPayments        = "/payments"
)

var (
	clientOnly      = middleware.RequireRoles(entities.RoleClient)
	mechanicOnly    = middleware.RequireRoles(entities.RoleMechanic)
	mechanicOrAdmin = middleware.RequireRoles(entities.RoleMechanic, entities.RoleAdmin)
	adminOnly       = middleware.RequireRoles(entities.RoleAdmin)
)

// Ownership checks for the open routes live in the use cases.
func addServiceRequestRoutes(rg *gin.RouterGroup, h *handlers.ServiceRequestHandler, payments *handlers.ServicePaymentHandler) {
	requests := rg.Group(PathServiceRequests)
	{
		requests.POST("", clientOnly, h.Create)
		requests.GET("/available", mechanicOrAdmin, h.ListAvailable)
		requests.GET("/assigned", mechanicOnly, h.ListAssigned)
		requests.GET("/mine", clientOnly, h.ListMine)

		requests.GET("/:id", h.Get)
		requests.GET("/:id/history", h.History)
		requests.GET("/:id/transitions", h.AllowedTransitions)
		requests.POST("/:id/assign", mechanicOrAdmin, h.Assign)
		requests.PATCH("/:id/status", h.UpdateStatus)
		requests.PATCH("/:id/quote", mechanicOnly, h.UpdateQuote)

		requests.POST("/:id/payments", clientOnly, payments.Pay)
		requests.GET("/:id/payments", payments.List)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, payments *handlers.ServicePaymentHandler) {
	rg.GET(PathPayments+"/:payment_id", adminOnly, payments.GetByID)
}
