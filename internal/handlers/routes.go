package handlers

import (
	"lyhu_portal/internal/middleware"
	"lyhu_portal/internal/models"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *AuthHandler
	Ctv      *CtvHandler
	Sales    *SalesHandler
	Customer *CustomerHandler
	Admin    *AdminHandler
	Events   *EventsHandler
}

// RegisterRoutes mounts the API. Session resolution must already be installed
// on router via middleware.LoadUser.
func RegisterRoutes(router gin.IRouter, h Handlers) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
	}

	api.GET("/orders/events", middleware.RequireUser(), h.Events.Stream)

	ctv := api.Group("/ctv", middleware.RequireRole(models.RoleCTV))
	{
		ctv.GET("/leads", h.Ctv.GetLeads)
		ctv.POST("/leads", h.Ctv.CreateLead)
		ctv.PATCH("/leads/:id/status", h.Ctv.UpdateLeadStatus)
		ctv.GET("/stats", h.Ctv.GetStats)
	}

	sales := api.Group("/sales", middleware.RequireRole(models.RoleSales))
	{
		sales.GET("/leads", h.Sales.GetLeads)
		sales.POST("/leads", h.Sales.CreateLead)
		sales.PATCH("/leads/:id/status", h.Sales.UpdateLeadStatus)
		sales.GET("/stats", h.Sales.GetStats)
		sales.GET("/customers", h.Sales.GetCustomers)
		sales.GET("/products", h.Sales.GetProducts)
		sales.GET("/orders", h.Sales.GetOrders)
		sales.POST("/orders", h.Sales.CreateOrder)
		sales.PATCH("/orders/:id/status", h.Sales.UpdateOrderStatus)
	}

	customer := api.Group("/customer", middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/products", h.Customer.GetProducts)
		customer.GET("/cart", h.Customer.GetCart)
		customer.POST("/cart", h.Customer.AddToCart)
		customer.DELETE("/cart", h.Customer.ClearCart)
		customer.PATCH("/cart/:productId", h.Customer.UpdateCartItem)
		customer.DELETE("/cart/:productId", h.Customer.RemoveCartItem)
		customer.POST("/checkout", h.Customer.Checkout)
		customer.GET("/orders", h.Customer.GetOrders)
	}

	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", h.Admin.GetStats)
		admin.GET("/leads", h.Admin.GetLeads)
		admin.GET("/orders", h.Admin.GetOrders)
		admin.GET("/orders/summary", h.Admin.GetOrdersSummary)
		admin.PATCH("/orders/:id/status", h.Admin.UpdateOrderStatus)
		admin.GET("/users", h.Admin.GetUsers)
		admin.GET("/customers", h.Admin.GetCustomers)
		admin.GET("/products", h.Admin.GetProducts)
		admin.GET("/activity", h.Admin.GetActivity)
	}
}
