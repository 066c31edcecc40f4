package handlers

import (
	"net/http"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	stats   services.StatsService
	orders  services.OrderService
	users   services.UserService
	catalog services.CatalogService
	log     logrus.FieldLogger
}

func NewAdminHandler(
	stats services.StatsService,
	orders services.OrderService,
	users services.UserService,
	catalog services.CatalogService,
	log logrus.FieldLogger,
) *AdminHandler {
	return &AdminHandler{
		stats:   stats,
		orders:  orders,
		users:   users,
		catalog: catalog,
		log:     log.WithField("handler", "admin"),
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.GetAdminLeadStats(c.Request.Context()))
}

func (h *AdminHandler) GetLeads(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"leads": h.stats.GetAdminLeads(c.Request.Context())})
}

// GetOrders accepts ?status=, ?source= and a free-text ?q=.
func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders := h.orders.LoadOrders(c.Request.Context())
	orders = h.orders.FilterByStatus(orders, statusFilter(c))
	orders = services.FilterBySource(orders, models.OrderSource(c.Query("source")))
	c.JSON(http.StatusOK, gin.H{"orders": services.SearchOrders(orders, c.Query("q"))})
}

func (h *AdminHandler) GetOrdersSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.GetOrdersSummary(c.Request.Context()))
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	updateOrderStatus(c, h.orders, h.log)
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.users.GetAllUsers()})
}

func (h *AdminHandler) GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.catalog.GetCustomers()})
}

func (h *AdminHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.GetProductsByBrand(c.Query("brand"))})
}

func (h *AdminHandler) GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activity": h.stats.GetRecentActivity(c.Request.Context(), intQuery(c, "limit", 0))})
}
