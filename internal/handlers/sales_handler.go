package handlers

import (
	"net/http"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SalesHandler struct {
	leads   services.SalesLeadService
	orders  services.OrderService
	carts   services.CartService
	catalog services.CatalogService
	log     logrus.FieldLogger
}

func NewSalesHandler(
	leads services.SalesLeadService,
	orders services.OrderService,
	carts services.CartService,
	catalog services.CatalogService,
	log logrus.FieldLogger,
) *SalesHandler {
	return &SalesHandler{
		leads:   leads,
		orders:  orders,
		carts:   carts,
		catalog: catalog,
		log:     log.WithField("handler", "sales"),
	}
}

// Leads

func (h *SalesHandler) GetLeads(c *gin.Context) {
	leads := h.leads.LoadLeads(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"leads": h.leads.FilterByStatus(leads, statusFilter(c))})
}

func (h *SalesHandler) CreateLead(c *gin.Context) {
	var input models.NewSalesLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c)
		return
	}

	leads, err := h.leads.AddLead(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": leads[0], "leads": leads})
}

func (h *SalesHandler) UpdateLeadStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	leads, err := h.leads.UpdateLeadStatus(c.Request.Context(), c.Param("id"), models.SalesLeadStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

func (h *SalesHandler) GetStats(c *gin.Context) {
	leads := h.leads.LoadLeads(c.Request.Context())
	c.JSON(http.StatusOK, h.leads.GetSalesStats(leads))
}

// Directory and catalog

func (h *SalesHandler) GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.catalog.GetCustomers()})
}

func (h *SalesHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.GetProductsByBrand(c.Query("brand"))})
}

// Orders

// GetOrders lists orders placed by sales staff.
func (h *SalesHandler) GetOrders(c *gin.Context) {
	orders := services.FilterBySource(h.orders.LoadOrders(c.Request.Context()), models.OrderSourceSales)
	orders = h.orders.FilterByStatus(orders, statusFilter(c))
	c.JSON(http.StatusOK, gin.H{"orders": services.SearchOrders(orders, c.Query("q"))})
}

func (h *SalesHandler) CreateOrder(c *gin.Context) {
	var input services.SalesOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c)
		return
	}

	order, err := h.carts.CreateSalesOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *SalesHandler) UpdateOrderStatus(c *gin.Context) {
	updateOrderStatus(c, h.orders, h.log)
}

func updateOrderStatus(c *gin.Context, orders services.OrderService, log logrus.FieldLogger) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	updated, err := orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": updated})
}
