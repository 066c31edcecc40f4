package handlers

import (
	"net/http"

	"lyhu_portal/internal/middleware"
	"lyhu_portal/internal/models"
	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CustomerHandler struct {
	carts   services.CartService
	orders  services.OrderService
	catalog services.CatalogService
	log     logrus.FieldLogger
}

func NewCustomerHandler(carts services.CartService, orders services.OrderService, catalog services.CatalogService, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{
		carts:   carts,
		orders:  orders,
		catalog: catalog,
		log:     log.WithField("handler", "customer"),
	}
}

type cartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func cartBody(cart []models.CartItem) gin.H {
	total := decimal.Zero
	count := 0
	for _, item := range cart {
		total = total.Add(item.Subtotal())
		count += item.Quantity
	}
	return gin.H{"items": cart, "totalQuantity": count, "totalAmount": total}
}

func (h *CustomerHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.GetProductsByBrand(c.Query("brand"))})
}

func (h *CustomerHandler) GetCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, cartBody(h.carts.GetCart(c.Request.Context(), user.ID)))
}

// AddToCart adds one unit unless a quantity is given.
func (h *CustomerHandler) AddToCart(c *gin.Context) {
	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		badRequest(c)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.AddToCart(c.Request.Context(), user.ID, req.ProductID, quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cartBody(cart))
}

func (h *CustomerHandler) UpdateCartItem(c *gin.Context) {
	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		badRequest(c)
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.UpdateCartQuantity(c.Request.Context(), user.ID, c.Param("productId"), *req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cartBody(cart))
}

func (h *CustomerHandler) RemoveCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cart, err := h.carts.RemoveFromCart(c.Request.Context(), user.ID, c.Param("productId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cartBody(cart))
}

func (h *CustomerHandler) ClearCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.carts.ClearCart(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cartBody(nil))
}

func (h *CustomerHandler) Checkout(c *gin.Context) {
	order, err := h.carts.Checkout(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *CustomerHandler) GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders := h.orders.GetOrdersByCustomer(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, gin.H{"orders": h.orders.FilterByStatus(orders, statusFilter(c))})
}
