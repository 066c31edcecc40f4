package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

const (
	defaultSKU  = "N/A"
	defaultUnit = "Cái"
)

// OrderLine asks for quantity units of one catalog product.
type OrderLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type SalesOrderInput struct {
	CustomerID string      `json:"customerId" validate:"required"`
	Lines      []OrderLine `json:"items" validate:"min=1,dive"`
}

type CartService interface {
	GetCart(ctx context.Context, customerID string) []models.CartItem
	AddToCart(ctx context.Context, customerID, productID string, quantity int) ([]models.CartItem, error)
	UpdateCartQuantity(ctx context.Context, customerID, productID string, quantity int) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, customerID, productID string) ([]models.CartItem, error)
	ClearCart(ctx context.Context, customerID string) error
	Checkout(ctx context.Context, user *models.User) (*models.Order, error)
	CreateSalesOrder(ctx context.Context, input SalesOrderInput) (*models.Order, error)
}

type cartService struct {
	slots   repository.SlotRepository
	catalog CatalogService
	orders  OrderService
	log     logrus.FieldLogger

	mu    sync.Mutex
	carts map[string]*entityStore[models.CartItem]
}

func NewCartService(slots repository.SlotRepository, catalog CatalogService, orders OrderService, log logrus.FieldLogger) CartService {
	return &cartService{
		slots:   slots,
		catalog: catalog,
		orders:  orders,
		log:     log.WithField("store", "cart"),
		carts:   make(map[string]*entityStore[models.CartItem]),
	}
}

// cart returns the store of one customer's cart slot.
func (s *cartService) cart(customerID string) *entityStore[models.CartItem] {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.carts[customerID]
	if !ok {
		slot := repository.NewJSONSlot[models.CartItem](s.slots, models.CartSlot(customerID), nil, s.log)
		store = newEntityStore(slot)
		s.carts[customerID] = store
	}
	return store
}

func (s *cartService) GetCart(ctx context.Context, customerID string) []models.CartItem {
	return s.cart(customerID).load(ctx)
}

// AddToCart merges into an existing line for the same product.
func (s *cartService) AddToCart(ctx context.Context, customerID, productID string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	store := s.cart(customerID)
	store.mu.Lock()
	defer store.mu.Unlock()

	cart := store.slot.Load(ctx)
	merged := false
	for i := range cart {
		if cart[i].Product.ID == productID {
			cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, models.CartItem{ID: product.ID, Product: *product, Quantity: quantity})
	}

	if err := store.slot.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateCartQuantity sets the quantity of a line; zero or less removes it.
func (s *cartService) UpdateCartQuantity(ctx context.Context, customerID, productID string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, customerID, productID)
	}

	cart, _, err := s.cart(customerID).update(ctx, productID, func(item *models.CartItem) {
		item.Quantity = quantity
	})
	return cart, err
}

func (s *cartService) RemoveFromCart(ctx context.Context, customerID, productID string) ([]models.CartItem, error) {
	store := s.cart(customerID)
	store.mu.Lock()
	defer store.mu.Unlock()

	cart := store.slot.Load(ctx)
	kept := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}

	if err := store.slot.Save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *cartService) ClearCart(ctx context.Context, customerID string) error {
	store := s.cart(customerID)
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.slot.Clear(ctx)
}

// Checkout turns the user's cart into a CUSTOMER order and empties the cart.
// The cart stays locked until it is cleared, so one cart yields one order.
func (s *cartService) Checkout(ctx context.Context, user *models.User) (*models.Order, error) {
	store := s.cart(user.ID)
	store.mu.Lock()
	defer store.mu.Unlock()

	cart := store.slot.Load(ctx)
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, orderItem(line.Product, line.Quantity))
	}

	orders, err := s.orders.AddOrder(ctx, models.NewOrderInput{
		CustomerID:   user.ID,
		CustomerName: user.Name,
		Source:       models.OrderSourceCustomer,
		Items:        items,
		TotalAmount:  totalOf(items),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := store.slot.Clear(ctx); err != nil {
		s.log.WithError(err).WithField("customer_id", user.ID).Warn("Order placed but cart not cleared")
	}

	order := orders[0]
	return &order, nil
}

// CreateSalesOrder places an order on behalf of a directory customer.
func (s *cartService) CreateSalesOrder(ctx context.Context, input SalesOrderInput) (*models.Order, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	customer, err := s.catalog.GetCustomer(input.CustomerID)
	if err != nil {
		return nil, err
	}

	// repeated products collapse into one line, first occurrence keeps its place
	quantities := make(map[string]int, len(input.Lines))
	var productIDs []string
	for _, line := range input.Lines {
		if _, seen := quantities[line.ProductID]; !seen {
			productIDs = append(productIDs, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	items := make([]models.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		product, err := s.catalog.GetProduct(productID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, productID)
		}
		items = append(items, orderItem(*product, quantities[productID]))
	}

	orders, err := s.orders.AddOrder(ctx, models.NewOrderInput{
		CustomerID:   customer.ID,
		CustomerName: customer.StoreName,
		Source:       models.OrderSourceSales,
		Items:        items,
		TotalAmount:  totalOf(items),
	})
	if err != nil {
		return nil, err
	}

	created := orders[0]
	return &created, nil
}

func orderItem(product models.Product, quantity int) models.OrderItem {
	sku := product.SKU
	if sku == "" {
		sku = defaultSKU
	}
	unit := product.Unit
	if unit == "" {
		unit = defaultUnit
	}
	return models.OrderItem{
		SKU:       sku,
		Name:      product.Name,
		Brand:     product.Brand,
		UnitPrice: product.WholesalePrice,
		Quantity:  quantity,
		Unit:      unit,
		Subtotal:  product.WholesalePrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func totalOf(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}
