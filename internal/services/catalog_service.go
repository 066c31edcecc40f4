package services

import (
	"errors"

	"lyhu_portal/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

// AllBrands is the catalog filter label that disables brand filtering.
const AllBrands = "Tất cả"

// CatalogService exposes the read-only product catalog and outlet directory.
type CatalogService interface {
	GetProducts() []models.Product
	GetProductsByBrand(brand string) []models.Product
	GetProduct(id string) (*models.Product, error)
	GetCustomers() []models.Customer
	GetCustomer(id string) (*models.Customer, error)
}

type catalogService struct {
	products  []models.Product
	customers []models.Customer
}

func NewCatalogService() CatalogService {
	return &catalogService{
		products:  models.DefaultProducts(),
		customers: models.DefaultCustomers(),
	}
}

func (s *catalogService) GetProducts() []models.Product {
	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products
}

// GetProductsByBrand returns the whole catalog for an empty brand or AllBrands.
func (s *catalogService) GetProductsByBrand(brand string) []models.Product {
	if brand == "" || brand == AllBrands {
		return s.GetProducts()
	}
	var matched []models.Product
	for _, p := range s.products {
		if p.Brand == brand {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *catalogService) GetProduct(id string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *catalogService) GetCustomers() []models.Customer {
	customers := make([]models.Customer, len(s.customers))
	copy(customers, s.customers)
	return customers
}

func (s *catalogService) GetCustomer(id string) (*models.Customer, error) {
	for i := range s.customers {
		if s.customers[i].ID == id {
			c := s.customers[i]
			return &c, nil
		}
	}
	return nil, ErrCustomerNotFound
}
