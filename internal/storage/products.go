package storage

import (
	"context"

	"buildmart/internal/models"
)

// Products is the accessor for the seeded product catalog.
type Products struct {
	s *Storage
}

func (s *Storage) Products() Products { return Products{s: s} }

func (c Products) Get(ctx context.Context) []models.Product {
	return getList[models.Product](ctx, c.s, KeyProducts)
}

func (c Products) Set(ctx context.Context, products []models.Product) bool {
	return setList(ctx, c.s, KeyProducts, products)
}

func (c Products) Add(ctx context.Context, product models.Product) bool {
	return appendRecord(ctx, c.s, KeyProducts, product)
}

func (c Products) Update(ctx context.Context, id string, apply func(*models.Product)) bool {
	return updateByID(ctx, c.s, KeyProducts, id, productID, apply)
}

func (c Products) GetByID(ctx context.Context, id string) (models.Product, bool) {
	return findByID(ctx, c.s, KeyProducts, id, productID)
}

func (c Products) GetByCategory(ctx context.Context, categoryID string) []models.Product {
	return filterList(ctx, c.s, KeyProducts, func(p models.Product) bool {
		return p.Category.ID == categoryID
	})
}

// GetLowStock returns products at or below the threshold.
func (c Products) GetLowStock(ctx context.Context, threshold int) []models.Product {
	return filterList(ctx, c.s, KeyProducts, func(p models.Product) bool {
		return p.Stock <= threshold
	})
}

func productID(p models.Product) string { return p.ID }

// Services is the accessor for the provider service listings.
type Services struct {
	s *Storage
}

func (s *Storage) Services() Services { return Services{s: s} }

func (c Services) Get(ctx context.Context) []models.Service {
	return getList[models.Service](ctx, c.s, KeyServices)
}

func (c Services) Set(ctx context.Context, services []models.Service) bool {
	return setList(ctx, c.s, KeyServices, services)
}

func (c Services) Add(ctx context.Context, service models.Service) bool {
	return appendRecord(ctx, c.s, KeyServices, service)
}

func (c Services) Update(ctx context.Context, id string, apply func(*models.Service)) bool {
	return updateByID(ctx, c.s, KeyServices, id, serviceID, apply)
}

func (c Services) GetByID(ctx context.Context, id string) (models.Service, bool) {
	return findByID(ctx, c.s, KeyServices, id, serviceID)
}

func (c Services) GetByCategory(ctx context.Context, category string) []models.Service {
	return filterList(ctx, c.s, KeyServices, func(s models.Service) bool {
		return s.Category == category
	})
}

func (c Services) GetByProvider(ctx context.Context, providerID string) []models.Service {
	return filterList(ctx, c.s, KeyServices, func(s models.Service) bool {
		return s.ProviderID == providerID
	})
}

func serviceID(s models.Service) string { return s.ID }
