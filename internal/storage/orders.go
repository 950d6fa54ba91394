package storage

import (
	"context"
	"sort"

	"buildmart/internal/models"
)

// Orders is the accessor for the persisted order list.
type Orders struct {
	s *Storage
}

func (s *Storage) Orders() Orders { return Orders{s: s} }

func (c Orders) Get(ctx context.Context) []models.Order {
	return getList[models.Order](ctx, c.s, KeyOrders)
}

func (c Orders) Set(ctx context.Context, orders []models.Order) bool {
	return setList(ctx, c.s, KeyOrders, orders)
}

func (c Orders) Add(ctx context.Context, order models.Order) bool {
	return appendRecord(ctx, c.s, KeyOrders, order)
}

// Update applies the mutation to the first order matching id and persists
// the whole list. Returns false when no order matches.
func (c Orders) Update(ctx context.Context, id string, apply func(*models.Order)) bool {
	return updateByID(ctx, c.s, KeyOrders, id, orderID, apply)
}

func (c Orders) GetByID(ctx context.Context, id string) (models.Order, bool) {
	return findByID(ctx, c.s, KeyOrders, id, orderID)
}

func (c Orders) GetByCustomer(ctx context.Context, customerID string) []models.Order {
	return filterList(ctx, c.s, KeyOrders, func(o models.Order) bool {
		return o.CustomerID == customerID
	})
}

func (c Orders) GetByStatus(ctx context.Context, status string) []models.Order {
	return filterList(ctx, c.s, KeyOrders, func(o models.Order) bool {
		return o.Status == status
	})
}

// GetRecent sorts the full list by creation time descending and truncates.
func (c Orders) GetRecent(ctx context.Context, limit int) []models.Order {
	orders := c.Get(ctx)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}

// TotalRevenue sums delivered orders at their snapshot totals.
func (c Orders) TotalRevenue(ctx context.Context) float64 {
	var total float64
	for _, order := range c.Get(ctx) {
		if order.CountsAsRevenue() {
			total += order.Total
		}
	}
	return total
}

// MonthlyRevenue buckets delivered order totals by YYYY-MM.
func (c Orders) MonthlyRevenue(ctx context.Context) map[string]float64 {
	monthly := make(map[string]float64)
	for _, order := range c.Get(ctx) {
		if order.CountsAsRevenue() {
			monthly[order.CreatedAt.Format("2006-01")] += order.Total
		}
	}
	return monthly
}

func orderID(o models.Order) string { return o.ID }
