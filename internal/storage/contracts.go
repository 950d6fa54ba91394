package storage

import (
	"context"

	"buildmart/internal/models"
)

// Contracts is the accessor for customer-posted projects and their bids.
type Contracts struct {
	s *Storage
}

func (s *Storage) Contracts() Contracts { return Contracts{s: s} }

func (c Contracts) Get(ctx context.Context) []models.Contract {
	return getList[models.Contract](ctx, c.s, KeyContracts)
}

func (c Contracts) Add(ctx context.Context, contract models.Contract) bool {
	return appendRecord(ctx, c.s, KeyContracts, contract)
}

func (c Contracts) Update(ctx context.Context, id string, apply func(*models.Contract)) bool {
	return updateByID(ctx, c.s, KeyContracts, id, contractID, apply)
}

func (c Contracts) GetByID(ctx context.Context, id string) (models.Contract, bool) {
	return findByID(ctx, c.s, KeyContracts, id, contractID)
}

func (c Contracts) GetByStatus(ctx context.Context, status string) []models.Contract {
	return filterList(ctx, c.s, KeyContracts, func(ct models.Contract) bool {
		return ct.Status == status
	})
}

func (c Contracts) GetByCustomer(ctx context.Context, customerID string) []models.Contract {
	return filterList(ctx, c.s, KeyContracts, func(ct models.Contract) bool {
		return ct.CustomerID == customerID
	})
}

// AddBid appends a bid to the contract. Missing contract → false.
func (c Contracts) AddBid(ctx context.Context, contractID string, bid models.Bid) bool {
	return c.Update(ctx, contractID, func(ct *models.Contract) {
		ct.Bids = append(ct.Bids, bid)
	})
}

func contractID(ct models.Contract) string { return ct.ID }
