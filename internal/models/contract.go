package models

import "time"

// Contract is a customer-posted project open for provider bids.
type Contract struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	Budget      BudgetRange `json:"budget"`
	Location    Address     `json:"location"`
	Deadline    time.Time   `json:"deadline"`
	Status      string      `json:"status"`
	Bids        []Bid       `json:"bids,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Bid struct {
	ID            string    `json:"id"`
	ContractID    string    `json:"contractId"`
	ProviderID    string    `json:"providerId"`
	Amount        float64   `json:"amount"`
	EstimatedDays int       `json:"estimatedDays"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"` // pending, accepted, rejected
	CreatedAt     time.Time `json:"createdAt"`
}
