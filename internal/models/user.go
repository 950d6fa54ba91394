package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account kinds the marketplace knows about.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleCustomer        Role = "customer"
	RoleServiceProvider Role = "service_provider"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleCustomer, RoleServiceProvider:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role: %q", raw)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Name      string    `json:"name" yaml:"name"`
	Role      Role      `json:"role" yaml:"role"`
	Avatar    string    `json:"avatar,omitempty" yaml:"avatar"`
	Phone     string    `json:"phone,omitempty" yaml:"phone"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	// Provider-only fields.
	Category        string   `json:"category,omitempty" yaml:"category"`
	YearsExperience int      `json:"yearsExperience,omitempty" yaml:"years_experience"`
	Languages       []string `json:"languages,omitempty" yaml:"languages"`
	Pricing         *Pricing `json:"pricing,omitempty" yaml:"pricing"`
	Rating          float64  `json:"rating,omitempty" yaml:"rating"`
	IsAvailable     bool     `json:"isAvailable,omitempty" yaml:"is_available"`
	UrgentAvailable bool     `json:"urgentAvailable,omitempty" yaml:"urgent_available"`
	Earnings        float64  `json:"earnings,omitempty" yaml:"earnings"`
	CompletedJobs   int      `json:"completedJobs,omitempty" yaml:"completed_jobs"`

	// Customer-only fields.
	Addresses []Address `json:"addresses,omitempty" yaml:"addresses"`

	// Admin-only fields.
	Permissions []string `json:"permissions,omitempty" yaml:"permissions"`
}

type Pricing struct {
	Hourly  float64 `json:"hourly" yaml:"hourly"`
	Daily   float64 `json:"daily" yaml:"daily"`
	Project float64 `json:"project" yaml:"project"`
}

type Address struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	Type      string `json:"type,omitempty" yaml:"type"` // home, office, other
	Address   string `json:"address" yaml:"address"`
	City      string `json:"city" yaml:"city"`
	State     string `json:"state" yaml:"state"`
	ZipCode   string `json:"zipCode" yaml:"zip_code"`
	IsDefault bool   `json:"isDefault,omitempty" yaml:"is_default"`
}

// Complete reports whether the address carries everything checkout needs.
func (a Address) Complete() bool {
	return a.Address != "" && a.City != "" && a.State != "" && a.ZipCode != ""
}
