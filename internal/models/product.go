package models

import "time"

type Product struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Brand          string            `json:"brand" yaml:"brand"`
	Category       ProductCategory   `json:"category" yaml:"category"`
	Image          string            `json:"image,omitempty" yaml:"image"`
	Price          float64           `json:"price" yaml:"price"`
	QualityGrade   string            `json:"qualityGrade" yaml:"quality_grade"` // A, B, C
	Rating         float64           `json:"rating" yaml:"rating"`
	Reviews        []Review          `json:"reviews,omitempty" yaml:"reviews"`
	Stock          int               `json:"stock" yaml:"stock"`
	Description    string            `json:"description,omitempty" yaml:"description"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications"`
}

type ProductCategory struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Service is a bookable offering published by a provider.
type Service struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	ProviderID   string   `json:"providerId" yaml:"provider_id"`
	ProviderName string   `json:"providerName,omitempty" yaml:"provider_name"`
	Description  string   `json:"description,omitempty" yaml:"description"`
	Pricing      *Pricing `json:"pricing,omitempty" yaml:"pricing"`
	Rating       float64  `json:"rating,omitempty" yaml:"rating"`
	IsAvailable  bool     `json:"isAvailable" yaml:"is_available"`
}

type Review struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"user_id"`
	UserName  string    `json:"userName" yaml:"user_name"`
	Rating    float64   `json:"rating" yaml:"rating"`
	Comment   string    `json:"comment,omitempty" yaml:"comment"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	Helpful   int       `json:"helpful,omitempty" yaml:"helpful"`
}
