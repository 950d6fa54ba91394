package storage

import (
	"context"
	"time"

	"buildmart/internal/kv"
	"buildmart/internal/models"
)

// SettingsStore holds the single preferences record.
type SettingsStore struct {
	s *Storage
}

func (s *Storage) Settings() SettingsStore { return SettingsStore{s: s} }

func (c SettingsStore) Get(ctx context.Context) models.Settings {
	return kv.GetJSON(ctx, c.s.store, c.s.log, KeySettings, models.DefaultSettings())
}

// Update merges the mutation into the current record and persists it.
func (c SettingsStore) Update(ctx context.Context, apply func(*models.Settings)) bool {
	current := c.Get(ctx)
	apply(&current)
	return kv.SetJSON(ctx, c.s.store, c.s.log, KeySettings, current)
}

// AnalyticsStore holds the single analytics record with its event log.
type AnalyticsStore struct {
	s *Storage
}

func (s *Storage) Analytics() AnalyticsStore { return AnalyticsStore{s: s} }

func (c AnalyticsStore) Get(ctx context.Context) models.Analytics {
	return kv.GetJSON(ctx, c.s.store, c.s.log, KeyAnalytics, models.Analytics{})
}

// TrackEvent appends one event to the log and rewrites the record.
func (c AnalyticsStore) TrackEvent(ctx context.Context, event string, data map[string]any) bool {
	analytics := c.Get(ctx)
	analytics.Events = append(analytics.Events, models.AnalyticsEvent{
		Event:     event,
		Data:      data,
		Timestamp: time.Now(),
	})
	return kv.SetJSON(ctx, c.s.store, c.s.log, KeyAnalytics, analytics)
}

// RevenueStats is the read-side revenue rollup over the orders collection.
type RevenueStats struct {
	TotalRevenue   float64            `json:"totalRevenue"`
	MonthlyRevenue map[string]float64 `json:"monthlyRevenue"`
}

func (c AnalyticsStore) GetRevenueStats(ctx context.Context) RevenueStats {
	orders := c.s.Orders()
	return RevenueStats{
		TotalRevenue:   orders.TotalRevenue(ctx),
		MonthlyRevenue: orders.MonthlyRevenue(ctx),
	}
}
