package storage

import (
	"context"

	"buildmart/internal/models"
)

// SyncQueue persists back-office sync tasks so they survive restarts while
// the worker drains them.
type SyncQueue struct {
	s *Storage
}

func (s *Storage) SyncQueue() SyncQueue { return SyncQueue{s: s} }

func (c SyncQueue) Get(ctx context.Context) []models.SyncTask {
	return getList[models.SyncTask](ctx, c.s, KeySyncQueue)
}

func (c SyncQueue) Add(ctx context.Context, task models.SyncTask) bool {
	return appendRecord(ctx, c.s, KeySyncQueue, task)
}

func (c SyncQueue) Update(ctx context.Context, id string, apply func(*models.SyncTask)) bool {
	return updateByID(ctx, c.s, KeySyncQueue, id, syncTaskID, apply)
}

// GetPending returns up to limit tasks still waiting for the worker.
func (c SyncQueue) GetPending(ctx context.Context, limit int) []models.SyncTask {
	pending := filterList(ctx, c.s, KeySyncQueue, func(t models.SyncTask) bool {
		return t.Status == "pending" || t.Status == "retry"
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending
}

func syncTaskID(t models.SyncTask) string { return t.ID }
