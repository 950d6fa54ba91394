package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildmart/internal/events"
	"buildmart/internal/kv"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	upserts  []string
	statuses map[string]string
	bookings []string
	err      error
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{statuses: make(map[string]string)}
}

func (f *fakeSheets) UpsertOrder(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, order.ID)
	return nil
}

func (f *fakeSheets) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if f.err != nil {
		return f.err
	}
	f.statuses[orderID] = status
	return nil
}

func (f *fakeSheets) AppendBooking(ctx context.Context, booking *models.ServiceBooking) error {
	if f.err != nil {
		return f.err
	}
	f.bookings = append(f.bookings, booking.ID)
	return nil
}

func newWorker(t *testing.T, sheets SheetsClient, redisClient *redis.Client) (*SyncWorker, *storage.Storage) {
	t.Helper()
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	w := NewSyncWorker(store, sheets, redisClient, "test:sync", RetryPolicy{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
	}, &logger)
	return w, store
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	// Clamped at MaxDelay.
	assert.Equal(t, 10*time.Second, policy.NextDelay(10))
	// Attempt below 1 behaves like the first.
	assert.Equal(t, time.Second, policy.NextDelay(0))

	zero := RetryPolicy{}
	assert.Equal(t, time.Second, zero.NextDelay(1))
}

func TestEnqueuePersistsTask(t *testing.T) {
	w, store := newWorker(t, newFakeSheets(), nil)
	ctx := context.Background()

	order := models.Order{ID: "order-1", Total: 100}
	require.NoError(t, w.EnqueueTask(ctx, Task{Type: TaskUpsertOrder, Order: &order}))

	tasks := store.SyncQueue().Get(ctx)
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskUpsertOrder, tasks[0].TaskType)
	assert.Equal(t, "order-1", tasks[0].OrderID)
	assert.Equal(t, "pending", tasks[0].Status)
}

func TestEnqueueValidation(t *testing.T) {
	w, _ := newWorker(t, newFakeSheets(), nil)
	ctx := context.Background()

	assert.Error(t, w.EnqueueTask(ctx, Task{Order: &models.Order{ID: "order-1"}}))
	assert.Error(t, w.EnqueueTask(ctx, Task{Type: TaskUpsertOrder}))
}

func TestProcessTaskCompletes(t *testing.T) {
	sheets := newFakeSheets()
	w, store := newWorker(t, sheets, nil)
	ctx := context.Background()

	order := models.Order{ID: "order-1"}
	require.NoError(t, w.EnqueueTask(ctx, Task{Type: TaskUpsertOrder, Order: &order}))

	task := store.SyncQueue().Get(ctx)[0]
	w.processTask(ctx, &task)

	assert.Equal(t, []string{"order-1"}, sheets.upserts)
	done := store.SyncQueue().Get(ctx)[0]
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.ProcessedAt)
}

func TestProcessTaskRetriesThenDeadLetters(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sheets := newFakeSheets()
	sheets.err = errors.New("sheets unavailable")
	w, store := newWorker(t, sheets, client)
	ctx := context.Background()

	require.NoError(t, w.EnqueueTask(ctx, Task{Type: TaskUpdateStatus, OrderID: "order-1", Status: "shipped"}))

	task := store.SyncQueue().Get(ctx)[0]

	// First failure schedules a retry with backoff metadata.
	w.processTask(ctx, &task)
	after := store.SyncQueue().Get(ctx)[0]
	assert.Equal(t, "retry", after.Status)
	assert.Equal(t, 1, after.RetryCount)
	assert.NotNil(t, after.NextRetryAt)
	assert.Contains(t, after.LastError, "sheets unavailable")

	// Exhaust the remaining attempts.
	after.NextRetryAt = nil
	w.processTask(ctx, &after)
	after = store.SyncQueue().Get(ctx)[0]
	after.NextRetryAt = nil
	w.processTask(ctx, &after)

	final := store.SyncQueue().Get(ctx)[0]
	assert.Equal(t, "failed", final.Status)

	// The dead task landed in the redis dead-letter list.
	items, err := client.LRange(ctx, "test:sync:deadletter", 0, -1).Result()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestProcessTaskHonorsBackoffWindow(t *testing.T) {
	sheets := newFakeSheets()
	w, store := newWorker(t, sheets, nil)
	ctx := context.Background()

	order := models.Order{ID: "order-1"}
	require.NoError(t, w.EnqueueTask(ctx, Task{Type: TaskUpsertOrder, Order: &order}))

	task := store.SyncQueue().Get(ctx)[0]
	future := time.Now().Add(time.Hour)
	task.Status = "retry"
	task.NextRetryAt = &future

	w.processTask(ctx, &task)
	assert.Empty(t, sheets.upserts)
}

func TestEnqueuePushesToRedisQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	w, _ := newWorker(t, newFakeSheets(), client)
	ctx := context.Background()

	order := models.Order{ID: "order-1"}
	require.NoError(t, w.EnqueueTask(ctx, Task{Type: TaskUpsertOrder, Order: &order}))

	length, err := client.LLen(ctx, "test:sync").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)

	task, ok := w.tryRedis(ctx)
	require.True(t, ok)
	assert.Equal(t, TaskUpsertOrder, task.TaskType)
}

func TestRegisterEventsEnqueuesOnOrderCreated(t *testing.T) {
	w, store := newWorker(t, newFakeSheets(), nil)
	ctx := context.Background()

	store.Orders().Add(ctx, models.Order{ID: "order-1", CustomerID: "customer-1", Total: 100})

	bus := events.NewEventBus()
	w.RegisterEvents(bus)

	require.NoError(t, bus.PublishJSON(events.EventOrderCreated, events.OrderEventPayload{OrderID: "order-1"}))
	require.NoError(t, bus.PublishJSON(events.EventOrderStatusChanged, events.OrderEventPayload{
		OrderID: "order-1", Status: models.OrderStatusShipped,
	}))

	tasks := store.SyncQueue().Get(ctx)
	require.Len(t, tasks, 2)
	assert.Equal(t, TaskUpsertOrder, tasks[0].TaskType)
	assert.Equal(t, TaskUpdateStatus, tasks[1].TaskType)
}
