package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"buildmart/internal/events"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TaskUpsertOrder   = "upsert_order"
	TaskUpdateStatus  = "update_status"
	TaskAppendBooking = "append_booking"
)

const (
	taskStatusPending   = "pending"
	taskStatusRetry     = "retry"
	taskStatusCompleted = "completed"
	taskStatusFailed    = "failed"
)

// SheetsClient is the slice of the Sheets service the worker drives.
type SheetsClient interface {
	UpsertOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	AppendBooking(ctx context.Context, booking *models.ServiceBooking) error
}

// Task describes a unit of back-office sync work.
type Task struct {
	Type    string
	OrderID string
	Order   *models.Order
	Booking *models.ServiceBooking
	Status  string
}

// syncPayload is persisted in SyncTask.Payload as JSON.
type syncPayload struct {
	Order   *models.Order          `json:"order,omitempty"`
	Booking *models.ServiceBooking `json:"booking,omitempty"`
	Status  string                 `json:"status,omitempty"`
}

// SyncWorker consumes sync-queue tasks and applies them to Google Sheets.
// Tasks are durable in the sync-queue collection; redis carries the hot path
// and an in-memory channel covers redis outages. Anything neither path picks
// up is found by the pending-task poll.
type SyncWorker struct {
	store        *storage.Storage
	sheets       SheetsClient
	redis        *redis.Client
	retryPolicy  RetryPolicy
	queue        chan models.SyncTask
	queueKey     string
	deadLetter   string
	pollInterval time.Duration
	batchSize    int
	log          *zerolog.Logger
}

// NewSyncWorker builds a worker with sane defaults. redisClient may be nil.
func NewSyncWorker(store *storage.Storage, sheets SheetsClient, redisClient *redis.Client, queueKey string, retry RetryPolicy, log *zerolog.Logger) *SyncWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if queueKey == "" {
		queueKey = "buildmart:sync"
	}

	return &SyncWorker{
		store:        store,
		sheets:       sheets,
		redis:        redisClient,
		retryPolicy:  retry,
		queue:        make(chan models.SyncTask, 128),
		queueKey:     queueKey,
		deadLetter:   queueKey + ":deadletter",
		pollInterval: 2 * time.Second,
		batchSize:    20,
		log:          log,
	}
}

// RegisterEvents enqueues sync tasks for order events as they happen.
func (w *SyncWorker) RegisterEvents(bus *events.EventBus) {
	bus.Subscribe(events.EventOrderCreated, func(event *events.Event) error {
		var payload events.OrderEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		ctx := context.Background()
		order, ok := w.store.Orders().GetByID(ctx, payload.OrderID)
		if !ok {
			return fmt.Errorf("order %s not found", payload.OrderID)
		}
		return w.EnqueueTask(ctx, Task{Type: TaskUpsertOrder, Order: &order})
	})
	bus.Subscribe(events.EventOrderStatusChanged, func(event *events.Event) error {
		var payload events.OrderEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		return w.EnqueueTask(context.Background(), Task{
			Type: TaskUpdateStatus, OrderID: payload.OrderID, Status: payload.Status,
		})
	})
	bus.Subscribe(events.EventBookingCreated, func(event *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		ctx := context.Background()
		booking, ok := w.store.Bookings().GetByID(ctx, payload.BookingID)
		if !ok {
			return fmt.Errorf("booking %s not found", payload.BookingID)
		}
		return w.EnqueueTask(ctx, Task{Type: TaskAppendBooking, Booking: &booking})
	})
}

// EnqueueTask persists the task and schedules it via redis or the in-memory
// queue.
func (w *SyncWorker) EnqueueTask(ctx context.Context, task Task) error {
	if task.Type == "" {
		return errors.New("task type is required")
	}

	orderID := task.OrderID
	if orderID == "" && task.Order != nil {
		orderID = task.Order.ID
	}
	if orderID == "" && task.Booking == nil {
		return errors.New("task target is required")
	}

	payloadBytes, err := json.Marshal(syncPayload{
		Order:   task.Order,
		Booking: task.Booking,
		Status:  task.Status,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	syncTask := models.SyncTask{
		ID:        "task-" + uuid.NewString(),
		TaskType:  task.Type,
		OrderID:   orderID,
		Payload:   string(payloadBytes),
		Status:    taskStatusPending,
		CreatedAt: time.Now(),
	}

	if !w.store.SyncQueue().Add(ctx, syncTask) {
		return errors.New("persist sync task failed")
	}

	if w.redis != nil {
		if err := w.pushRedis(ctx, syncTask); err != nil {
			w.log.Warn().Err(err).Msg("redis push failed, fallback to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- syncTask:
	default:
		w.log.Warn().Str("task_id", syncTask.ID).Msg("in-memory queue full, task left to polling")
	}

	return nil
}

// Start runs the main loop; it returns when ctx is done.
func (w *SyncWorker) Start(ctx context.Context) {
	w.log.Info().Msg("sync worker started")
	defer w.log.Info().Msg("sync worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks := w.store.SyncQueue().GetPending(ctx, w.batchSize)
		if len(tasks) == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.pollInterval):
			}
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *SyncWorker) tryLocalQueue() (models.SyncTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.SyncTask{}, false
	}
}

func (w *SyncWorker) tryRedis(ctx context.Context) (models.SyncTask, bool) {
	if w.redis == nil {
		return models.SyncTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.queueKey).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
			return models.SyncTask{}, false
		}
		w.log.Error().Err(err).Msg("redis BRPOP error")
		return models.SyncTask{}, false
	}
	if len(res) != 2 {
		return models.SyncTask{}, false
	}
	var task models.SyncTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.log.Error().Err(err).Msg("decode redis task")
		return models.SyncTask{}, false
	}
	return task, true
}

func (w *SyncWorker) processTask(ctx context.Context, task *models.SyncTask) {
	// Skip retry tasks whose backoff has not elapsed yet.
	if task.Status == taskStatusRetry && task.NextRetryAt != nil && task.NextRetryAt.After(time.Now()) {
		return
	}

	var payload syncPayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	if err := w.handleTask(ctx, task, payload); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	now := time.Now()
	w.store.SyncQueue().Update(ctx, task.ID, func(t *models.SyncTask) {
		t.Status = taskStatusCompleted
		t.LastError = ""
		t.ProcessedAt = &now
	})
}

func (w *SyncWorker) handleTask(ctx context.Context, task *models.SyncTask, payload syncPayload) error {
	switch task.TaskType {
	case TaskUpsertOrder:
		if payload.Order == nil {
			return errors.New("order payload missing")
		}
		return w.sheets.UpsertOrder(ctx, payload.Order)
	case TaskUpdateStatus:
		if task.OrderID == "" || payload.Status == "" {
			return errors.New("order id or status missing")
		}
		return w.sheets.UpdateOrderStatus(ctx, task.OrderID, payload.Status)
	case TaskAppendBooking:
		if payload.Booking == nil {
			return errors.New("booking payload missing")
		}
		return w.sheets.AppendBooking(ctx, payload.Booking)
	default:
		return fmt.Errorf("unknown task type: %s", task.TaskType)
	}
}

func (w *SyncWorker) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	attempt := task.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		w.store.SyncQueue().Update(ctx, task.ID, func(t *models.SyncTask) {
			t.Status = taskStatusFailed
			t.LastError = cause.Error()
			t.RetryCount = attempt
		})
		task.RetryCount = attempt
		w.pushDeadLetter(ctx, task)
		return
	}

	nextTime := time.Now().Add(w.retryPolicy.NextDelay(attempt))
	w.store.SyncQueue().Update(ctx, task.ID, func(t *models.SyncTask) {
		t.Status = taskStatusRetry
		t.LastError = cause.Error()
		t.RetryCount = attempt
		t.NextRetryAt = &nextTime
	})
}

func (w *SyncWorker) failTask(ctx context.Context, task *models.SyncTask, err error) {
	w.store.SyncQueue().Update(ctx, task.ID, func(t *models.SyncTask) {
		t.Status = taskStatusFailed
		t.LastError = err.Error()
	})
	w.pushDeadLetter(ctx, task)
}

func (w *SyncWorker) pushRedis(ctx context.Context, task models.SyncTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.queueKey, data).Err()
}

func (w *SyncWorker) pushDeadLetter(ctx context.Context, task *models.SyncTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.log.Error().Err(err).Str("task_id", task.ID).Msg("encode deadletter")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetter, data).Err(); err != nil {
		w.log.Error().Err(err).Str("task_id", task.ID).Msg("deadletter push")
	}
}
