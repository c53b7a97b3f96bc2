package usage

import (
	"context"
	"log"
	"time"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/events"
	pkgNats "sales-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

// Record is one provider call worth of accounting.
type Record struct {
	Provider       string
	Model          string
	Operation      string
	InputTokens    int
	OutputTokens   int
	ResponseTimeMs int64
	Success        bool
	Metadata       map[string]interface{}
}

// Tracker persists usage rows and publishes usage events. Everything is
// best effort: a broken tracker must never fail a chat request, so
// failures are logged and dropped.
type Tracker struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *pkgNats.Publisher // nil when NATS is not configured
	logger     *log.Logger
}

func NewTracker(uowFactory unitofwork.RepositoryFactory, publisher *pkgNats.Publisher, logger *log.Logger) *Tracker {
	return &Tracker{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// LogUsage records the call off the request goroutine. The caller's
// context is not reused so a finished request can't cancel the write.
func (t *Tracker) LogUsage(userId string, record Record) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		t.persist(ctx, userId, record)
		t.publish(ctx, userId, record)
	}()
}

func (t *Tracker) persist(ctx context.Context, userId string, record Record) {
	uow := t.uowFactory.NewUnitOfWork(ctx)
	err := uow.UsageLogRepository().Create(ctx, &entity.UsageLog{
		Id:             uuid.New(),
		UserId:         userId,
		Provider:       record.Provider,
		Model:          record.Model,
		Operation:      record.Operation,
		InputTokens:    record.InputTokens,
		OutputTokens:   record.OutputTokens,
		ResponseTimeMs: record.ResponseTimeMs,
		Success:        record.Success,
		Metadata:       record.Metadata,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		t.logger.Printf("[WARN] Usage log write failed: %v", err)
	}
}

func (t *Tracker) publish(ctx context.Context, userId string, record Record) {
	if t.publisher == nil {
		return
	}
	event := events.NewUsageRecordedEvent(
		userId, record.Provider, record.Model, record.Operation,
		record.InputTokens, record.OutputTokens, record.ResponseTimeMs, record.Success,
	)
	if err := t.publisher.Publish(ctx, event); err != nil {
		t.logger.Printf("[WARN] Usage event publish failed: %v", err)
	}
}
