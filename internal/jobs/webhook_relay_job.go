package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// RelayConfig bounds the delivery loop.
type RelayConfig struct {
	// Schedule is a six-field cron expression with seconds.
	Schedule string

	// BatchSize caps how many due records one tick processes.
	BatchSize int

	// MaxAttempts is the number of delivery attempts before a record moves
	// to the dead-letter state.
	MaxAttempts int

	// BackoffBase is the first retry delay; each subsequent retry doubles it.
	BackoffBase time.Duration

	// TickTimeout bounds one relay tick end to end: the outbox query, the
	// subscription lookups and the delivery attempts. Zero falls back to
	// defaultTickTimeout.
	TickTimeout time.Duration
}

const defaultTickTimeout = time.Minute

// WebhookRelayJob drains the outbox on a schedule. For each due record it
// resolves the owning account's subscription at delivery time: no endpoint
// or an event type outside the subscription skips the record, a 2xx response
// finalizes it, anything else schedules a retry with exponential backoff
// until the attempt budget is spent.
type WebhookRelayJob struct {
	outboxRepo ports.OutboxRepository
	configs    ports.WebhookConfigProvider
	client     ports.WebhookClient
	cfg        RelayConfig
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewWebhookRelayJob creates the relay job.
func NewWebhookRelayJob(
	outboxRepo ports.OutboxRepository,
	configs ports.WebhookConfigProvider,
	client ports.WebhookClient,
	cfg RelayConfig,
	logger *slog.Logger,
) *WebhookRelayJob {
	return &WebhookRelayJob{
		outboxRepo: outboxRepo,
		configs:    configs,
		client:     client,
		cfg:        cfg,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "webhook_relay_job"),
	}
}

// Start schedules the relay loop.
func (j *WebhookRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "webhook relay tick failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "webhook relay job started", "schedule", j.cfg.Schedule)
	return nil
}

// Stop stops the relay loop.
func (j *WebhookRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "webhook relay job stopped")
}

// RunOnce processes one batch of due records under the tick timeout.
// A failure to deliver one record never blocks the rest of the batch.
func (j *WebhookRelayJob) RunOnce(ctx context.Context) error {
	timeout := j.cfg.TickTimeout
	if timeout <= 0 {
		timeout = defaultTickTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	now := time.Now()
	due, err := j.outboxRepo.ListDue(ctx, now, j.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, record := range due {
		j.relay(ctx, record, now)
	}
	return nil
}

func (j *WebhookRelayJob) relay(ctx context.Context, record *outbox.Record, now time.Time) {
	config, err := j.configs.GetWebhookConfig(ctx, record.AccountID)
	if err != nil {
		j.fail(ctx, record, now, err)
		return
	}

	// The subscription is consulted at delivery time, not detection time:
	// an account that unsubscribes between the two never hears about the
	// event, and one that subscribes late still receives pending ones.
	if !config.Configured() || !config.Allows(record.EventType) {
		if err = j.outboxRepo.MarkSkipped(ctx, record.ID); err != nil {
			j.logger.ErrorContext(ctx, "failed to mark record skipped", "record", record.ID, "error", err)
			return
		}
		metrics.WebhookDeliveries.WithLabelValues("skipped").Inc()
		return
	}

	if err = j.client.Send(ctx, config.URL, record.Payload); err != nil {
		j.fail(ctx, record, now, err)
		return
	}

	if err = j.outboxRepo.MarkDelivered(ctx, record.ID); err != nil {
		j.logger.ErrorContext(ctx, "failed to mark record delivered", "record", record.ID, "error", err)
		return
	}
	metrics.WebhookDeliveries.WithLabelValues("delivered").Inc()
	j.logger.InfoContext(ctx, "webhook delivered",
		"record", record.ID,
		"event_type", record.EventType,
		"attempts", record.Attempts+1,
	)
}

func (j *WebhookRelayJob) fail(ctx context.Context, record *outbox.Record, now time.Time, cause error) {
	attempts := record.Attempts + 1
	dead := attempts >= j.cfg.MaxAttempts
	nextAttemptAt := now.Add(j.backoff(attempts))

	if err := j.outboxRepo.MarkFailed(ctx, record.ID, cause.Error(), nextAttemptAt, dead); err != nil {
		j.logger.ErrorContext(ctx, "failed to mark record failed", "record", record.ID, "error", err)
		return
	}

	if dead {
		metrics.WebhookDeliveries.WithLabelValues("dead_letter").Inc()
		j.logger.ErrorContext(ctx, "webhook dead-lettered",
			"record", record.ID,
			"event_type", record.EventType,
			"attempts", attempts,
			"error", cause,
		)
		return
	}

	metrics.WebhookDeliveries.WithLabelValues("failed").Inc()
	j.logger.WarnContext(ctx, "webhook delivery failed, will retry",
		"record", record.ID,
		"event_type", record.EventType,
		"attempts", attempts,
		"next_attempt_at", nextAttemptAt,
		"error", cause,
	)
}

// backoff doubles per attempt: base, 2x, 4x and so on.
func (j *WebhookRelayJob) backoff(attempts int) time.Duration {
	d := j.cfg.BackoffBase
	for i := 1; i < attempts; i++ {
		d *= 2
	}
	return d
}
