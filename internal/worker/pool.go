package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Processor handles one job type. A returned error triggers a retry; after
// maxAttempts the job lands in the dead letter queue.
type Processor interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool dequeues
// them via BRPOP.
type Dispatcher struct {
	rdb    *redis.Client
	config repository.ConfigRepository
}

func NewDispatcher(rdb *redis.Client, config repository.ConfigRepository) *Dispatcher {
	return &Dispatcher{rdb: rdb, config: config}
}

// EnqueueLowStockAlert queues the post-closure restock email. A blank alert
// address in the business config disables the alert silently.
func (d *Dispatcher) EnqueueLowStockAlert(ctx context.Context, date string, products []model.LowStockProduct) error {
	cfg, err := d.config.Get(ctx)
	if err != nil {
		return err
	}
	if cfg.AlertEmail == "" {
		log.Debug().Str("date", date).Msg("no alert email configured, skipping low stock alert")
		return nil
	}
	return d.enqueue(ctx, QueueEmail, "low_stock_alert", LowStockAlertPayload{
		ToEmail:  cfg.AlertEmail,
		Business: cfg.BusinessName,
		Date:     date,
		Products: products,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes job queues with a fixed number of goroutines.
type Pool struct {
	rdb        *redis.Client
	processors map[string]Processor
}

func NewPool(rdb *redis.Client, processors map[string]Processor) *Pool {
	return &Pool{rdb: rdb, processors: processors}
}

// Start launches numWorkers goroutines consuming the email queue. Each
// goroutine blocks on BRPOP — zero CPU when idle.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	queues := []string{QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	proc, ok := p.processors[job.Type]
	if !ok {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, "no processor registered", job.Attempts)
		return
	}

	if err := proc.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		log.Warn().
			Str("type", job.Type).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("job failed, requeueing")
		if encoded, merr := json.Marshal(job); merr == nil {
			if perr := p.rdb.LPush(ctx, queue, encoded).Err(); perr != nil {
				log.Error().Err(perr).Str("type", job.Type).Msg("failed to requeue job")
			}
		}
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
