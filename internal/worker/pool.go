package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReporteCorte = "jobs:reporte_corte"

	JobReporteCorte = "reporte_corte"

	// MaxIntentos is how many times a job runs before it goes to the DLQ.
	MaxIntentos = 3

	// esperaTrasError is the pause after BRPOP fails (Redis down, network).
	esperaTrasError = 2 * time.Second
)

// ErrPermanente marks a job failure that retrying cannot fix.
var ErrPermanente = errors.New("fallo permanente")

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes the payload of one job type.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReporteCorte pushes a corte report job to Redis.
func (d *Dispatcher) EnqueueReporteCorte(ctx context.Context, payload ReporteCortePayload) error {
	return d.enqueue(ctx, QueueReporteCorte, JobReporteCorte, payload)
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

// Pool runs the consumer goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	wg       sync.WaitGroup

	// push is LPUSH and pop is BRPOP on rdb; both replaced in tests
	push    func(ctx context.Context, key string, data []byte) error
	pop     func(ctx context.Context, queues ...string) ([]string, error)
	backoff time.Duration
}

func newPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	p := &Pool{rdb: rdb, handlers: handlers, backoff: esperaTrasError}
	p.push = func(ctx context.Context, key string, data []byte) error {
		return p.rdb.LPush(ctx, key, data).Err()
	}
	p.pop = func(ctx context.Context, queues ...string) ([]string, error) {
		// waits up to 5s then returns redis.Nil so the loop can check ctx
		return p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
	}
	return p
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) *Pool {
	p := newPool(rdb, handlers)
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return p
}

// Wait blocks until every worker has returned after ctx was cancelled.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	queues := []string{QueueReporteCorte}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			result, err := p.pop(ctx, queues...)
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Error().Err(err).Int("worker", id).Msg("BRPOP failed, backing off")
				select {
				case <-ctx.Done():
				case <-time.After(p.backoff):
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], []byte(result[1]))
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue string, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		p.sendToDLQ(ctx, queue, job, "tipo de job desconocido")
		return
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		log.Info().Str("type", job.Type).Int("attempts", job.Attempts).Msg("job processed")
		return
	}

	if errors.Is(err, ErrPermanente) || job.Attempts >= MaxIntentos {
		p.sendToDLQ(ctx, queue, job, err.Error())
		return
	}

	log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed, requeued")
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		log.Error().Err(mErr).Msg("failed to marshal job for retry")
		return
	}
	if pErr := p.push(ctx, queue, encoded); pErr != nil {
		log.Error().Err(pErr).Str("queue", queue).Msg("failed to requeue job")
	}
}
