// Package queue implements the job handoff between the API process and the
// entry-processor workers as a Redis list: the API LPUSHes entry ids, worker
// goroutines BRPOP them. The list outlives both processes, so jobs queued
// before a worker restart are picked up afterwards. Delivery is at-least-once;
// the idempotent completion on the entry store makes redelivery harmless.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openjournal/diary-system/internal/core/ports"
	"github.com/openjournal/diary-system/internal/metrics"
)

const (
	defaultWorkers = 4
	popTimeout     = 5 * time.Second
)

// Dispatcher enqueues entry ids onto the shared Redis list.
type Dispatcher struct {
	client *redis.Client
	key    string
}

func NewDispatcher(client *redis.Client, key string) *Dispatcher {
	return &Dispatcher{client: client, key: key}
}

// Enqueue pushes the id and returns once Redis has accepted it. It never
// waits on processing.
func (d *Dispatcher) Enqueue(ctx context.Context, entryID string) error {
	if err := d.client.LPush(ctx, d.key, entryID).Err(); err != nil {
		return fmt.Errorf("enqueue entry %s: %w", entryID, err)
	}
	metrics.JobsEnqueuedTotal.Inc()
	return nil
}

// Consumer runs a fixed pool of workers draining the Redis list.
type Consumer struct {
	client    *redis.Client
	key       string
	processor ports.Processor
	workers   int
	log       zerolog.Logger
}

// NewConsumer creates a Consumer with numWorkers concurrent workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewConsumer(client *redis.Client, key string, processor ports.Processor, numWorkers int, log zerolog.Logger) *Consumer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Consumer{
		client:    client,
		key:       key,
		processor: processor,
		workers:   numWorkers,
		log:       log,
	}
}

// Start launches the worker goroutines and blocks until ctx is cancelled and
// every worker has drained its in-flight job.
func (c *Consumer) Start(ctx context.Context) {
	done := make(chan struct{})
	for i := 0; i < c.workers; i++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()
			c.runWorker(ctx, id)
		}(i)
	}
	for i := 0; i < c.workers; i++ {
		<-done
	}
}

func (c *Consumer) runWorker(ctx context.Context, id int) {
	log := c.log.With().Int("worker_id", id).Logger()
	log.Info().Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopping")
			return
		default:
		}

		// BRPOP with a bounded timeout so cancellation is observed promptly.
		vals, err := c.client.BRPop(ctx, popTimeout, c.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Msg("queue pop failed")
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		entryID := vals[1]
		if err := c.processor.Process(ctx, entryID); err != nil {
			// Processing errors inside the entry are contained by the
			// processor; an error here means the entry could not even be
			// loaded or completed. Push the id back for redelivery.
			log.Error().Err(err).Str("entry_id", entryID).Msg("job failed, requeueing")
			if pushErr := c.client.LPush(context.WithoutCancel(ctx), c.key, entryID).Err(); pushErr != nil {
				log.Error().Err(pushErr).Str("entry_id", entryID).Msg("requeue failed, job lost")
			}
		}
	}
}
