package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/macrolens/nutrilookup/internal/domain"
)

// DefaultWorkers is the pool size used when none is configured
const DefaultWorkers = 5

// Resolver resolves a single food name
type Resolver interface {
	Resolve(ctx context.Context, rawName string) domain.FoodResult
}

// BatchConfig holds configuration for the batch coordinator
type BatchConfig struct {
	Workers  int
	Observer domain.LookupObserver
	Logger   *zap.Logger
}

type job struct {
	ctx     context.Context
	index   int
	name    string
	results []domain.FoodResult
	done    *sync.WaitGroup
}

// BatchCoordinator fans food names out over a long-lived worker pool
// and collects the results in input order.
type BatchCoordinator struct {
	resolver Resolver
	workers  int
	jobs     chan job
	observer domain.LookupObserver
	logger   *zap.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewBatchCoordinator starts the worker pool. Call Close to stop it.
func NewBatchCoordinator(resolver Resolver, config BatchConfig) *BatchCoordinator {
	workers := config.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	observer := config.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &BatchCoordinator{
		resolver: resolver,
		workers:  workers,
		jobs:     make(chan job),
		observer: observer,
		logger:   logger.Named("batch"),
	}

	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}

	return b
}

// Workers returns the pool size
func (b *BatchCoordinator) Workers() int {
	return b.workers
}

// ResolveQuery resolves a comma-separated query and returns one line per
// food in input order. A query without food names yields a guidance message.
// It always returns a well-formed string.
func (b *BatchCoordinator) ResolveQuery(ctx context.Context, query string) string {
	req, err := ParseQuery(query)
	if err != nil {
		b.logger.Debug("query has no food names", zap.String("query", query), zap.Error(err))
		return domain.GuidanceFor(query)
	}
	return b.ResolveBatch(ctx, req).Text()
}

// ResolveBatch resolves every food of req concurrently and blocks until all are done.
// Results keep the order of req.Foods; repeated names are resolved once per occurrence.
func (b *BatchCoordinator) ResolveBatch(ctx context.Context, req domain.BatchRequest) domain.BatchResult {
	results := make([]domain.FoodResult, len(req.Foods))
	b.observer.ObserveBatch(len(req.Foods))

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		for i, name := range req.Foods {
			results[i] = domain.FoodResult{
				Query: name,
				Key:   domain.NormalizeFoodKey(name),
				Kind:  domain.ResultRemoteError,
				Err:   domain.ErrCoordinatorClosed,
			}
		}
		return domain.BatchResult{Results: results}
	}

	var done sync.WaitGroup
	done.Add(len(req.Foods))
	for i, name := range req.Foods {
		b.jobs <- job{ctx: ctx, index: i, name: name, results: results, done: &done}
	}
	b.mu.RUnlock()

	done.Wait()

	b.logger.Debug("batch finished", zap.Int("items", len(req.Foods)))
	return domain.BatchResult{Results: results}
}

// Close stops the workers after in-flight jobs finish. It is safe to call more than once.
func (b *BatchCoordinator) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.jobs)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *BatchCoordinator) worker() {
	defer b.wg.Done()
	for j := range b.jobs {
		j.results[j.index] = b.resolveSafely(j.ctx, j.name)
		j.done.Done()
	}
}

// resolveSafely keeps a panicking resolver from taking down the pool
func (b *BatchCoordinator) resolveSafely(ctx context.Context, name string) (result domain.FoodResult) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("resolver panicked", zap.String("food", name), zap.Any("panic", rec))
			result = domain.FoodResult{
				Query: name,
				Key:   domain.NormalizeFoodKey(name),
				Kind:  domain.ResultRemoteError,
				Err:   fmt.Errorf("%w: internal error: %v", domain.ErrRemoteAPI, rec),
			}
		}
	}()
	return b.resolver.Resolve(ctx, name)
}
