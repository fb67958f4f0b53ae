package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/macrolens/nutrilookup/internal/domain"
	"github.com/macrolens/nutrilookup/internal/infrastructure/fatsecret"
)

// FoodResolverConfig holds optional collaborators for the resolver
type FoodResolverConfig struct {
	Observer domain.LookupObserver
	Logger   *zap.Logger
}

// FoodResolver resolves one food name to a per-100g nutrition line.
// Flow: normalize -> cache -> token -> search -> detail -> pick 100g serving -> cache -> return
type FoodResolver struct {
	cache    domain.FoodCache
	tokens   domain.TokenSource
	client   domain.FatSecretClient
	observer domain.LookupObserver
	logger   *zap.Logger
}

// NewFoodResolver creates a resolver with its dependencies
func NewFoodResolver(
	cache domain.FoodCache,
	tokens domain.TokenSource,
	client domain.FatSecretClient,
	config FoodResolverConfig,
) *FoodResolver {
	observer := config.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FoodResolver{
		cache:    cache,
		tokens:   tokens,
		client:   client,
		observer: observer,
		logger:   logger.Named("resolver"),
	}
}

// Resolve looks up rawName. It never fails: every problem is reported
// through the Kind and Err of the returned result.
func (r *FoodResolver) Resolve(ctx context.Context, rawName string) domain.FoodResult {
	start := time.Now()
	result := r.resolve(ctx, rawName)

	if result.Kind != domain.ResultEmpty {
		r.observer.ObserveLookup(result.Kind, time.Since(start).Seconds())
		r.logger.Debug("lookup finished",
			zap.String("key", result.Key),
			zap.String("outcome", string(result.Kind)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return result
}

func (r *FoodResolver) resolve(ctx context.Context, rawName string) domain.FoodResult {
	key := domain.NormalizeFoodKey(rawName)
	result := domain.FoodResult{Query: rawName, Key: key}
	if key == "" {
		result.Kind = domain.ResultEmpty
		return result
	}

	// Cache first, even when no token is available
	if line, ok := r.cache.Load(ctx)[key]; ok {
		result.Kind = domain.ResultCached
		result.Line = line
		return result
	}

	token, ok := r.tokens.Token(ctx)
	if !ok {
		result.Kind = domain.ResultDegraded
		result.Err = domain.ErrAuthUnavailable
		return result
	}

	record, err := r.lookupRemote(ctx, token, key)
	if err != nil {
		if errors.Is(err, domain.ErrFoodNotFound) {
			result.Kind = domain.ResultNotFound
		} else {
			result.Kind = domain.ResultRemoteError
			r.logger.Warn("remote lookup failed", zap.String("key", key), zap.Error(err))
		}
		result.Err = err
		return result
	}

	line := record.Line()

	// Write-through; a failed write only means the next call misses
	err = r.cache.Save(ctx, key, line)
	r.observer.ObserveCacheWrite(err)
	if err != nil {
		r.logger.Warn("dropping cache update", zap.String("key", key), zap.Error(err))
	}

	result.Kind = domain.ResultResolved
	result.Line = line
	result.Record = &record
	return result
}

// lookupRemote runs the search and detail calls for key
func (r *FoodResolver) lookupRemote(ctx context.Context, token, key string) (domain.NutritionRecord, error) {
	search, err := r.client.SearchFoods(ctx, token, key)
	if err != nil {
		return domain.NutritionRecord{}, err
	}
	if search == nil || len(search.Foods.Food) == 0 {
		return domain.NutritionRecord{}, domain.ErrFoodNotFound
	}

	match := search.Foods.Food[0]
	if match.FoodID == "" {
		return domain.NutritionRecord{}, fmt.Errorf("%w: search result has no food_id", domain.ErrRemoteAPI)
	}

	detail, err := r.client.GetFood(ctx, token, match.FoodID)
	if err != nil {
		return domain.NutritionRecord{}, err
	}

	return fatsecret.MapToNutritionRecord(detail, key)
}

type nopObserver struct{}

func (nopObserver) ObserveLookup(domain.ResultKind, float64) {}
func (nopObserver) ObserveCacheWrite(error)                 {}
func (nopObserver) ObserveBatch(int)                        {}
