package domain

import "context"

// FoodCache defines the persistent key -> rendered line store.
// Load never fails: a missing or corrupt store reads as empty.
type FoodCache interface {
	Load(ctx context.Context) map[string]string
	Save(ctx context.Context, key, value string) error
}

// TokenSource hands out bearer tokens for FatSecret calls.
// A false second return means no token is available and callers should degrade.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// FatSecretClient defines the interface for the FatSecret Platform REST API
type FatSecretClient interface {
	SearchFoods(ctx context.Context, token, expression string) (*FoodSearchResponse, error)
	GetFood(ctx context.Context, token, foodID string) (*FoodDetail, error)
}

// LookupObserver receives lookup outcomes for monitoring
type LookupObserver interface {
	ObserveLookup(kind ResultKind, seconds float64)
	ObserveCacheWrite(err error)
	ObserveBatch(items int)
}
