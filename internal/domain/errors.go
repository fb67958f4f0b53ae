package domain

import "errors"

var (
	// ErrAuthUnavailable is returned when no bearer token could be obtained
	ErrAuthUnavailable = errors.New("authentication unavailable")

	// ErrFoodNotFound is returned when the remote search has no match
	ErrFoodNotFound = errors.New("food not found in database")

	// ErrRemoteAPI is returned when a FatSecret call fails or returns an unexpected shape
	ErrRemoteAPI = errors.New("FatSecret API request failed")

	// ErrCacheCorrupt is returned when the cache backing store cannot be decoded
	ErrCacheCorrupt = errors.New("cache store corrupt")

	// ErrCacheWriteFailed is returned when the cache backing store cannot be written
	ErrCacheWriteFailed = errors.New("cache write failed")

	// ErrEmptyQuery is returned when a query contains no food names
	ErrEmptyQuery = errors.New("no food names provided")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCoordinatorClosed is returned for items submitted after the worker pool stopped
	ErrCoordinatorClosed = errors.New("batch coordinator closed")
)
