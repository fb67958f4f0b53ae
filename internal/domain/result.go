package domain

import (
	"fmt"
	"strings"
)

// ResultKind classifies how a single food lookup ended
type ResultKind string

const (
	ResultResolved    ResultKind = "resolved"
	ResultCached      ResultKind = "cached"
	ResultDegraded    ResultKind = "degraded"
	ResultNotFound    ResultKind = "not_found"
	ResultRemoteError ResultKind = "remote_error"
	ResultEmpty       ResultKind = "empty"
)

// Placeholder values used when no bearer token is available
const (
	CacheHitTag     = "[Cache] "
	PlaceholderKcal = 100
)

// FoodResult is the outcome of resolving one food name.
// Line holds the payload (formatted record or cached string); Render adds the tag.
type FoodResult struct {
	Query  string           `json:"query"`
	Key    string           `json:"key"`
	Kind   ResultKind       `json:"status"`
	Line   string           `json:"line,omitempty"`
	Record *NutritionRecord `json:"record,omitempty"`
	Err    error            `json:"-"`
}

// Render converts the result into its text form for the pipeline
func (r FoodResult) Render() string {
	switch r.Kind {
	case ResultResolved:
		return r.Line
	case ResultCached:
		return CacheHitTag + r.Line
	case ResultDegraded:
		return fmt.Sprintf("[%s]: Auth Failed (Using Mock Data: %dkcal/100g)", r.Key, PlaceholderKcal)
	case ResultNotFound:
		return fmt.Sprintf("[%s]: Not Found in Database", r.Key)
	case ResultRemoteError:
		msg := "unknown error"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return fmt.Sprintf("[%s]: API Error %s", r.Key, msg)
	default:
		return ""
	}
}

// ErrorMessage returns the failure message, or "" for successful kinds
func (r FoodResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// BatchResult holds per-item results in input order
type BatchResult struct {
	Results []FoodResult `json:"results"`
}

// Text joins the rendered results with newlines
func (b BatchResult) Text() string {
	lines := make([]string, len(b.Results))
	for i, r := range b.Results {
		lines[i] = r.Render()
	}
	return strings.Join(lines, "\n")
}

// Count returns how many results ended with the given kind
func (b BatchResult) Count(kind ResultKind) int {
	n := 0
	for _, r := range b.Results {
		if r.Kind == kind {
			n++
		}
	}
	return n
}
