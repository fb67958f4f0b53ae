package usecase

import (
	"strings"

	"github.com/macrolens/nutrilookup/internal/domain"
)

// SplitFoodList splits a comma-separated query into trimmed, non-empty names.
// Order and duplicates are preserved.
func SplitFoodList(query string) []string {
	parts := strings.Split(query, ",")
	foods := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			foods = append(foods, part)
		}
	}
	return foods
}

// ParseQuery turns the raw comma-separated query into a validated request.
// Returns domain.ErrEmptyQuery when no food names remain.
func ParseQuery(query string) (domain.BatchRequest, error) {
	return domain.NewBatchRequest(SplitFoodList(query))
}
