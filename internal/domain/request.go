package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Guidance messages returned instead of lookups when a query has no food names
const (
	GuidanceNoQuery    = "Please provide valid food names."
	GuidanceEmptyQuery = "Please provide food names."
)

var requestValidator = validator.New()

// BatchRequest is a validated list of food names to resolve
type BatchRequest struct {
	Foods []string `json:"foods" validate:"required,min=1,dive,required"`
}

// NewBatchRequest builds a request from a food list.
// Names are trimmed and empty names dropped; duplicates are kept.
func NewBatchRequest(foods []string) (BatchRequest, error) {
	cleaned := make([]string, 0, len(foods))
	for _, f := range foods {
		if f = strings.TrimSpace(f); f != "" {
			cleaned = append(cleaned, f)
		}
	}

	req := BatchRequest{Foods: cleaned}
	if err := requestValidator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return BatchRequest{}, ErrEmptyQuery
		}
		return BatchRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return req, nil
}

// GuidanceFor picks the guidance message for a query with no food names
func GuidanceFor(query string) string {
	if query == "" {
		return GuidanceNoQuery
	}
	return GuidanceEmptyQuery
}
