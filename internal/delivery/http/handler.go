package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolens/nutrilookup/internal/domain"
	"github.com/macrolens/nutrilookup/internal/usecase"
)

// NutritionResolver resolves food lists into per-100g nutrition lines
type NutritionResolver interface {
	ResolveQuery(ctx context.Context, query string) string
	ResolveBatch(ctx context.Context, req domain.BatchRequest) domain.BatchResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver NutritionResolver
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver NutritionResolver) *Handler {
	return &Handler{resolver: resolver}
}

// BatchLookupRequest is the body of a batch lookup.
// Either a comma-separated query or an explicit food list is accepted.
type BatchLookupRequest struct {
	Query *string  `json:"query"`
	Foods []string `json:"foods"`
}

// FoodResultResponse is one rendered item of a batch response
type FoodResultResponse struct {
	Query  string            `json:"query"`
	Key    string            `json:"key"`
	Status domain.ResultKind `json:"status"`
	Line   string            `json:"line"`
	Error  string            `json:"error,omitempty"`
}

// BatchLookupResponse is the body returned by ResolveBatch
type BatchLookupResponse struct {
	Results []FoodResultResponse `json:"results"`
	Text    string               `json:"text"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrilookup",
		"version": "1.0.0",
	})
}

// ResolveBatch handles POST /api/v1/nutrition/batch
func (h *Handler) ResolveBatch(c *gin.Context) {
	if h.resolver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Nutrition lookup not configured",
		})
		return
	}

	var body BatchLookupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	var (
		req      domain.BatchRequest
		err      error
		guidance string
	)
	switch {
	case body.Foods != nil:
		req, err = domain.NewBatchRequest(body.Foods)
		guidance = domain.GuidanceEmptyQuery
		if len(body.Foods) == 0 {
			guidance = domain.GuidanceNoQuery
		}
	case body.Query != nil:
		req, err = usecase.ParseQuery(*body.Query)
		guidance = domain.GuidanceFor(*body.Query)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Either query or foods is required",
		})
		return
	}

	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusOK, BatchLookupResponse{
				Results: []FoodResultResponse{},
				Text:    guidance,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result := h.resolver.ResolveBatch(c.Request.Context(), req)
	c.JSON(http.StatusOK, toBatchResponse(result))
}

// Lookup handles GET /api/v1/nutrition/lookup?q=rice,egg and returns the text block
func (h *Handler) Lookup(c *gin.Context) {
	if h.resolver == nil {
		c.String(http.StatusServiceUnavailable, "Nutrition lookup not configured")
		return
	}

	c.String(http.StatusOK, h.resolver.ResolveQuery(c.Request.Context(), c.Query("q")))
}

func toBatchResponse(result domain.BatchResult) BatchLookupResponse {
	items := make([]FoodResultResponse, len(result.Results))
	for i, r := range result.Results {
		items[i] = FoodResultResponse{
			Query:  r.Query,
			Key:    r.Key,
			Status: r.Kind,
			Line:   r.Render(),
			Error:  r.ErrorMessage(),
		}
	}
	return BatchLookupResponse{
		Results: items,
		Text:    result.Text(),
	}
}
