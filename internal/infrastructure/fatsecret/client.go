package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/macrolens/nutrilookup/internal/domain"
)

// maxErrorBody caps how much of a failed response is copied into error messages
const maxErrorBody = 512

// Client handles communication with the FatSecret Platform REST API
type Client struct {
	httpClient *http.Client
	apiURL     string
	logger     *zap.Logger
}

// NewClient creates a FatSecret API client. Every call is bounded by timeout.
func NewClient(apiURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiURL: apiURL,
		logger: logger.Named("fatsecret"),
	}
}

// SearchFoods runs foods.search for expression, asking for a single match.
// Returns domain.ErrFoodNotFound when the search has no hits.
func (c *Client) SearchFoods(ctx context.Context, token, expression string) (*domain.FoodSearchResponse, error) {
	params := url.Values{}
	params.Set("method", "foods.search")
	params.Set("search_expression", expression)
	params.Set("max_results", "1")
	params.Set("format", "json")

	var searchResp domain.FoodSearchResponse
	if err := c.call(ctx, token, params, &searchResp); err != nil {
		return nil, err
	}
	if searchResp.Error != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteAPI, searchResp.Error)
	}

	if len(searchResp.Foods.Food) == 0 {
		c.logger.Debug("no foods found", zap.String("expression", expression))
		return nil, domain.ErrFoodNotFound
	}

	c.logger.Debug("search matched",
		zap.String("expression", expression),
		zap.String("food_id", searchResp.Foods.Food[0].FoodID))
	return &searchResp, nil
}

// GetFood runs food.get.v2 for foodID and returns the food with its servings
func (c *Client) GetFood(ctx context.Context, token, foodID string) (*domain.FoodDetail, error) {
	params := url.Values{}
	params.Set("method", "food.get.v2")
	params.Set("food_id", foodID)
	params.Set("format", "json")

	var detailResp domain.FoodDetailResponse
	if err := c.call(ctx, token, params, &detailResp); err != nil {
		return nil, err
	}
	if detailResp.Error != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteAPI, detailResp.Error)
	}

	return &detailResp.Food, nil
}

// call executes an authenticated GET against the method endpoint and decodes the body into out
func (c *Client) call(ctx context.Context, token string, params url.Values, out interface{}) error {
	reqURL := c.apiURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", domain.ErrRemoteAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "nutrilookup/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", params.Get("method")), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrRemoteAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := readLimitedBody(resp.Body, maxErrorBody)
		c.logger.Warn("unexpected status",
			zap.String("method", params.Get("method")),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("%w: status %d, body: %s", domain.ErrRemoteAPI, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrRemoteAPI, err)
	}

	return nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
