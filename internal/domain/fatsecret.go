package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FoodSearchResponse represents the response of the foods.search method
type FoodSearchResponse struct {
	Foods struct {
		Food         OneOrMany[FoodSummary] `json:"food"`
		TotalResults NumericString          `json:"total_results,omitempty"`
	} `json:"foods"`
	Error *APIError `json:"error,omitempty"`
}

// FoodSummary is a single hit of a foods.search call
type FoodSummary struct {
	FoodID          string `json:"food_id"`
	FoodName        string `json:"food_name"`
	FoodType        string `json:"food_type,omitempty"`
	FoodDescription string `json:"food_description,omitempty"`
}

// FoodDetailResponse represents the response of the food.get.v2 method
type FoodDetailResponse struct {
	Food  FoodDetail `json:"food"`
	Error *APIError  `json:"error,omitempty"`
}

// FoodDetail carries the serving list of one food
type FoodDetail struct {
	FoodID   string `json:"food_id"`
	FoodName string `json:"food_name"`
	Servings struct {
		Serving OneOrMany[Serving] `json:"serving"`
	} `json:"servings"`
}

// Serving describes one measured portion of a food and its nutrient values
type Serving struct {
	ServingID           string        `json:"serving_id,omitempty"`
	ServingDescription  string        `json:"serving_description,omitempty"`
	MetricServingAmount NumericString `json:"metric_serving_amount"`
	MetricServingUnit   string        `json:"metric_serving_unit"`
	Calories            NumericString `json:"calories"`
	Protein             NumericString `json:"protein"`
	Carbohydrate        NumericString `json:"carbohydrate"`
	Fat                 NumericString `json:"fat"`
}

// APIError is the error envelope FatSecret returns alongside HTTP 200
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fatsecret error %d: %s", e.Code, e.Message)
}

// OneOrMany decodes a JSON value that is either a single object or an array of them.
// FatSecret collapses single-element lists into a bare object.
type OneOrMany[T any] []T

// UnmarshalJSON implements json.Unmarshaler
func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*o = items
		return nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return err
	}
	*o = OneOrMany[T]{item}
	return nil
}

// NumericString holds a number FatSecret may send either quoted or bare
type NumericString string

// UnmarshalJSON implements json.Unmarshaler
func (n *NumericString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}
