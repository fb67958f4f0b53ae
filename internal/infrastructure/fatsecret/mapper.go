package fatsecret

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/macrolens/nutrilookup/internal/domain"
)

// gramUnit is the metric_serving_unit of gram-denominated servings
const gramUnit = "g"

// SelectServing picks the serving that describes 100 grams.
// An exact 100g serving wins, then any gram serving whose amount mentions "100",
// then the first serving. The bool is false when there are no servings.
func SelectServing(servings []domain.Serving) (domain.Serving, bool) {
	if len(servings) == 0 {
		return domain.Serving{}, false
	}

	for _, s := range servings {
		if s.MetricServingUnit != gramUnit {
			continue
		}
		if amount, err := parseAmount(s.MetricServingAmount); err == nil && amount == 100 {
			return s, true
		}
	}

	for _, s := range servings {
		if s.MetricServingUnit == gramUnit && strings.Contains(string(s.MetricServingAmount), "100") {
			return s, true
		}
	}

	return servings[0], true
}

// MapToNutritionRecord converts a food detail into a per-100g record.
// fallbackName is used when the response carries no food name.
// A food without servings maps to zero values.
func MapToNutritionRecord(detail *domain.FoodDetail, fallbackName string) (domain.NutritionRecord, error) {
	record := domain.NutritionRecord{Name: fallbackName}
	if detail == nil {
		return record, fmt.Errorf("%w: empty food detail", domain.ErrRemoteAPI)
	}
	if detail.FoodName != "" {
		record.Name = detail.FoodName
	}

	serving, ok := SelectServing(detail.Servings.Serving)
	if !ok {
		return record, nil
	}

	fields := []struct {
		name  string
		value domain.NumericString
		dest  *float64
	}{
		{"calories", serving.Calories, &record.Kcal},
		{"protein", serving.Protein, &record.ProteinG},
		{"carbohydrate", serving.Carbohydrate, &record.CarbG},
		{"fat", serving.Fat, &record.FatG},
	}
	for _, f := range fields {
		v, err := parseAmount(f.value)
		if err != nil {
			return record, fmt.Errorf("%w: malformed %s value %q", domain.ErrRemoteAPI, f.name, string(f.value))
		}
		*f.dest = v
	}

	return record, nil
}

// parseAmount parses a FatSecret numeric field; a missing value reads as 0
func parseAmount(n domain.NumericString) (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
