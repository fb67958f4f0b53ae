package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NutritionRecord holds the macro values of a food, always per 100 grams
type NutritionRecord struct {
	Name     string  `json:"name"`
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"proteinG"`
	CarbG    float64 `json:"carbG"`
	FatG     float64 `json:"fatG"`
}

// Line renders the record as the display line that is also persisted in the cache.
// Format: "<name> | Kcal: <k> | P: <p>g | C: <c>g | F: <f>g (per 100g)"
func (r NutritionRecord) Line() string {
	return fmt.Sprintf("%s | Kcal: %s | P: %sg | C: %sg | F: %sg (per 100g)",
		r.Name,
		FormatAmount(r.Kcal),
		FormatAmount(r.ProteinG),
		FormatAmount(r.CarbG),
		FormatAmount(r.FatG),
	)
}

// FormatAmount prints a nutrient value with the shortest exact representation
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NormalizeFoodKey returns the canonical cache key for a food name.
// Names differing only by case or surrounding whitespace share a key.
func NormalizeFoodKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
