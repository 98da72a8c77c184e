package port

import "context"

// FoodNutrients holds resolved nutrient amounts for a requested quantity of
// one food item.
type FoodNutrients struct {
	SourceID int64
	Name     string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Fiber    float64
	Sugar    float64
	Raw      []byte
}

// NutritionLookup resolves a food name and quantity into nutrient amounts
// via an external food database.
type NutritionLookup interface {
	Lookup(ctx context.Context, item string, quantity float64, unit string) (*FoodNutrients, error)
}

// RiskScore is an external dietary risk assessment for one food item.
type RiskScore struct {
	Item     string   `json:"item"`
	Score    float64  `json:"score"`
	Level    string   `json:"level"`
	Warnings []string `json:"warnings,omitempty"`
}

// RiskScorer flags dietary risk for food items.
type RiskScorer interface {
	Score(ctx context.Context, items []string) ([]RiskScore, error)
}
