package products

import "time"

// Source can be one of:
//   - fatsecret
//   - openfoodfacts
//   - local
type Source string

const (
	SourceFatSecret     Source = "fatsecret"
	SourceOpenFoodFacts Source = "openfoodfacts"
	SourceLocal         Source = "local"
)

func (s Source) String() string {
	return string(s)
}

// Product holds per-100g nutrition values for one food product.
type Product struct {
	ID              int       `json:"id,omitempty"`
	Barcode         string    `json:"barcode"`
	Name            string    `json:"name"`
	CaloriesPer100g float64   `json:"caloriesPer100g"`
	ProteinPer100g  float64   `json:"proteinPer100g"`
	CarbsPer100g    float64   `json:"carbsPer100g"`
	FatPer100g      float64   `json:"fatPer100g"`
	Source          Source    `json:"source"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
