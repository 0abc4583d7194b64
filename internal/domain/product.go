package domain

import (
	"strings"
	"time"
)

// ProductCategory is the closed set of product categories.
type ProductCategory string

const (
	CategoryShampoo        ProductCategory = "shampoo"
	CategoryConditioner    ProductCategory = "conditioner"
	CategoryDeepConditioner ProductCategory = "deep_conditioner"
	CategoryLeaveIn        ProductCategory = "leave_in"
	CategoryTreatment      ProductCategory = "treatment"
	CategoryOil            ProductCategory = "oil"
	CategoryHeatProtectant ProductCategory = "heat_protectant"
	CategoryStyler         ProductCategory = "styler"
	CategoryTool           ProductCategory = "tool"
	CategoryAccessory      ProductCategory = "accessory"
)

// ProductCategories lists every valid category.
var ProductCategories = []ProductCategory{
	CategoryShampoo,
	CategoryConditioner,
	CategoryDeepConditioner,
	CategoryLeaveIn,
	CategoryTreatment,
	CategoryOil,
	CategoryHeatProtectant,
	CategoryStyler,
	CategoryTool,
	CategoryAccessory,
}

// ValidProductCategory reports whether c is in the closed category set.
func ValidProductCategory(c ProductCategory) bool {
	switch c {
	case CategoryShampoo, CategoryConditioner, CategoryDeepConditioner,
		CategoryLeaveIn, CategoryTreatment, CategoryOil,
		CategoryHeatProtectant, CategoryStyler, CategoryTool,
		CategoryAccessory:
		return true
	default:
		return false
	}
}

// CategoryImportance weights a routine step by how much its category
// contributes to hair outcomes. Range [0.5, 1.0]: core cleansing and
// conditioning highest, styling tools lowest. The switch is exhaustive
// over the closed category set; unknown categories get the floor.
func CategoryImportance(c ProductCategory) float64 {
	switch c {
	case CategoryShampoo:
		return 1.0
	case CategoryConditioner:
		return 1.0
	case CategoryDeepConditioner:
		return 0.9
	case CategoryTreatment:
		return 0.9
	case CategoryLeaveIn:
		return 0.85
	case CategoryOil:
		return 0.8
	case CategoryHeatProtectant:
		return 0.75
	case CategoryStyler:
		return 0.7
	case CategoryAccessory:
		return 0.6
	case CategoryTool:
		return 0.5
	default:
		return 0.5
	}
}

// Product is a purchasable hair-care product. Ingredients are stored
// lower-cased in listing order; earlier means higher concentration, which
// the ingredient scorer rewards with a position bonus.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand,omitempty"`
	Category ProductCategory `json:"category"`

	Ingredients []string `json:"ingredients"`

	Price    float64 `json:"price,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeIngredients lower-cases and trims an ingredient list in place,
// dropping empty entries but preserving order.
func NormalizeIngredients(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing != "" {
			out = append(out, ing)
		}
	}
	return out
}
