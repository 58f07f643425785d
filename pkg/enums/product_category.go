package enums

import "fmt"

// ProductCategory classifies catalog listings.
type ProductCategory string

const (
	ProductCategoryMobiles     ProductCategory = "mobiles"
	ProductCategoryLaptops     ProductCategory = "laptops"
	ProductCategoryAccessories ProductCategory = "accessories"
	ProductCategoryEarbuds     ProductCategory = "earbuds"
	ProductCategorySmartwatch  ProductCategory = "smartwatch"
	ProductCategoryOther       ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryMobiles,
	ProductCategoryLaptops,
	ProductCategoryAccessories,
	ProductCategoryEarbuds,
	ProductCategorySmartwatch,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
