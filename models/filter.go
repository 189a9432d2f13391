package models

import "strings"

const (
	// AllCategories disables the category filter.
	AllCategories = "all"
	// UnknownCategoryLabel is shown for products whose category no longer exists.
	UnknownCategoryLabel = "Sem categoria"
	// FeaturedHeading titles the unfiltered menu.
	FeaturedHeading = "Destaques do Cardápio"
)

type ProductFilters struct {
	CategoryID string
	Query      string
}

// Match reports whether p passes both the category filter and the
// case-insensitive search over name and description.
func (f ProductFilters) Match(p Product) bool {
	if f.CategoryID != "" && f.CategoryID != AllCategories && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// FilterProducts keeps the products matching filters, in their stored order.
func FilterProducts(products []Product, filters ProductFilters) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if filters.Match(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func CategoryLabel(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCategoryLabel
}

// HeadingFor is the title shown above the product list for a category filter.
func HeadingFor(categories []Category, categoryID string) string {
	if categoryID == "" || categoryID == AllCategories {
		return FeaturedHeading
	}
	return CategoryLabel(categories, categoryID)
}
