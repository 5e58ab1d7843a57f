package catalog

import (
	"slices"
	"strings"

	"recrent-shop/internal/domain"
)

// Facets lists the values a buyer can filter the catalog by.
type Facets struct {
	Categories    []string   `json:"categories"`
	Colors        []string   `json:"colors"`
	Sizes         []string   `json:"sizes"`
	ClothingTypes []string   `json:"clothingTypes"`
	Collections   []string   `json:"collections"`
	Price         PriceRange `json:"price"`
}

// BuildFacets collects the distinct filter values present in products.
// Sizes are reported with their category restriction ("M:clothing").
func BuildFacets(products []domain.Product) Facets {
	categories := map[string]struct{}{}
	colors := map[string]struct{}{}
	sizes := map[string]struct{}{}
	types := map[string]struct{}{}
	collections := map[string]struct{}{}

	var price PriceRange
	for i := range products {
		p := &products[i]
		add(categories, string(p.Category))
		add(colors, p.Color)
		add(types, p.ClothingType)
		add(collections, p.Collection)
		for _, s := range p.Sizes() {
			add(sizes, SizeToken(s, p.Category))
		}

		if i == 0 || p.PriceNumeric < price.Min {
			price.Min = p.PriceNumeric
		}
		if i == 0 || p.PriceNumeric > price.Max {
			price.Max = p.PriceNumeric
		}
	}

	return Facets{
		Categories:    sortedKeys(categories),
		Colors:        sortedKeys(colors),
		Sizes:         sortedKeys(sizes),
		ClothingTypes: sortedKeys(types),
		Collections:   sortedKeys(collections),
		Price:         price,
	}
}

func add(set map[string]struct{}, v string) {
	if v = strings.TrimSpace(v); v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
