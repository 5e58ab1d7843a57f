// Package catalog filters and orders the product list shown to buyers.
// Nothing here performs I/O; every function is safe to call concurrently.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"recrent-shop/internal/domain"
)

// SortBy selects the ordering of the filtered catalog.
type SortBy string

const (
	SortPopularity SortBy = "popularity"
	SortRating     SortBy = "rating"
	SortPriceAsc   SortBy = "price-asc"
	SortPriceDesc  SortBy = "price-desc"
)

// ParseSortBy maps a query value to a SortBy, falling back to popularity.
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortRating:
		return SortRating
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortPopularity
	}
}

// PriceRange is a closed interval on Product.PriceNumeric.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price lies in [Min, Max].
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// Filter is the buyer's filter and sort selection. An empty slice leaves that
// dimension unconstrained, as does the value "all".
type Filter struct {
	SortBy SortBy `json:"sortBy"`

	// Categories accepts category names and clothing types alike, so a buyer
	// can pick "mousepads" and "hoodie" in the same control.
	Categories    []string `json:"categories,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	ClothingTypes []string `json:"clothingTypes,omitempty"`
	Collections   []string `json:"collections,omitempty"`

	Price     *PriceRange `json:"price,omitempty"`
	MinRating float64     `json:"minRating,omitempty"`
}

type predicate func(p *domain.Product) bool

// Apply returns the products matching f, ordered by f.SortBy. The input slice is
// not modified. Ties are broken by ascending id so the output does not depend on
// input order.
func Apply(products []domain.Product, f Filter) []domain.Product {
	preds := f.predicates()

	result := make([]domain.Product, 0, len(products))
	for i := range products {
		if matchesAll(&products[i], preds) {
			result = append(result, products[i])
		}
	}

	slices.SortStableFunc(result, comparator(f.SortBy))
	return result
}

func matchesAll(p *domain.Product, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func (f Filter) predicates() []predicate {
	var preds []predicate

	if set := newValueSet(f.Categories); set != nil {
		preds = append(preds, func(p *domain.Product) bool {
			return set.has(string(p.Category)) || set.has(p.ClothingType)
		})
	}
	if set := newValueSet(f.Colors); set != nil {
		preds = append(preds, func(p *domain.Product) bool {
			return set.has(p.Color)
		})
	}
	if tokens := parseSizeTokens(f.Sizes); tokens != nil {
		preds = append(preds, func(p *domain.Product) bool {
			return matchesSize(p, tokens)
		})
	}
	if set := newValueSet(f.ClothingTypes); set != nil {
		preds = append(preds, func(p *domain.Product) bool {
			return set.has(p.ClothingType)
		})
	}
	if set := newValueSet(f.Collections); set != nil {
		preds = append(preds, func(p *domain.Product) bool {
			return set.has(p.Collection)
		})
	}
	if f.Price != nil {
		r := *f.Price
		preds = append(preds, func(p *domain.Product) bool {
			return r.Contains(p.PriceNumeric)
		})
	}
	if f.MinRating > 0 {
		minRating := f.MinRating
		preds = append(preds, func(p *domain.Product) bool {
			return p.Rating >= minRating
		})
	}

	return preds
}

func comparator(sortBy SortBy) func(a, b domain.Product) int {
	return func(a, b domain.Product) int {
		var c int
		switch sortBy {
		case SortPriceAsc:
			c = cmp.Compare(a.PriceNumeric, b.PriceNumeric)
		case SortPriceDesc:
			c = cmp.Compare(b.PriceNumeric, a.PriceNumeric)
		case SortRating:
			c = cmp.Compare(b.Rating, a.Rating)
			if c == 0 {
				c = cmp.Compare(b.ReviewCount, a.ReviewCount)
			}
		default:
			c = cmp.Compare(b.ReviewCount, a.ReviewCount)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	}
}

// valueSet is a case-insensitive set of accepted values.
type valueSet map[string]struct{}

// newValueSet returns nil when values impose no constraint.
func newValueSet(values []string) valueSet {
	set := valueSet{}
	for _, v := range values {
		v = normalize(v)
		if v == "" {
			continue
		}
		if v == "all" {
			return nil
		}
		set[v] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func (s valueSet) has(v string) bool {
	v = normalize(v)
	if v == "" {
		return false
	}
	_, ok := s[v]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
