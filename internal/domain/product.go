package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Category is the top-level catalog section a product belongs to.
type Category string

const (
	CategoryMousepads Category = "mousepads"
	CategoryClothing  Category = "clothing"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryMousepads || c == CategoryClothing
}

// Product represents a product in the catalog.
//
// PriceNumeric (whole rubles) is authoritative. Price is the display form and is
// always derived from it by Normalize.
type Product struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Price        string    `json:"price"`
	PriceNumeric int64     `json:"priceNumeric"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	Category     Category  `json:"category"`
	Color        string    `json:"color"`
	Collection   string    `json:"collection,omitempty"`
	ClothingType string    `json:"clothingType,omitempty"`
	ProductSize  string    `json:"productSize,omitempty"`
	ProductColor string    `json:"productColor,omitempty"`
	Image        string    `json:"image"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Normalize derives the display price and fills the image fields from each other.
func (p *Product) Normalize() {
	p.Price = FormatPrice(p.PriceNumeric)
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}
}

// PrimaryImage returns the image shown on cards and cart lines.
func (p *Product) PrimaryImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// Sizes splits ProductSize on commas. Empty tokens are dropped.
func (p *Product) Sizes() []string {
	if strings.TrimSpace(p.ProductSize) == "" {
		return nil
	}
	parts := strings.Split(p.ProductSize, ",")
	sizes := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// FieldError describes one invalid product attribute.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the attribute conventions a stored product must follow.
func (p *Product) Validate() []FieldError {
	var errs []FieldError

	if !p.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Message: "must be one of mousepads, clothing"})
	}
	if p.PriceNumeric < 0 {
		errs = append(errs, FieldError{Field: "priceNumeric", Message: "must not be negative"})
	}
	if p.PriceNumeric > math.MaxInt32 {
		errs = append(errs, FieldError{Field: "priceNumeric", Message: fmt.Sprintf("must be at most %d", math.MaxInt32)})
	}
	if p.Rating < 0 || p.Rating > 5 {
		errs = append(errs, FieldError{Field: "rating", Message: "must be between 0 and 5"})
	}
	if p.ReviewCount < 0 {
		errs = append(errs, FieldError{Field: "reviewCount", Message: "must not be negative"})
	}
	if p.ReviewCount > math.MaxInt32 {
		errs = append(errs, FieldError{Field: "reviewCount", Message: fmt.Sprintf("must be at most %d", math.MaxInt32)})
	}
	if p.ClothingType != "" && p.Category != CategoryClothing {
		errs = append(errs, FieldError{Field: "clothingType", Message: "only allowed for clothing"})
	}
	if p.Price != "" && !SamePrice(p.Price, p.PriceNumeric) {
		errs = append(errs, FieldError{Field: "price", Message: "does not match priceNumeric"})
	}

	// widths follow the products table columns
	for _, f := range []struct {
		field, value string
		limit        int
	}{
		{"title", p.Title, 255},
		{"subtitle", p.Subtitle, 255},
		{"price", p.Price, 50},
		{"color", p.Color, 50},
		{"collection", p.Collection, 100},
		{"clothingType", p.ClothingType, 50},
		{"productSize", p.ProductSize, 100},
		{"productColor", p.ProductColor, 100},
		{"image", p.Image, 500},
	} {
		if utf8.RuneCountInString(f.value) > f.limit {
			errs = append(errs, FieldError{Field: f.field, Message: fmt.Sprintf("must be at most %d characters", f.limit)})
		}
	}

	return errs
}
