package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// cartLineNamespace scopes the name-based UUIDs used as cart line ids.
var cartLineNamespace = uuid.MustParse("6f1c1b0e-6a53-4c57-9d0a-3f2e5d1f7a21")

// CartItem is one line in a shopping cart. Display fields are a snapshot taken
// when the line was added and do not follow later product edits.
type CartItem struct {
	ID            string `json:"id"`
	ProductID     int64  `json:"productId"`
	Image         string `json:"image"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	Price         string `json:"price"`
	UnitPrice     int64  `json:"unitPrice,omitempty"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedType  string `json:"selectedType,omitempty"`
}

// CartLineID identifies a purchasable configuration: the same product with
// different selections yields different ids.
func CartLineID(productID int64, size, color, clothingType string) string {
	key := strings.Join([]string{
		strconv.FormatInt(productID, 10),
		normalizeSelection(size),
		normalizeSelection(color),
		normalizeSelection(clothingType),
	}, "\x1f")
	return uuid.NewSHA1(cartLineNamespace, []byte(key)).String()
}

func normalizeSelection(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NewCartItem snapshots the product's display data into a cart line.
func NewCartItem(p *Product, quantity int, size, color, clothingType string) CartItem {
	return CartItem{
		ID:            CartLineID(p.ID, size, color, clothingType),
		ProductID:     p.ID,
		Image:         p.PrimaryImage(),
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Price:         FormatPrice(p.PriceNumeric),
		UnitPrice:     p.PriceNumeric,
		Quantity:      quantity,
		SelectedSize:  strings.TrimSpace(size),
		SelectedColor: strings.TrimSpace(color),
		SelectedType:  strings.TrimSpace(clothingType),
	}
}
