package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"recrent-shop/internal/domain"
	"recrent-shop/internal/repository"

	"github.com/microcosm-cc/bluemonday"
)

var ErrValidation = errors.New("validation failed")

// ValidationError lists the product attributes that were rejected.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ProductInput is the admin-editable part of a product. Price is optional; when
// given it must agree with PriceNumeric.
type ProductInput struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Subtitle     string   `json:"subtitle" validate:"max=255"`
	Price        string   `json:"price" validate:"max=50"`
	PriceNumeric *int64   `json:"priceNumeric" validate:"required,gte=0,lte=2147483647"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount  int      `json:"reviewCount" validate:"gte=0,lte=2147483647"`
	Color        string   `json:"color" validate:"max=50"`
	Category     string   `json:"category" validate:"required,max=50"`
	Collection   string   `json:"collection" validate:"max=100"`
	ClothingType string   `json:"clothingType" validate:"max=50"`
	ProductSize  string   `json:"productSize" validate:"max=100"`
	ProductColor string   `json:"productColor" validate:"max=100"`
	Image        string   `json:"image" validate:"required,max=500"`
	Images       []string `json:"images" validate:"omitempty,dive,required"`
}

// ProductService defines catalog administration and lookup
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

const maxCleanPasses = 8

type productService struct {
	repo   repository.ProductRepository
	policy *bluemonday.Policy
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo, policy: bluemonday.StrictPolicy()}
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Normalize()
	return product, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product, err := s.build(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	product, err := s.build(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// build sanitizes text fields, derives the display price and validates the
// category-specific conventions.
func (s *productService) build(input ProductInput) (*domain.Product, error) {
	if input.PriceNumeric == nil {
		return nil, &ValidationError{Fields: []domain.FieldError{{Field: "priceNumeric", Message: "is required"}}}
	}

	product := &domain.Product{
		Title:        s.clean(input.Title),
		Subtitle:     s.clean(input.Subtitle),
		Price:        strings.TrimSpace(input.Price),
		PriceNumeric: *input.PriceNumeric,
		Rating:       input.Rating,
		ReviewCount:  input.ReviewCount,
		Color:        strings.ToLower(s.clean(input.Color)),
		Category:     domain.Category(strings.ToLower(strings.TrimSpace(input.Category))),
		Collection:   s.clean(input.Collection),
		ClothingType: strings.ToLower(s.clean(input.ClothingType)),
		ProductSize:  s.clean(input.ProductSize),
		ProductColor: s.clean(input.ProductColor),
		Image:        strings.TrimSpace(input.Image),
		Images:       input.Images,
	}

	fieldErrs := product.Validate()
	if product.Title == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "title", Message: "is required"})
	}
	if product.Image == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "image", Message: "is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	product.Normalize()
	return product, nil
}

// clean strips markup and undoes the entity escaping the policy applies to the
// text it keeps, so "&" and quotes are stored as typed. Entity-encoded markup
// decodes into tags, so passes repeat until the text is stable.
func (s *productService) clean(v string) string {
	for range maxCleanPasses {
		next := html.UnescapeString(s.policy.Sanitize(v))
		if next == v {
			return strings.TrimSpace(v)
		}
		v = next
	}
	return strings.TrimSpace(s.policy.Sanitize(v))
}
