// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product lookup misses.
var ErrProductNotFound = errors.New("product not found")

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	cache  *Cache
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cache *Cache, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		cache:  cache,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=12"`
	Query     string `form:"q"`
	Category  string `form:"category"`
	Price     string `form:"price"`  // "min-max" range, e.g. "51-100"
	Rating    string `form:"rating"` // minimum rating
	Sort      string `form:"sort"`   // newest, lowest, highest, top-rated, lowest-rated
	Featured  *bool  `form:"featured"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string   `json:"name" binding:"required,min=3"`
	Slug        string   `json:"slug" binding:"required,min=3"`
	Category    string   `json:"category" binding:"required,min=3"`
	Brand       string   `json:"brand" binding:"required,min=3"`
	Description string   `json:"description" binding:"required,min=3"`
	Price       string   `json:"price" binding:"required"`
	Stock       int      `json:"stock" binding:"min=0"`
	Images      []string `json:"images" binding:"required,min=1"`
	IsFeatured  bool     `json:"is_featured"`
	Banner      string   `json:"banner"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Stock       *int     `json:"stock"`
	Images      []string `json:"images"`
	IsFeatured  *bool    `json:"is_featured"`
	Banner      *string  `json:"banner"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CategoryCount represents a category with its product count
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{})

	// Apply filters
	if req.Query != "" && req.Query != "all" {
		search := "%" + strings.ToLower(req.Query) + "%"
		query = query.Where("LOWER(name) LIKE ?", search)
	}

	if req.Category != "" && req.Category != "all" {
		query = query.Where("category = ?", req.Category)
	}

	if req.Price != "" && req.Price != "all" {
		bounds := strings.SplitN(req.Price, "-", 2)
		if len(bounds) == 2 {
			min, errMin := decimal.NewFromString(bounds[0])
			max, errMax := decimal.NewFromString(bounds[1])
			if errMin == nil && errMax == nil {
				query = query.Where("price >= ? AND price <= ?", min, max)
			}
		}
	}

	if req.Rating != "" && req.Rating != "all" {
		if minRating, err := decimal.NewFromString(req.Rating); err == nil {
			query = query.Where("rating >= ?", minRating)
		}
	}

	if req.Featured != nil {
		query = query.Where("is_featured = ?", *req.Featured)
	}

	// Count total records
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	query = query.Order(s.buildOrderClause(req.Sort))

	// Apply pagination
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &ProductResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// GetLatestProducts retrieves the most recently added products
func (s *Service) GetLatestProducts(limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 4
	}

	var products []Product
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve latest products: %w", err)
	}
	return products, nil
}

// GetFeaturedProducts retrieves featured products with banners
func (s *Service) GetFeaturedProducts(limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 4
	}

	var products []Product
	if err := s.db.Where("is_featured = ?", true).
		Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve featured products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// GetProductBySlug retrieves a single product by slug, serving from the
// product page cache when possible.
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	if cached, err := s.cache.Get(slug); err == nil && cached != nil {
		return cached, nil
	}

	var product Product
	result := s.db.Where("slug = ?", slug).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	s.cache.Set(&product)
	return &product, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", req.Price, err)
	}

	// Slugs are unique
	var existing Product
	if err := s.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with slug '%s' already exists", req.Slug)
	}

	product := &Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       price.Round(2),
		Stock:       req.Stock,
		Images:      req.Images,
		IsFeatured:  req.IsFeatured,
		Banner:      req.Banner,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", *req.Price, err)
		}
		product.Price = price.Round(2)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Banner != nil {
		product.Banner = *req.Banner
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(product.Slug)
	return product, nil
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.cache.Invalidate(product.Slug)
	return nil
}

// GetCategories retrieves distinct categories with product counts
func (s *Service) GetCategories() ([]CategoryCount, error) {
	var categories []CategoryCount
	err := s.db.Model(&Product{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("category ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

func (s *Service) buildOrderClause(sort string) string {
	switch sort {
	case "lowest":
		return "price ASC"
	case "highest":
		return "price DESC"
	case "top-rated":
		return "rating DESC"
	case "lowest-rated":
		return "rating ASC"
	default:
		return "created_at DESC"
	}
}
