// internal/domain/product/review_service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ReviewService handles review business logic
type ReviewService struct {
	db    *gorm.DB
	cache *Cache
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cache *Cache) *ReviewService {
	return &ReviewService{
		db:    db,
		cache: cache,
	}
}

// UpsertReviewRequest represents review submission data
type UpsertReviewRequest struct {
	ProductID   uint   `json:"product_id"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=3"`
}

// UpsertReview creates a review, or replaces the user's existing review
// for the same product. The product's rating average and review count
// are refreshed inside the same transaction.
func (s *ReviewService) UpsertReview(userID uint, req *UpsertReviewRequest) (*Review, error) {
	var product Product
	if err := s.db.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	review := Review{
		UserID:      userID,
		ProductID:   req.ProductID,
		Rating:      req.Rating,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing Review
		result := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing)
		if result.Error == nil {
			existing.Rating = review.Rating
			existing.Title = review.Title
			existing.Description = review.Description
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
			review = existing
		} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		} else {
			return fmt.Errorf("failed to look up review: %w", result.Error)
		}

		// Refresh the denormalized rating fields on the product.
		var stats struct {
			AvgRating  float64
			NumReviews int64
		}
		if err := tx.Model(&Review{}).
			Select("COALESCE(AVG(rating), 0) as avg_rating, COUNT(*) as num_reviews").
			Where("product_id = ?", req.ProductID).
			Scan(&stats).Error; err != nil {
			return fmt.Errorf("failed to aggregate ratings: %w", err)
		}

		if err := tx.Model(&Product{}).
			Where("id = ?", req.ProductID).
			Updates(map[string]interface{}{
				"rating":      stats.AvgRating,
				"num_reviews": stats.NumReviews,
			}).Error; err != nil {
			return fmt.Errorf("failed to update product rating: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(product.Slug)
	return &review, nil
}

// GetProductReviews retrieves all reviews for a product, newest first,
// with the reviewer's display name attached.
func (s *ReviewService) GetProductReviews(productID uint) ([]Review, error) {
	var reviews []Review
	err := s.db.
		Select("reviews.*, users.name as user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// GetUserReview retrieves the review a user wrote for a product, if any.
func (s *ReviewService) GetUserReview(userID, productID uint) (*Review, error) {
	var review Review
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve review: %w", result.Error)
	}
	return &review, nil
}
