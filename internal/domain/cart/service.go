// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/pricing"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db           *gorm.DB
	productCache *product.Cache
	rules        pricing.Rules
}

// NewService creates a new cart service
func NewService(db *gorm.DB, productCache *product.Cache, rules pricing.Rules) *Service {
	return &Service{
		db:           db,
		productCache: productCache,
		rules:        rules,
	}
}

// AddItemRequest represents add to cart request
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// MutationResult carries the updated cart and a user-facing message.
type MutationResult struct {
	Cart    *Cart  `json:"cart"`
	Message string `json:"message"`
}

// GetCart retrieves the cart for a user or guest session. Returns
// ErrCartNotFound when the owner has no cart yet.
func (s *Service) GetCart(userID *uint, sessionID string) (*Cart, error) {
	var cart Cart

	query := s.db
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		if sessionID == "" {
			return nil, ErrCartNotFound
		}
		query = query.Where("session_id = ? AND user_id IS NULL", sessionID)
	}

	if err := query.First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return &cart, nil
}

// AddItem adds one unit of a product to the owner's cart, creating the
// cart on first use. Prices are recomputed and persisted with the item
// list in a single write.
func (s *Service) AddItem(userID *uint, sessionID string, req *AddItemRequest) (*MutationResult, error) {
	prod, err := s.loadProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	item := Item{
		ProductID: prod.ID,
		Name:      prod.Name,
		Slug:      prod.Slug,
		Quantity:  req.Quantity,
		Price:     prod.Price,
	}
	if len(prod.Images) > 0 {
		item.Image = prod.Images[0]
	}

	cart, err := s.GetCart(userID, sessionID)
	if err != nil {
		if !errors.Is(err, ErrCartNotFound) {
			return nil, err
		}
		// First add creates the cart.
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if !prod.InStock(item.Quantity) {
			return nil, ErrInsufficientStock
		}

		cart = &Cart{
			UserID:    userID,
			SessionID: sessionID,
			Items:     Items{item},
		}
		if userID != nil {
			cart.SessionID = ""
		}
		s.applyTotals(cart)

		if err := s.db.Create(cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}

		s.productCache.Invalidate(prod.Slug)
		return &MutationResult{
			Cart:    cart,
			Message: fmt.Sprintf("%s added to cart", prod.Name),
		}, nil
	}

	existed := cart.Items.Find(prod.ID) >= 0

	items, err := addItem(cart.Items, item, prod.Stock)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	s.applyTotals(cart)

	if err := s.persist(cart); err != nil {
		return nil, err
	}

	s.productCache.Invalidate(prod.Slug)

	verb := "added to"
	if existed {
		verb = "updated in"
	}
	return &MutationResult{
		Cart:    cart,
		Message: fmt.Sprintf("%s %s cart", prod.Name, verb),
	}, nil
}

// RemoveItem removes one unit of a product from the owner's cart,
// dropping the line when the last unit goes.
func (s *Service) RemoveItem(userID *uint, sessionID string, productID uint) (*MutationResult, error) {
	prod, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(userID, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := removeItem(cart.Items, productID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	s.applyTotals(cart)

	if err := s.persist(cart); err != nil {
		return nil, err
	}

	s.productCache.Invalidate(prod.Slug)
	return &MutationResult{
		Cart:    cart,
		Message: fmt.Sprintf("%s removed from cart", prod.Name),
	}, nil
}

// AdoptGuestCart transfers a guest session cart to a user on sign-in.
// If the user already owns a cart the guest cart is left alone.
func (s *Service) AdoptGuestCart(userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if _, err := s.GetCart(&userID, ""); err == nil {
		return nil
	} else if !errors.Is(err, ErrCartNotFound) {
		return err
	}

	guestCart, err := s.GetCart(nil, sessionID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil
		}
		return err
	}

	return s.db.Model(guestCart).
		Updates(map[string]interface{}{
			"user_id":    userID,
			"session_id": "",
		}).Error
}

// ClearInTx empties a cart and zeroes its derived prices inside an
// existing transaction. Used by order creation.
func ClearInTx(tx *gorm.DB, cartID uint) error {
	return tx.Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"items":          Items{},
			"items_price":    decimal.Zero,
			"shipping_price": decimal.Zero,
			"tax_price":      decimal.Zero,
			"total_price":    decimal.Zero,
		}).Error
}

// Private helpers

func (s *Service) loadProduct(productID uint) (*product.Product, error) {
	var prod product.Product
	if err := s.db.Where("id = ?", productID).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

func (s *Service) applyTotals(cart *Cart) {
	lines := make([]pricing.Item, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = pricing.Item{Price: item.Price, Quantity: item.Quantity}
	}

	totals := s.rules.Calculate(lines)
	cart.ItemsPrice = totals.ItemsPrice
	cart.ShippingPrice = totals.ShippingPrice
	cart.TaxPrice = totals.TaxPrice
	cart.TotalPrice = totals.TotalPrice
}

// persist writes the full item list and all derived prices in a single
// UPDATE. Concurrent mutations of the same cart serialize on the row;
// the last full list wins.
func (s *Service) persist(cart *Cart) error {
	err := s.db.Model(&Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"items":          cart.Items,
			"items_price":    cart.ItemsPrice,
			"shipping_price": cart.ShippingPrice,
			"tax_price":      cart.TaxPrice,
			"total_price":    cart.TotalPrice,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
