// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db           *gorm.DB
	config       *config.Config
	cartService  *cart.Service
	emailService *email.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, emailService *email.Service) *Service {
	return &Service{
		db:           db,
		config:       cfg,
		cartService:  cartService,
		emailService: emailService,
	}
}

// PlaceOrderOutcome describes the result of a checkout attempt. When a
// precondition fails the order is not created and RedirectTo points the
// client at the step that needs completing.
type PlaceOrderOutcome struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to"`
	OrderID    uint   `json:"order_id,omitempty"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
	Query string `form:"q"`
}

// OrderListResponse represents a page of orders
type OrderListResponse struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	TotalPages int     `json:"total_pages"`
	Page       int     `json:"page"`
}

// SalesByMonth is one row of the monthly sales breakdown
type SalesByMonth struct {
	Month      string          `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// Summary aggregates storefront figures for the admin dashboard
type Summary struct {
	OrdersCount   int64           `json:"orders_count"`
	ProductsCount int64           `json:"products_count"`
	UsersCount    int64           `json:"users_count"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	SalesByMonth  []SalesByMonth  `json:"sales_by_month"`
	LatestOrders  []Order         `json:"latest_orders"`
}

// Create places an order from the caller's cart. It checks the checkout
// preconditions in a fixed sequence and, when all pass, creates the
// order and its line items and clears the cart in one transaction.
func (s *Service) Create(userID uint) (*PlaceOrderOutcome, error) {
	userCart, err := s.cartService.GetCart(&userID, "")
	if err != nil && !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}
	if userCart == nil || userCart.IsEmpty() {
		return &PlaceOrderOutcome{
			Success:    false,
			Message:    "Your cart is empty",
			RedirectTo: "/cart",
		}, nil
	}

	var buyer user.User
	if err := s.db.Where("id = ?", userID).First(&buyer).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if !buyer.HasAddress() {
		return &PlaceOrderOutcome{
			Success:    false,
			Message:    "No shipping address",
			RedirectTo: "/shipping-address",
		}, nil
	}
	if !buyer.HasPaymentMethod() {
		return &PlaceOrderOutcome{
			Success:    false,
			Message:    "No payment method",
			RedirectTo: "/payment-method",
		}, nil
	}

	order := &Order{
		UserID:        userID,
		PaymentMethod: PaymentMethod(buyer.PaymentMethod),
		ShippingAddress: Address{
			FullName:      buyer.Address.FullName,
			StreetAddress: buyer.Address.StreetAddress,
			City:          buyer.Address.City,
			PostalCode:    buyer.Address.PostalCode,
			Country:       buyer.Address.Country,
		},
		ItemsPrice:    userCart.ItemsPrice,
		ShippingPrice: userCart.ShippingPrice,
		TaxPrice:      userCart.TaxPrice,
		TotalPrice:    userCart.TotalPrice,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range userCart.Items {
			orderItem := OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Slug:      item.Slug,
				Image:     item.Image,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		if err := cart.ClearInTx(tx, userCart.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PlaceOrderOutcome{
		Success:    true,
		Message:    "Order created",
		RedirectTo: fmt.Sprintf("/order/%d", order.ID),
		OrderID:    order.ID,
	}, nil
}

// GetOrder retrieves an order with its items and the buyer's name.
func (s *Service) GetOrder(orderID uint) (*Order, error) {
	var order Order
	err := s.db.Preload("Items").
		Select("orders.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Where("orders.id = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

// GetUserOrders retrieves the caller's own orders, newest first.
func (s *Service) GetUserOrders(userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &OrderListResponse{
		Orders:     orders,
		Total:      total,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
		Page:       req.Page,
	}, nil
}

// GetOrders retrieves all orders for the admin console with the buyer
// name populated, optionally filtered by buyer name.
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).
		Joins("LEFT JOIN users ON users.id = orders.user_id")
	if req.Query != "" && req.Query != "all" {
		query = query.Where("LOWER(users.name) LIKE ?", "%"+strings.ToLower(req.Query)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Select("orders.*, users.name AS user_name").
		Order("orders.created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &OrderListResponse{
		Orders:     orders,
		Total:      total,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
		Page:       req.Page,
	}, nil
}

// MarkPaid settles an order: it records the payment result, stamps
// isPaid/paidAt and decrements each product's stock by the quantity
// sold, all within one transaction. Settlement of an already-paid
// order is rejected with ErrAlreadyPaid.
//
// The stock decrement is unguarded: by the time settlement runs the
// money has already moved, so an oversold product goes negative and is
// surfaced through the admin console rather than failing the payment.
func (s *Service) MarkPaid(orderID uint, result *PaymentResult) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CanMarkPaid(); err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			err := tx.Model(&product.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to adjust stock for product %d: %w", item.ProductID, err)
			}
		}

		updates := map[string]interface{}{
			"is_paid": true,
			"paid_at": now,
		}
		if result != nil {
			updates["payment_result"] = result
		}
		if err := tx.Model(&Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.IsPaid = true
	order.PaidAt = &now
	if result != nil {
		order.PaymentResult = *result
	}

	s.sendReceipt(order)

	return order, nil
}

// MarkPaidManually settles a cash-on-delivery order from the admin
// console, with no gateway payment result attached.
func (s *Service) MarkPaidManually(orderID uint) (*Order, error) {
	return s.MarkPaid(orderID, nil)
}

// MarkDelivered records delivery of a paid order.
func (s *Service) MarkDelivered(orderID uint) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CanMarkDelivered(); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_delivered": true,
		"delivered_at": now,
	}
	if err := s.db.Model(&Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	order.IsDelivered = true
	order.DeliveredAt = &now
	return order, nil
}

// RecordGatewayOrder stores the gateway's order id against an unpaid
// order so the later capture can be matched to it.
func (s *Service) RecordGatewayOrder(orderID uint, gatewayOrderID string) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CanMarkPaid(); err != nil {
		return nil, err
	}

	result := PaymentResult{ID: gatewayOrderID, Status: "", PricePaid: "0"}
	if err := s.db.Model(&Order{}).Where("id = ?", order.ID).Update("payment_result", &result).Error; err != nil {
		return nil, fmt.Errorf("failed to record gateway order: %w", err)
	}

	order.PaymentResult = result
	return order, nil
}

// DeleteOrder removes an order and its items.
func (s *Service) DeleteOrder(orderID uint) error {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&Order{}, order.ID).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// GetSummary aggregates the dashboard figures: entity counts, total
// sales, a month-by-month sales breakdown and the latest orders.
func (s *Service) GetSummary() (*Summary, error) {
	summary := &Summary{}

	if err := s.db.Model(&Order{}).Count(&summary.OrdersCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&product.Product{}).Count(&summary.ProductsCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&user.User{}).Count(&summary.UsersCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var totalSales struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Scan(&totalSales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	summary.TotalSales = totalSales.Total

	err = s.db.Raw(`
		SELECT to_char(created_at, 'MM/YY') AS month, SUM(total_price) AS total_sales
		FROM orders
		GROUP BY to_char(created_at, 'MM/YY')
		ORDER BY min(created_at) DESC
	`).Scan(&summary.SalesByMonth).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sales: %w", err)
	}

	err = s.db.
		Select("orders.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Limit(6).
		Find(&summary.LatestOrders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve latest orders: %w", err)
	}

	return summary, nil
}

// sendReceipt emails the purchase receipt in the background. A send
// failure is logged, never surfaced: the order is already settled.
func (s *Service) sendReceipt(order *Order) {
	if s.emailService == nil {
		return
	}

	var buyer user.User
	if err := s.db.Where("id = ?", order.UserID).First(&buyer).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Warn("Receipt not sent: failed to load buyer")
		return
	}

	items := make([]email.ReceiptItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, email.ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		})
	}

	paidAt := time.Now()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}

	data := email.PurchaseReceiptData{
		SiteName:        s.config.App.Name,
		SiteURL:         s.config.App.BaseURL,
		UserName:        buyer.Name,
		UserEmail:       buyer.Email,
		OrderID:         order.ID,
		OrderDate:       paidAt.Format("January 2, 2006"),
		PaymentMethod:   string(order.PaymentMethod),
		Items:           items,
		ItemsPrice:      order.ItemsPrice.StringFixed(2),
		ShippingPrice:   order.ShippingPrice.StringFixed(2),
		TaxPrice:        order.TaxPrice.StringFixed(2),
		TotalPrice:      order.TotalPrice.StringFixed(2),
		ShippingName:    order.ShippingAddress.FullName,
		ShippingStreet:  order.ShippingAddress.StreetAddress,
		ShippingCity:    order.ShippingAddress.City,
		ShippingPostal:  order.ShippingAddress.PostalCode,
		ShippingCountry: order.ShippingAddress.Country,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.emailService.SendPurchaseReceipt(ctx, data); err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).
				Warn("Failed to send purchase receipt email")
		}
	}()
}
