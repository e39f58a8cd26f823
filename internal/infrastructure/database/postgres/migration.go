// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: users and products first, then the tables that
	// reference them.
	models := []interface{}{
		&user.User{},
		&product.Product{},
		&product.Review{},
		&cart.Cart{},
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_carts_user ON carts(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_carts_session ON carts(session_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_is_paid ON orders(is_paid)",
		"CREATE INDEX IF NOT EXISTS idx_orders_is_delivered ON orders(is_delivered)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedTestUser(); err != nil {
		return fmt.Errorf("failed to seed test user: %w", err)
	}

	if err := m.seedSampleProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the default admin account
func (m *Migration) seedAdminUser() error {
	var count int64
	m.db.Model(&user.User{}).Where("email = ?", "admin@example.com").Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     user.RoleAdmin,
	}
	return m.db.Create(&admin).Error
}

// seedTestUser creates a regular user for development
func (m *Migration) seedTestUser() error {
	var count int64
	m.db.Model(&user.User{}).Where("email = ?", "user@example.com").Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	testUser := user.User{
		Name:     "Jane Doe",
		Email:    "user@example.com",
		Password: string(hash),
		Role:     user.RoleUser,
		Address: user.Address{
			FullName:      "Jane Doe",
			StreetAddress: "123 Main St",
			City:          "Anytown",
			PostalCode:    "12345",
			Country:       "USA",
		},
		PaymentMethod: "PayPal",
	}
	return m.db.Create(&testUser).Error
}

// seedSampleProducts creates a small catalog for development
func (m *Migration) seedSampleProducts() error {
	var count int64
	m.db.Model(&product.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []product.Product{
		{
			Name:        "Polo Sporting Stretch Shirt",
			Slug:        "polo-sporting-stretch-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Polo",
			Description: "Classic fit, stretch cotton shirt",
			Price:       decimal.NewFromFloat(59.99),
			Stock:       5,
			IsFeatured:  true,
			Images:      product.StringList{"/images/sample-products/p1-1.jpg", "/images/sample-products/p1-2.jpg"},
		},
		{
			Name:        "Brooks Brothers Long Sleeved Shirt",
			Slug:        "brooks-brothers-long-sleeved-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Brooks Brothers",
			Description: "Timeless long sleeved shirt",
			Price:       decimal.NewFromFloat(85.90),
			Stock:       10,
			IsFeatured:  true,
			Images:      product.StringList{"/images/sample-products/p2-1.jpg", "/images/sample-products/p2-2.jpg"},
		},
		{
			Name:        "Tommy Hilfiger Classic Fit Dress Shirt",
			Slug:        "tommy-hilfiger-classic-fit-dress-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Tommy Hilfiger",
			Description: "Classic fit dress shirt in solid colors",
			Price:       decimal.NewFromFloat(99.95),
			Stock:       0,
			Images:      product.StringList{"/images/sample-products/p3-1.jpg", "/images/sample-products/p3-2.jpg"},
		},
		{
			Name:        "Calvin Klein Slim Fit Stretch Shirt",
			Slug:        "calvin-klein-slim-fit-stretch-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Calvin Klein",
			Description: "Slim fit, easy care stretch shirt",
			Price:       decimal.NewFromFloat(39.95),
			Stock:       3,
			Images:      product.StringList{"/images/sample-products/p4-1.jpg", "/images/sample-products/p4-2.jpg"},
		},
		{
			Name:        "Polo Ralph Lauren Oxford Shirt",
			Slug:        "polo-ralph-lauren-oxford-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Polo",
			Description: "Iconic oxford shirt in classic fit",
			Price:       decimal.NewFromFloat(79.99),
			Stock:       12,
			Images:      product.StringList{"/images/sample-products/p5-1.jpg", "/images/sample-products/p5-2.jpg"},
		},
		{
			Name:        "Polo Classic Pink Hoodie",
			Slug:        "polo-classic-pink-hoodie",
			Category:    "Men's Sweatshirts",
			Brand:       "Polo",
			Description: "Soft, stylish, and perfect for laid-back days",
			Price:       decimal.NewFromFloat(99.99),
			Stock:       8,
			Images:      product.StringList{"/images/sample-products/p6-1.jpg", "/images/sample-products/p6-2.jpg"},
		},
	}

	return m.db.Create(&products).Error
}
