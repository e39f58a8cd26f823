// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned on a failed sign-in without
// revealing whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents sign-up data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents sign-in data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest represents profile edit data
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

// UpdateAddressRequest represents the shipping address form
type UpdateAddressRequest struct {
	FullName      string `json:"full_name" binding:"required,min=3"`
	StreetAddress string `json:"street_address" binding:"required,min=3"`
	City          string `json:"city" binding:"required,min=2"`
	PostalCode    string `json:"postal_code" binding:"required,min=2"`
	Country       string `json:"country" binding:"required,min=2"`
}

// UpdatePaymentMethodRequest represents payment method selection
type UpdatePaymentMethodRequest struct {
	Type string `json:"type" binding:"required,oneof=PayPal Stripe CashOnDelivery"`
}

// AdminUpdateUserRequest represents the admin user edit form
type AdminUpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=3"`
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// UserListRequest represents admin user list query parameters
type UserListRequest struct {
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=20"`
	Query string `form:"q"`
}

// UserListResponse represents a page of users
type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
}

// Register creates a new user account and signs it in.
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     req.Name,
		Email:    email,
		Password: hash,
		Role:     RoleUser,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user)
}

// Login authenticates a user by email and password.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(&user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// GetByID retrieves a user by id.
func (s *Service) GetByID(id uint) (*User, error) {
	var user User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the user's display name.
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateAddress stores the user's shipping address.
func (s *Service) UpdateAddress(userID uint, req *UpdateAddressRequest) (*User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Address = Address{
		FullName:      req.FullName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return user, nil
}

// UpdatePaymentMethod stores the user's selected payment method.
func (s *Service) UpdatePaymentMethod(userID uint, req *UpdatePaymentMethodRequest) (*User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.PaymentMethod = req.Type
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}
	return user, nil
}

// GetUsers retrieves users for the admin console, optionally filtered
// by a case-insensitive name search.
func (s *Service) GetUsers(req *UserListRequest) (*UserListResponse, error) {
	var users []User
	var total int64

	query := s.db.Model(&User{})
	if req.Query != "" && req.Query != "all" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(req.Query)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	return &UserListResponse{
		Users:      users,
		Total:      total,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
		Page:       req.Page,
	}, nil
}

// AdminUpdateUser updates a user's name and role.
func (s *Service) AdminUpdateUser(userID uint, req *AdminUpdateUserRequest) (*User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Role = req.Role
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(userID uint) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *Service) issueTokens(user *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.IsAdmin())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
