package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is the envelope every endpoint answers with. Data is null on
// errors, the message is always human-readable.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// PageMeta describes the position of a page inside the full result set
type PageMeta struct {
	Current   int   `json:"current"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// PaginatedResponse is the envelope for list endpoints
type PaginatedResponse struct {
	Message    string   `json:"message"`
	Data       any      `json:"data"`
	Pagination PageMeta `json:"pagination"`
}

// DefaultPageLimit is applied when the client sends no limit
const DefaultPageLimit = 10

// PageQuery carries the common listing parameters (1-indexed page)
type PageQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}

// Normalize clamps the paging parameters to sane values
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
}

// Offset returns the row offset for the normalized page
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages computes ceil(total/limit) with limit clamped to at least 1.
func TotalPages(total int64, limit int) int64 {
	if limit < 1 {
		limit = 1
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// Meta builds the pagination meta block for a result set of `total` rows
func (q PageQuery) Meta(total int64) PageMeta {
	return PageMeta{
		Current:   q.Page,
		Total:     total,
		TotalPage: TotalPages(total, q.Limit),
	}
}

// Auth

// RegisterRequest - POST /api/auth/register
type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest - POST /api/auth/login; identifier is username or email
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// ActivationRequest - POST /api/auth/activation
type ActivationRequest struct {
	Code string `json:"code" binding:"required"`
}

// Categories

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// Banners

type CreateBannerRequest struct {
	Title  string `json:"title" binding:"required"`
	Image  string `json:"image" binding:"required"`
	IsShow *bool  `json:"isShow"`
}

type UpdateBannerRequest struct {
	Title  *string `json:"title"`
	Image  *string `json:"image"`
	IsShow *bool   `json:"isShow"`
}

// Events

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Category    int64     `json:"category" binding:"required"`
	Description string    `json:"description"`
	Banner      string    `json:"banner"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	IsOnline    bool      `json:"isOnline"`
	IsFeatured  bool      `json:"isFeatured"`
	IsPublish   bool      `json:"isPublish"`
	Region      int64     `json:"region"`
	Address     string    `json:"address"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Category    *int64     `json:"category"`
	Description *string    `json:"description"`
	Banner      *string    `json:"banner"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsOnline    *bool      `json:"isOnline"`
	IsFeatured  *bool      `json:"isFeatured"`
	IsPublish   *bool      `json:"isPublish"`
	Region      *int64     `json:"region"`
	Address     *string    `json:"address"`
}

// EventFilter narrows the events listing. Boolean flags only filter when
// the client explicitly sent them.
type EventFilter struct {
	Search     string
	Category   *int64
	IsOnline   *bool
	IsFeatured *bool
	IsPublish  *bool
}

// Tickets

type CreateTicketRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Event       int64           `json:"event" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

type UpdateTicketRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity"`
	Description *string          `json:"description"`
}

// Orders

// CreateOrderRequest - POST /api/orders; the buyer comes from the auth
// context, never from the body.
type CreateOrderRequest struct {
	Ticket   int64 `json:"ticket" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}
