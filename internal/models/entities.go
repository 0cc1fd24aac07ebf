package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents an account in the system
type User struct {
	ID             int64     `json:"id" db:"id"`
	FullName       string    `json:"fullName" db:"full_name"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"password"`
	Role           string    `json:"role" db:"role"`
	ProfilePicture string    `json:"profilePicture" db:"profile_picture"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	ActivationCode string    `json:"-" db:"activation_code"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Category groups events
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Banner is a promotional banner shown on the landing page
type Banner struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Image     string    `json:"image" db:"image"`
	IsShow    bool      `json:"isShow" db:"is_show"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Event represents an event tickets are sold for
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	CategoryID  int64     `json:"category" db:"category_id"`
	Description string    `json:"description" db:"description"`
	Banner      string    `json:"banner" db:"banner"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	IsOnline    bool      `json:"isOnline" db:"is_online"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured"`
	IsPublish   bool      `json:"isPublish" db:"is_publish"`
	Region      int64     `json:"region" db:"region"`
	Address     string    `json:"address" db:"address"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Ticket is a ticket type for an event and the authoritative stock ledger.
// Quantity is the remaining stock; Reserved counts units held by open
// (not yet completed) orders. Quantity is only ever decremented on order
// completion and never goes negative.
type Ticket struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int64           `json:"quantity" db:"quantity"`
	Reserved    int64           `json:"-" db:"reserved"`
	EventID     int64           `json:"event" db:"event_id"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Available returns the stock not yet held by open orders.
func (t *Ticket) Available() int64 {
	return t.Quantity - t.Reserved
}

// Order is one buyer's reservation against one ticket type.
// OrderCode is the buyer-facing identifier, distinct from the storage key.
// Total is computed once at creation time and never changes.
type Order struct {
	ID        int64           `json:"-" db:"id"`
	OrderCode string          `json:"orderId" db:"order_code"`
	CreatedBy int64           `json:"createdBy" db:"created_by"`
	TicketID  int64           `json:"ticket" db:"ticket_id"`
	Quantity  int64           `json:"quantity" db:"quantity"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    OrderStatus     `json:"status" db:"status"`
	Vouchers  []Voucher       `json:"vouchers"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Voucher is a single redeemable unit issued per purchased ticket quantity
// when an order completes. Vouchers belong to exactly one order.
type Voucher struct {
	ID        int64  `json:"-" db:"id"`
	OrderID   int64  `json:"-" db:"order_id"`
	VoucherID string `json:"voucherId" db:"voucher_id"`
	IsPrint   bool   `json:"isPrint" db:"is_print"`
}
