package api

import (
	"encoding/json"
	"time"
)

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`

	// Some endpoints report their payload at the top level instead of
	// under data: verify-token uses "user", the order endpoints use
	// "order", and the availability toggle uses "menu_item".
	User     json.RawMessage `json:"user"`
	Order    json.RawMessage `json:"order"`
	MenuItem json.RawMessage `json:"menu_item"`
}

// User is the profile the backend reports for an account.
type User struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      string     `json:"role"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	AvatarURL string     `json:"avatar_url"`
	Gender    *string    `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// RoleAdmin is the role string that grants back-office access.
const RoleAdmin = "admin"

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials are the login parameters for regular and admin sign-in.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginData is the payload of a successful login/register/admin-login call.
type LoginData struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileUpdate carries the changed profile fields. Nil pointers are omitted
// so the backend only touches what the user edited.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// PasswordChange carries a password rotation request.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MenuItem is one orderable product.
type MenuItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuItemInput is the admin payload for creating or updating a menu item.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderLine is one submitted line of an order: the cart projection shape.
type OrderLine struct {
	MenuID    uint    `json:"menu_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderRequest is the checkout payload.
type OrderRequest struct {
	Items       []OrderLine `json:"items"`
	TotalPrice  float64     `json:"total_price"`
	Notes       string      `json:"notes,omitempty"`
	UsePoints   bool        `json:"use_points,omitempty"`
	PointsToUse int         `json:"points_to_use,omitempty"`

	// Reference is a client-generated idempotency marker for the submission.
	Reference string `json:"reference,omitempty"`
}

// OrderItem is one line of a placed order, with the price snapshot.
type OrderItem struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	MenuID    uint      `json:"menu_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	MenuItem  *MenuItem `json:"menu_item,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID                    uint        `json:"id"`
	UserID                *uint       `json:"user_id"`
	OrderNumber           string      `json:"order_number"`
	PickupCode            string      `json:"pickup_code"`
	TotalPrice            float64     `json:"total_price"`
	Status                OrderStatus `json:"status"`
	Notes                 string      `json:"notes"`
	CustomerPointsUsed    int         `json:"customer_points_used"`
	PointsDeductionAmount float64     `json:"points_deduction_amount"`
	PointsEarned          int         `json:"points_earned"`
	OriginalTotalPrice    float64     `json:"original_total_price"`
	FinalPaymentAmount    float64     `json:"final_payment_amount"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
	OrderItems            []OrderItem `json:"order_items,omitempty"`
}

// TopProduct is one entry of the best-sellers report.
type TopProduct struct {
	MenuID   uint    `json:"menu_id"`
	MenuName string  `json:"menu_name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DailyOrderStat is one day of the order trend report.
type DailyOrderStat struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// OrderStats is the admin order statistics report.
type OrderStats struct {
	TotalOrders    int            `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	TodayOrders    int            `json:"today_orders"`
	TodayRevenue   float64        `json:"today_revenue"`
	StatusCounts   map[string]int `json:"status_counts"`
	PendingCount   int            `json:"pending_count"`
	PreparingCount int            `json:"preparing_count"`
	ReadyCount     int            `json:"ready_count"`
	CompletedCount int            `json:"completed_count"`
	CancelledCount int            `json:"cancelled_count"`
	TotalUsers     int            `json:"total_users"`

	TopProducts []TopProduct     `json:"top_products"`
	DailyOrders []DailyOrderStat `json:"daily_orders"`
}

// MemberLevel is a loyalty tier.
type MemberLevel string

const (
	MemberLevelBronze   MemberLevel = "bronze"
	MemberLevelSilver   MemberLevel = "silver"
	MemberLevelGold     MemberLevel = "gold"
	MemberLevelPlatinum MemberLevel = "platinum"
)

// NextLevelInfo describes progress towards the next loyalty tier.
type NextLevelInfo struct {
	Name           string `json:"name"`
	RequiredPoints int    `json:"required_points"`
	PointsNeeded   int    `json:"points_needed"`
}

// LevelBenefits lists the perks of the current tier.
type LevelBenefits struct {
	PointsEarningRate float64  `json:"points_earning_rate"`
	MaxDiscountRate   float64  `json:"max_discount_rate"`
	Perks             []string `json:"perks,omitempty"`
}

// PointsInfo is the loyalty account summary.
type PointsInfo struct {
	TotalPoints     int            `json:"total_points"`
	AvailablePoints int            `json:"available_points"`
	FrozenPoints    int            `json:"frozen_points"`
	LifetimePoints  int            `json:"lifetime_points"`
	MemberLevel     MemberLevel    `json:"member_level"`
	NextLevel       *NextLevelInfo `json:"next_level,omitempty"`
	LevelBenefits   *LevelBenefits `json:"level_benefits,omitempty"`
}

// PointTransaction is one loyalty ledger entry. A positive points change
// is an accrual, a negative one a redemption.
type PointTransaction struct {
	ID              uint      `json:"id"`
	TransactionType string    `json:"transaction_type"`
	PointsChange    int       `json:"points_change"`
	PointsBalance   int       `json:"points_balance"`
	Description     string    `json:"description"`
	OrderID         *uint     `json:"order_id,omitempty"`
	OrderNumber     string    `json:"order_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionPage is a paginated slice of the loyalty ledger.
type TransactionPage struct {
	Transactions []PointTransaction `json:"transactions"`
	Page         int                `json:"page"`
	PerPage      int                `json:"per_page"`
	Total        int                `json:"total"`
	Pages        int                `json:"pages"`
}

// DiscountQuote is the backend's answer to a points-deduction calculation.
// The backend clamps points_to_use to what the member level and balance
// actually allow, so the echoed value may be lower than requested.
type DiscountQuote struct {
	OriginalTotal         float64 `json:"original_total"`
	MaxUsablePoints       int     `json:"max_usable_points"`
	PointsToUse           int     `json:"points_to_use"`
	PointsValue           float64 `json:"points_value"`
	FinalTotal            float64 `json:"final_total"`
	EstimatedPointsEarned int     `json:"estimated_points_earned"`
	UserPointsBalance     int     `json:"user_points_balance"`
	PointsAfterUsage      int     `json:"points_after_usage"`
}

// Category is one entry of the menu category list.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UserPage is a paginated slice of accounts for the admin back office.
type UserPage struct {
	Users   []User `json:"users"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Total   int    `json:"total"`
}

// menuPage is the paginated wrapper list endpoints put under data.
type menuPage struct {
	Items   []MenuItem `json:"items"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Pages   int        `json:"pages"`
}

// orderPage is the paginated wrapper the order list endpoints put under data.
type orderPage struct {
	Orders  []Order `json:"orders"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Pages   int     `json:"pages"`
}
