package domain

import "time"

const PlanPeriodDays = 30

const PlaceholderImageURL = "/static/img/food-placeholder.png"

type Restaurant struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Plan          *Plan      `json:"plan,omitempty"`
	IsBlocked     bool       `json:"is_blocked"`
	BlockedAt     *time.Time `json:"blocked_at,omitempty"`
	BlockedReason string     `json:"blocked_reason,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type PlanState string

const (
	PlanNone     PlanState = "none"
	PlanActive   PlanState = "active"
	PlanExpiring PlanState = "expiring"
	PlanExpired  PlanState = "expired"
)

type SubscriptionStatus struct {
	State         PlanState  `json:"state"`
	DaysRemaining int        `json:"days_remaining"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
}

type Food struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	Stock        int       `json:"stock"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Table struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Number       int       `json:"number"`
	Capacity     int       `json:"capacity"`
	IsOccupied   bool      `json:"is_occupied"`
	CreatedAt    time.Time `json:"created_at"`
}

type Staff struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone"`
	PhotoURL     string    `json:"photo_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartLine is ephemeral: it lives in the cart store, never in Postgres.
type CartLine struct {
	FoodID   int     `json:"food_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"image_url"`
	Category string  `json:"category"`
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is a single line-item record, not a basket aggregate: one row per
// cart line.
type Order struct {
	ID            int         `json:"id"`
	RestaurantID  int         `json:"restaurant_id"`
	TableNo       int         `json:"table_no"`
	FoodID        int         `json:"food_id"`
	Title         string      `json:"title"`
	Price         float64     `json:"price"`
	Quantity      int         `json:"quantity"`
	Total         float64     `json:"total"`
	CustomerID    int         `json:"customer_id,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Customer struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	TableNo      int       `json:"table_no"`
	CreatedAt    time.Time `json:"created_at"`
}

// Receipt is the durable snapshot of a completed checkout. Orders may be
// deleted later; billing history is read from here.
type Receipt struct {
	ID            int           `json:"id"`
	RestaurantID  int           `json:"restaurant_id"`
	CommitID      string        `json:"commit_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	TableNo       int           `json:"table_no"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

type ReceiptItem struct {
	FoodID   int     `json:"food_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type NotificationType string

const (
	NotificationSubscriptionExpiry  NotificationType = "subscription_expiry"
	NotificationSubscriptionExpired NotificationType = "subscription_expired"
	NotificationAdminBroadcast      NotificationType = "admin_broadcast"
)

type Notification struct {
	ID           int              `json:"id"`
	RestaurantID int              `json:"restaurant_id"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Priority     string           `json:"priority"`
	Read         bool             `json:"read"`
	CreatedAt    time.Time        `json:"created_at"`
}

// BlockEvent is published on the tenant's entitlement channel whenever the
// block flag changes.
type BlockEvent struct {
	RestaurantID int       `json:"restaurant_id"`
	Blocked      bool      `json:"blocked"`
	Reason       string    `json:"reason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderEvent is the Kafka message emitted once per committed checkout.
type OrderEvent struct {
	Type         string    `json:"type"`
	RestaurantID int       `json:"restaurant_id"`
	TableNo      int       `json:"table_no"`
	OrderIDs     []int     `json:"order_ids"`
	FoodIDs      []int     `json:"food_ids"`
	ReceiptID    int       `json:"receipt_id"`
	Total        float64   `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}
