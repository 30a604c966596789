package service

import (
	"context"
	"time"

	"tableside/internal/domain"
	"tableside/internal/storage"
)

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	GetRestaurant(id int) (*domain.Restaurant, error)
	ListRestaurants() ([]domain.Restaurant, error)
	UpdateRestaurantProfile(id int, upd *domain.RestaurantUpdate) error
	ReplacePlan(restaurantID int, plan *domain.Plan) error
	SetBlocked(restaurantID int, blocked bool, reason string, at time.Time) error
	GetAdminRestaurant(email string) (int, error)
	CreateAdmin(email string, restaurantID int) error
}

type CatalogRepository interface {
	CreateFood(food *domain.Food) error
	ListFoods(restaurantID int) ([]domain.Food, error)
	GetFood(restaurantID, foodID int) (*domain.Food, error)
	UpdateFood(restaurantID, foodID int, upd *domain.FoodUpdate) error
	DeleteFood(restaurantID, foodID int) (int64, error)
	CreateTable(table *domain.Table) error
	ListTables(restaurantID int) ([]domain.Table, error)
	TableExists(restaurantID, number int) (bool, error)
	UpdateTable(restaurantID, tableID int, upd *domain.TableUpdate) error
	DeleteTable(restaurantID, tableID int) (int64, error)
	CreateStaff(staff *domain.Staff) error
	ListStaff(restaurantID int) ([]domain.Staff, error)
	DeleteStaff(restaurantID, staffID int) (int64, error)
}

type OrderRepository interface {
	CommitCheckout(ctx context.Context, restaurantID, tableNo int, commitID string, customer *domain.Customer,
		lines []domain.CartLine, status domain.OrderStatus) (*storage.CheckoutResult, error)
	ListOrders(restaurantID int) ([]domain.Order, error)
	GetOrder(restaurantID, orderID int) (*domain.Order, error)
	UpdateOrderStatus(restaurantID, orderID int, status domain.OrderStatus) error
	DeleteOrder(restaurantID, orderID int) (int64, error)
	GetReceipt(restaurantID, receiptID int) (*domain.Receipt, error)
	ListReceipts(restaurantID int) ([]domain.Receipt, error)
}

type NotificationRepository interface {
	CreateNotification(n *domain.Notification) error
	HasRecentNotification(restaurantID int, typ domain.NotificationType, window time.Duration) (bool, error)
	ListNotifications(restaurantID int) ([]domain.Notification, error)
	MarkNotificationRead(restaurantID, notificationID int) error
}

type CartRepository interface {
	Get(ctx context.Context, restaurantID, tableNo int) ([]domain.CartLine, error)
	Save(ctx context.Context, restaurantID, tableNo int, lines []domain.CartLine) error
	Clear(ctx context.Context, restaurantID, tableNo int) error
}

type SessionStore interface {
	Create(ctx context.Context, token string, restaurantID int) error
	Lookup(ctx context.Context, token string) (int, error)
	Delete(ctx context.Context, token string) error
	DeleteTenant(ctx context.Context, restaurantID int) (int, error)
}

type BlockBus interface {
	Publish(ctx context.Context, event domain.BlockEvent) error
	Subscribe(ctx context.Context, restaurantID int) (<-chan domain.BlockEvent, func(), error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type ReceiptRenderer interface {
	Render(receipt *domain.Receipt) ([]byte, error)
}

type IdGenerator interface {
	NewID() string
}
