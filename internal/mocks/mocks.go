package mocks

import (
	"context"
	"time"

	"tableside/internal/domain"
	"tableside/internal/storage"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	var rest *domain.Restaurant
	if args.Get(0) != nil {
		rest = args.Get(0).(*domain.Restaurant)
	}
	return rest, args.Error(1)
}

func (m *RestaurantRepository) ListRestaurants() ([]domain.Restaurant, error) {
	args := m.Called()
	var restaurants []domain.Restaurant
	if args.Get(0) != nil {
		restaurants = args.Get(0).([]domain.Restaurant)
	}
	return restaurants, args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurantProfile(id int, upd *domain.RestaurantUpdate) error {
	return m.Called(id, upd).Error(0)
}

func (m *RestaurantRepository) ReplacePlan(restaurantID int, plan *domain.Plan) error {
	return m.Called(restaurantID, plan).Error(0)
}

func (m *RestaurantRepository) SetBlocked(restaurantID int, blocked bool, reason string, at time.Time) error {
	return m.Called(restaurantID, blocked, reason, at).Error(0)
}

func (m *RestaurantRepository) GetAdminRestaurant(email string) (int, error) {
	args := m.Called(email)
	return args.Int(0), args.Error(1)
}

func (m *RestaurantRepository) CreateAdmin(email string, restaurantID int) error {
	return m.Called(email, restaurantID).Error(0)
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogRepository) CreateFood(food *domain.Food) error {
	return m.Called(food).Error(0)
}

func (m *CatalogRepository) ListFoods(restaurantID int) ([]domain.Food, error) {
	args := m.Called(restaurantID)
	var foods []domain.Food
	if args.Get(0) != nil {
		foods = args.Get(0).([]domain.Food)
	}
	return foods, args.Error(1)
}

func (m *CatalogRepository) GetFood(restaurantID, foodID int) (*domain.Food, error) {
	args := m.Called(restaurantID, foodID)
	var food *domain.Food
	if args.Get(0) != nil {
		food = args.Get(0).(*domain.Food)
	}
	return food, args.Error(1)
}

func (m *CatalogRepository) UpdateFood(restaurantID, foodID int, upd *domain.FoodUpdate) error {
	return m.Called(restaurantID, foodID, upd).Error(0)
}

func (m *CatalogRepository) DeleteFood(restaurantID, foodID int) (int64, error) {
	args := m.Called(restaurantID, foodID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepository) CreateTable(table *domain.Table) error {
	return m.Called(table).Error(0)
}

func (m *CatalogRepository) ListTables(restaurantID int) ([]domain.Table, error) {
	args := m.Called(restaurantID)
	var tables []domain.Table
	if args.Get(0) != nil {
		tables = args.Get(0).([]domain.Table)
	}
	return tables, args.Error(1)
}

func (m *CatalogRepository) TableExists(restaurantID, number int) (bool, error) {
	args := m.Called(restaurantID, number)
	return args.Bool(0), args.Error(1)
}

func (m *CatalogRepository) UpdateTable(restaurantID, tableID int, upd *domain.TableUpdate) error {
	return m.Called(restaurantID, tableID, upd).Error(0)
}

func (m *CatalogRepository) DeleteTable(restaurantID, tableID int) (int64, error) {
	args := m.Called(restaurantID, tableID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepository) CreateStaff(staff *domain.Staff) error {
	return m.Called(staff).Error(0)
}

func (m *CatalogRepository) ListStaff(restaurantID int) ([]domain.Staff, error) {
	args := m.Called(restaurantID)
	var members []domain.Staff
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Staff)
	}
	return members, args.Error(1)
}

func (m *CatalogRepository) DeleteStaff(restaurantID, staffID int) (int64, error) {
	args := m.Called(restaurantID, staffID)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) CommitCheckout(ctx context.Context, restaurantID, tableNo int, commitID string, customer *domain.Customer,
	lines []domain.CartLine, status domain.OrderStatus) (*storage.CheckoutResult, error) {
	args := m.Called(ctx, restaurantID, tableNo, commitID, customer, lines, status)
	var result *storage.CheckoutResult
	if args.Get(0) != nil {
		result = args.Get(0).(*storage.CheckoutResult)
	}
	return result, args.Error(1)
}

func (m *OrderRepository) ListOrders(restaurantID int) ([]domain.Order, error) {
	args := m.Called(restaurantID)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) GetOrder(restaurantID, orderID int) (*domain.Order, error) {
	args := m.Called(restaurantID, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(restaurantID, orderID int, status domain.OrderStatus) error {
	return m.Called(restaurantID, orderID, status).Error(0)
}

func (m *OrderRepository) DeleteOrder(restaurantID, orderID int) (int64, error) {
	args := m.Called(restaurantID, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) GetReceipt(restaurantID, receiptID int) (*domain.Receipt, error) {
	args := m.Called(restaurantID, receiptID)
	var receipt *domain.Receipt
	if args.Get(0) != nil {
		receipt = args.Get(0).(*domain.Receipt)
	}
	return receipt, args.Error(1)
}

func (m *OrderRepository) ListReceipts(restaurantID int) ([]domain.Receipt, error) {
	args := m.Called(restaurantID)
	var receipts []domain.Receipt
	if args.Get(0) != nil {
		receipts = args.Get(0).([]domain.Receipt)
	}
	return receipts, args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func NewNotificationRepository(t testingT) *NotificationRepository {
	m := &NotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *NotificationRepository) CreateNotification(n *domain.Notification) error {
	return m.Called(n).Error(0)
}

func (m *NotificationRepository) HasRecentNotification(restaurantID int, typ domain.NotificationType, window time.Duration) (bool, error) {
	args := m.Called(restaurantID, typ, window)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) ListNotifications(restaurantID int) ([]domain.Notification, error) {
	args := m.Called(restaurantID)
	var notifications []domain.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]domain.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepository) MarkNotificationRead(restaurantID, notificationID int) error {
	return m.Called(restaurantID, notificationID).Error(0)
}

type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t testingT) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionStore) Create(ctx context.Context, token string, restaurantID int) error {
	return m.Called(ctx, token, restaurantID).Error(0)
}

func (m *SessionStore) Lookup(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *SessionStore) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *SessionStore) DeleteTenant(ctx context.Context, restaurantID int) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t testingT) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type ReceiptRenderer struct {
	mock.Mock
}

func NewReceiptRenderer(t testingT) *ReceiptRenderer {
	m := &ReceiptRenderer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReceiptRenderer) Render(receipt *domain.Receipt) ([]byte, error) {
	args := m.Called(receipt)
	var pdf []byte
	if args.Get(0) != nil {
		pdf = args.Get(0).([]byte)
	}
	return pdf, args.Error(1)
}
