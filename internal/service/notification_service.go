package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tableside/internal/domain"
)

const notificationDedupWindow = 24 * time.Hour

type NotificationServiceInterface interface {
	CheckSubscription(ctx context.Context, restaurantID int) error
	Broadcast(restaurantID int, title, message string) error
	List(restaurantID int) ([]domain.Notification, error)
	MarkRead(restaurantID, notificationID int) error
}

// NotificationService derives advisory notifications from subscription state
// and deduplicates them per (tenant, type) within a 24-hour window.
type NotificationService struct {
	notifications NotificationRepository
	restaurants   RestaurantRepository
	now           func() time.Time
}

func NewNotificationService(notifications NotificationRepository, restaurants RestaurantRepository) *NotificationService {
	return &NotificationService{notifications: notifications, restaurants: restaurants, now: time.Now}
}

// CheckSubscription emits at most one expiry notification per tenant per
// window. Priority escalates as the remaining days shrink. A plan state is
// advisory only; it never blocks the admin.
func (s *NotificationService) CheckSubscription(ctx context.Context, restaurantID int) error {
	rest, err := s.restaurants.GetRestaurant(restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	status := PlanStatus(rest, s.now())

	var typ domain.NotificationType
	var title, message, priority string
	switch status.State {
	case domain.PlanExpired:
		typ = domain.NotificationSubscriptionExpired
		title = "Subscription expired"
		message = "Your subscription has expired. Renew to keep full access."
		priority = "urgent"
	case domain.PlanExpiring:
		typ = domain.NotificationSubscriptionExpiry
		title = "Subscription expiring soon"
		message = fmt.Sprintf("Your subscription expires in %d day(s).", status.DaysRemaining)
		if status.DaysRemaining == 1 {
			priority = "urgent"
		} else {
			priority = "high"
		}
	default:
		return nil
	}

	recent, err := s.notifications.HasRecentNotification(restaurantID, typ, notificationDedupWindow)
	if err != nil {
		return err
	}
	if recent {
		return nil
	}

	return s.notifications.CreateNotification(&domain.Notification{
		RestaurantID: restaurantID,
		Type:         typ,
		Title:        title,
		Message:      message,
		Priority:     priority,
	})
}

// Broadcast inserts an operator announcement; broadcasts are not deduplicated.
func (s *NotificationService) Broadcast(restaurantID int, title, message string) error {
	if title == "" || message == "" {
		return fmt.Errorf("%w: title and message are required", ErrValidation)
	}
	return s.notifications.CreateNotification(&domain.Notification{
		RestaurantID: restaurantID,
		Type:         domain.NotificationAdminBroadcast,
		Title:        title,
		Message:      message,
		Priority:     "normal",
	})
}

func (s *NotificationService) List(restaurantID int) ([]domain.Notification, error) {
	return s.notifications.ListNotifications(restaurantID)
}

func (s *NotificationService) MarkRead(restaurantID, notificationID int) error {
	return s.notifications.MarkNotificationRead(restaurantID, notificationID)
}

var _ NotificationServiceInterface = (*NotificationService)(nil)
