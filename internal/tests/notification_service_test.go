package tests

import (
	"context"
	"testing"
	"time"

	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckSubscriptionExpiring(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	restaurants.On("GetRestaurant", 1).
		Return(restaurantWithPlan(time.Now().Add(-28*24*time.Hour)), nil).Once()
	notifications.On("HasRecentNotification", 1, domain.NotificationSubscriptionExpiry, 24*time.Hour).
		Return(false, nil).Once()

	var created *domain.Notification
	notifications.On("CreateNotification", mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) { created = args.Get(0).(*domain.Notification) }).
		Return(nil).Once()

	err := svc.CheckSubscription(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.NotificationSubscriptionExpiry, created.Type)
	assert.Equal(t, "high", created.Priority)
	assert.Contains(t, created.Message, "2 day(s)")
}

func TestCheckSubscriptionLastDayIsUrgent(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	restaurants.On("GetRestaurant", 1).
		Return(restaurantWithPlan(time.Now().Add(-29*24*time.Hour)), nil).Once()
	notifications.On("HasRecentNotification", 1, domain.NotificationSubscriptionExpiry, 24*time.Hour).
		Return(false, nil).Once()

	var created *domain.Notification
	notifications.On("CreateNotification", mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) { created = args.Get(0).(*domain.Notification) }).
		Return(nil).Once()

	err := svc.CheckSubscription(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "urgent", created.Priority)
}

func TestCheckSubscriptionExpired(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	restaurants.On("GetRestaurant", 1).
		Return(restaurantWithPlan(time.Now().Add(-45*24*time.Hour)), nil).Once()
	notifications.On("HasRecentNotification", 1, domain.NotificationSubscriptionExpired, 24*time.Hour).
		Return(false, nil).Once()

	var created *domain.Notification
	notifications.On("CreateNotification", mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) { created = args.Get(0).(*domain.Notification) }).
		Return(nil).Once()

	err := svc.CheckSubscription(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.NotificationSubscriptionExpired, created.Type)
	assert.Equal(t, "urgent", created.Priority)
}

func TestCheckSubscriptionDedupWindow(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	restaurants.On("GetRestaurant", 1).
		Return(restaurantWithPlan(time.Now().Add(-28*24*time.Hour)), nil).Once()
	notifications.On("HasRecentNotification", 1, domain.NotificationSubscriptionExpiry, 24*time.Hour).
		Return(true, nil).Once()

	// A second check within the window inserts nothing.
	err := svc.CheckSubscription(context.Background(), 1)
	assert.NoError(t, err)
	notifications.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestCheckSubscriptionHealthyPlanIsQuiet(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	restaurants.On("GetRestaurant", 1).
		Return(restaurantWithPlan(time.Now().Add(-5*24*time.Hour)), nil).Once()

	err := svc.CheckSubscription(context.Background(), 1)
	assert.NoError(t, err)
	notifications.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestCheckSubscriptionNoPlanIsQuiet(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	restaurants.On("GetRestaurant", 1).
		Return(&domain.Restaurant{ID: 1, Name: "Spice Route"}, nil).Once()

	err := svc.CheckSubscription(context.Background(), 1)
	assert.NoError(t, err)
	notifications.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestBroadcast(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	var created *domain.Notification
	notifications.On("CreateNotification", mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) { created = args.Get(0).(*domain.Notification) }).
		Return(nil).Once()

	err := svc.Broadcast(1, "Maintenance window", "The platform restarts at midnight.")
	assert.NoError(t, err)
	assert.Equal(t, domain.NotificationAdminBroadcast, created.Type)
	assert.Equal(t, "normal", created.Priority)
}

func TestBroadcastRequiresTitleAndMessage(t *testing.T) {
	notifications := mocks.NewNotificationRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	svc := service.NewNotificationService(notifications, restaurants)

	err := svc.Broadcast(1, "", "body")
	assert.ErrorIs(t, err, service.ErrValidation)

	err = svc.Broadcast(1, "title", "")
	assert.ErrorIs(t, err, service.ErrValidation)
}
