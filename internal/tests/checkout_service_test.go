package tests

import (
	"context"
	"errors"
	"testing"

	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"
	"tableside/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() string { return g.id }

func seedCart(t *testing.T, carts service.CartRepository, lines []domain.CartLine) {
	t.Helper()
	assert.NoError(t, carts.Save(context.Background(), 1, 4, lines))
}

func TestCommitCartScenario(t *testing.T) {
	ctx := context.Background()
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	publisher := mocks.NewOrderPublisher(t)
	carts := storage.NewMemoryCartRepository()

	svc := service.NewCheckoutService(orders, catalog, carts, publisher, nil, fixedIDs{id: "commit-1"})

	basket := []domain.CartLine{{FoodID: 7, Title: "Biryani", Price: 250, Quantity: 2}}
	seedCart(t, carts, basket)

	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-1", mock.AnythingOfType("*domain.Customer"),
		basket, domain.StatusPaid).
		Return(&storage.CheckoutResult{OrderIDs: []int{11}, CustomerID: 5, ReceiptID: 3}, nil).Once()
	publisher.On("PublishOrder", mock.Anything, mock.MatchedBy(func(event domain.OrderEvent) bool {
		return event.Type == "order_created" && event.Total == 500 && event.ReceiptID == 3
	})).Return(nil).Once()

	receipt, err := svc.CommitCart(ctx, 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, "")
	assert.NoError(t, err)
	assert.Equal(t, []int{11}, receipt.OrderIDs)
	assert.Equal(t, 3, receipt.ReceiptID)

	// The basket is cleared only after a successful commit.
	remaining, err := carts.Get(ctx, 1, 4)
	assert.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCommitCartValidationLeavesBasket(t *testing.T) {
	ctx := context.Background()
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	carts := storage.NewMemoryCartRepository()

	svc := service.NewCheckoutService(orders, catalog, carts, nil, nil, fixedIDs{id: "commit-1"})

	basket := []domain.CartLine{{FoodID: 7, Title: "Biryani", Price: 250, Quantity: 2}}
	seedCart(t, carts, basket)

	tests := []struct {
		name     string
		customer service.CustomerInput
	}{
		{"missing_name", service.CustomerInput{Phone: "9998887771"}},
		{"missing_phone", service.CustomerInput{Name: "Ravi"}},
		{"missing_both", service.CustomerInput{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.CommitCart(ctx, 1, 4, testCase.customer, "")
			assert.ErrorIs(t, err, service.ErrValidation)

			lines, err := carts.Get(ctx, 1, 4)
			assert.NoError(t, err)
			assert.Len(t, lines, 1, "failed validation must not clear the basket")
		})
	}
}

func TestCommitCartWriteFailureLeavesBasket(t *testing.T) {
	ctx := context.Background()
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	carts := storage.NewMemoryCartRepository()

	svc := service.NewCheckoutService(orders, catalog, carts, nil, nil, fixedIDs{id: "commit-1"})

	basket := []domain.CartLine{{FoodID: 7, Title: "Biryani", Price: 250, Quantity: 2}}
	seedCart(t, carts, basket)

	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-1", mock.Anything, basket, domain.StatusPaid).
		Return(nil, errors.New("connection reset")).Once()

	_, err := svc.CommitCart(ctx, 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, "")
	assert.Error(t, err)

	lines, err := carts.Get(ctx, 1, 4)
	assert.NoError(t, err)
	assert.Len(t, lines, 1, "a failed write must leave the basket intact for retry")
}

func TestCommitCartEmptyBasket(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "commit-1"})

	_, err := svc.CommitCart(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, "")
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestBuyNowStartsPending(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "commit-2"})

	catalog.On("GetFood", 1, 7).Return(biryani(), nil).Once()
	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-2", mock.Anything, mock.Anything, domain.StatusPending).
		Return(&storage.CheckoutResult{OrderIDs: []int{21}, ReceiptID: 8}, nil).Once()

	receipt, err := svc.BuyNow(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, 7, 1, "")
	assert.NoError(t, err)
	assert.Equal(t, []int{21}, receipt.OrderIDs)
}

func TestBuyNowRejectsUnavailableFood(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "x"})

	unavailable := biryani()
	unavailable.IsAvailable = false
	catalog.On("GetFood", 1, 7).Return(unavailable, nil).Once()

	_, err := svc.BuyNow(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, 7, 1, "")
	assert.ErrorIs(t, err, service.ErrValidation)
	orders.AssertNotCalled(t, "CommitCheckout",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuyNowAppliesPlaceholderImage(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "commit-4"})

	catalog.On("GetFood", 1, 7).Return(biryani(), nil).Once()
	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-4", mock.Anything,
		mock.MatchedBy(func(lines []domain.CartLine) bool {
			return len(lines) == 1 && lines[0].ImageURL == domain.PlaceholderImageURL
		}), domain.StatusPending).
		Return(&storage.CheckoutResult{OrderIDs: []int{41}, ReceiptID: 10}, nil).Once()

	_, err := svc.BuyNow(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, 7, 1, "")
	assert.NoError(t, err)
}

func TestCommitWritesUnderBoundedContext(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	carts := storage.NewMemoryCartRepository()
	svc := service.NewCheckoutService(orders, catalog, carts, nil, nil, fixedIDs{id: "commit-5"})

	basket := []domain.CartLine{{FoodID: 7, Title: "Biryani", Price: 250, Quantity: 2}}
	seedCart(t, carts, basket)

	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return hasDeadline
	}), 1, 4, "commit-5", mock.Anything, basket, domain.StatusPaid).
		Return(&storage.CheckoutResult{OrderIDs: []int{51}, ReceiptID: 12}, nil).Once()

	_, err := svc.CommitCart(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, "")
	assert.NoError(t, err)
}

func TestAfterCommitSkipsRenderWhenReceiptLoadFails(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	renderer := mocks.NewReceiptRenderer(t)
	carts := storage.NewMemoryCartRepository()
	svc := service.NewCheckoutService(orders, catalog, carts, nil, renderer, fixedIDs{id: "commit-6"})

	basket := []domain.CartLine{{FoodID: 7, Title: "Biryani", Price: 250, Quantity: 2}}
	seedCart(t, carts, basket)

	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-6", mock.Anything, basket, domain.StatusPaid).
		Return(&storage.CheckoutResult{OrderIDs: []int{61}, ReceiptID: 13}, nil).Once()
	orders.On("GetReceipt", 1, 13).Return(nil, errors.New("connection reset")).Once()

	receipt, err := svc.CommitCart(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 13, receipt.ReceiptID)
	renderer.AssertNotCalled(t, "Render", mock.Anything)
}

func TestCommitReplaySkipsSideEffects(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	publisher := mocks.NewOrderPublisher(t)
	carts := storage.NewMemoryCartRepository()

	svc := service.NewCheckoutService(orders, catalog, carts, publisher, nil, fixedIDs{id: "unused"})

	basket := []domain.CartLine{{FoodID: 7, Title: "Biryani", Price: 250, Quantity: 2}}
	seedCart(t, carts, basket)

	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-9", mock.Anything, basket, domain.StatusPaid).
		Return(&storage.CheckoutResult{OrderIDs: []int{11}, ReceiptID: 3, Replayed: true}, nil).Once()

	receipt, err := svc.CommitCart(context.Background(), 1, 4, service.CustomerInput{Name: "Ravi", Phone: "9998887771"}, "commit-9")
	assert.NoError(t, err)
	assert.True(t, receipt.Replayed)
	publisher.AssertNotCalled(t, "PublishOrder", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       domain.OrderStatus
		next          domain.OrderStatus
		expectUpdate  bool
		expectedError error
	}{
		{"kitchen_accepts", domain.StatusPending, domain.StatusPreparing, true, nil},
		{"serves_ready_order", domain.StatusReady, domain.StatusServed, true, nil},
		{"admin_cancels", domain.StatusPreparing, domain.StatusCancelled, true, nil},
		{"paid_is_terminal", domain.StatusPaid, domain.StatusPreparing, false, service.ErrInvalidTransition},
		{"no_skipping", domain.StatusPending, domain.StatusServed, false, service.ErrInvalidTransition},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderRepository(t)
			catalog := mocks.NewCatalogRepository(t)
			svc := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "x"})

			orders.On("GetOrder", 1, 11).Return(&domain.Order{ID: 11, RestaurantID: 1, Status: testCase.current}, nil).Once()
			if testCase.expectUpdate {
				orders.On("UpdateOrderStatus", 1, 11, testCase.next).Return(nil).Once()
			}

			err := svc.UpdateOrderStatus(1, 11, testCase.next)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReceiptTotalMatchesBasket(t *testing.T) {
	basket := []domain.CartLine{
		{FoodID: 1, Title: "Samosa", Price: 40, Quantity: 3},
		{FoodID: 2, Title: "Biryani", Price: 250, Quantity: 2},
		{FoodID: 3, Title: "Lassi", Price: 60, Quantity: 1},
	}
	total := service.CartTotal(basket)
	assert.Equal(t, 680.0, total)

	receipt := domain.Receipt{Total: total}
	sum := 0.0
	for _, line := range basket {
		receipt.Items = append(receipt.Items, domain.ReceiptItem{
			FoodID: line.FoodID, Title: line.Title, Price: line.Price,
			Quantity: line.Quantity, Subtotal: line.Subtotal(),
		})
		sum += line.Subtotal()
	}
	assert.Equal(t, receipt.Total, sum)
}
