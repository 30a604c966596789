package service

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/domain"
	"tableside/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type CheckoutReceipt struct {
	OrderIDs  []int `json:"order_ids"`
	ReceiptID int   `json:"receipt_id"`
	Replayed  bool  `json:"replayed,omitempty"`
}

type CheckoutServiceInterface interface {
	CommitCart(ctx context.Context, restaurantID, tableNo int, customer CustomerInput, commitID string) (*CheckoutReceipt, error)
	BuyNow(ctx context.Context, restaurantID, tableNo int, customer CustomerInput, foodID, quantity int, commitID string) (*CheckoutReceipt, error)
	ListOrders(restaurantID int) ([]domain.Order, error)
	UpdateOrderStatus(restaurantID, orderID int, next domain.OrderStatus) error
	DeleteOrder(restaurantID, orderID int) error
	GetReceipt(restaurantID, receiptID int) (*domain.Receipt, error)
	ListReceipts(restaurantID int) ([]domain.Receipt, error)
	RenderReceiptPDF(restaurantID, receiptID int) ([]byte, error)
}

// CheckoutService turns a confirmed basket (or a single buy-now selection)
// into persisted orders, a customer and a receipt. The writes share one
// transaction; the basket is cleared only after the transaction commits, so
// a failed attempt can be retried from the same basket.
type CheckoutService struct {
	orders    OrderRepository
	catalog   CatalogRepository
	carts     CartRepository
	publisher OrderPublisher
	renderer  ReceiptRenderer
	ids       IdGenerator
	validate  *validator.Validate
	timeout   time.Duration
}

func NewCheckoutService(orders OrderRepository, catalog CatalogRepository, carts CartRepository,
	publisher OrderPublisher, renderer ReceiptRenderer, ids IdGenerator) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		catalog:   catalog,
		carts:     carts,
		publisher: publisher,
		renderer:  renderer,
		ids:       ids,
		validate:  validator.New(),
		timeout:   10 * time.Second,
	}
}

// CommitCart commits the table's basket. Payment is captured before this is
// called, so the orders are created in paid state.
func (s *CheckoutService) CommitCart(ctx context.Context, restaurantID, tableNo int, customer CustomerInput, commitID string) (*CheckoutReceipt, error) {
	lines, err := s.carts.Get(ctx, restaurantID, tableNo)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	receipt, err := s.commit(ctx, restaurantID, tableNo, customer, lines, domain.FlowCart, commitID)
	if err != nil {
		return nil, err
	}

	// Clear only after the commit succeeded; a write failure leaves the
	// basket intact for a manual retry.
	if err := s.carts.Clear(ctx, restaurantID, tableNo); err != nil {
		log.Warn().Err(err).Int("restaurant_id", restaurantID).Int("table_no", tableNo).
			Msg("failed to clear cart after checkout")
	}
	return receipt, nil
}

// BuyNow commits a single selection straight from the catalog. The order
// starts pending and matures through the kitchen chain.
func (s *CheckoutService) BuyNow(ctx context.Context, restaurantID, tableNo int, customer CustomerInput, foodID, quantity int, commitID string) (*CheckoutReceipt, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	food, err := s.catalog.GetFood(restaurantID, foodID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !food.IsAvailable {
		return nil, fmt.Errorf("%w: food is not available", ErrValidation)
	}

	imageURL := food.ImageURL
	if imageURL == "" {
		imageURL = domain.PlaceholderImageURL
	}
	line := domain.CartLine{
		FoodID:   food.ID,
		Title:    food.Name,
		Price:    food.Price,
		Quantity: quantity,
		ImageURL: imageURL,
		Category: food.Category,
	}
	return s.commit(ctx, restaurantID, tableNo, customer, []domain.CartLine{line}, domain.FlowBuyNow, commitID)
}

func (s *CheckoutService) commit(ctx context.Context, restaurantID, tableNo int, customer CustomerInput,
	lines []domain.CartLine, flow domain.CheckoutFlow, commitID string) (*CheckoutReceipt, error) {
	if err := s.validate.Struct(customer); err != nil {
		return nil, fmt.Errorf("%w: customer name and phone are required", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity < 1 || line.Price <= 0 {
			return nil, fmt.Errorf("%w: invalid cart line for %q", ErrValidation, line.Title)
		}
	}

	exists, err := s.catalog.TableExists(restaurantID, tableNo)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTableNotFound
	}

	if commitID == "" {
		commitID = s.ids.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record := &domain.Customer{Name: customer.Name, Phone: customer.Phone}
	result, err := s.orders.CommitCheckout(ctx, restaurantID, tableNo, commitID, record, lines, domain.InitialStatus(flow))
	if err != nil {
		return nil, fmt.Errorf("checkout write failed: %w", err)
	}

	if !result.Replayed {
		s.afterCommit(ctx, restaurantID, tableNo, result, lines)
	}

	return &CheckoutReceipt{
		OrderIDs:  result.OrderIDs,
		ReceiptID: result.ReceiptID,
		Replayed:  result.Replayed,
	}, nil
}

// afterCommit publishes the order event and renders the PDF from the stored
// snapshot. Both are advisory: failures are logged, never propagated.
func (s *CheckoutService) afterCommit(ctx context.Context, restaurantID, tableNo int, result *storage.CheckoutResult, lines []domain.CartLine) {
	foodIDs := make([]int, 0, len(lines))
	for _, line := range lines {
		foodIDs = append(foodIDs, line.FoodID)
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:         "order_created",
			RestaurantID: restaurantID,
			TableNo:      tableNo,
			OrderIDs:     result.OrderIDs,
			FoodIDs:      foodIDs,
			ReceiptID:    result.ReceiptID,
			Total:        CartTotal(lines),
			Timestamp:    time.Now().UTC(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			log.Warn().Err(err).Int("restaurant_id", restaurantID).Msg("failed to publish order event")
		}
	}

	if s.renderer != nil {
		receipt, err := s.orders.GetReceipt(restaurantID, result.ReceiptID)
		if err != nil {
			log.Warn().Err(err).Int("receipt_id", result.ReceiptID).Msg("failed to load receipt for PDF rendering")
			return
		}
		if _, err := s.renderer.Render(receipt); err != nil {
			log.Warn().Err(err).Int("receipt_id", result.ReceiptID).Msg("failed to render receipt PDF")
		}
	}
}

func (s *CheckoutService) ListOrders(restaurantID int) ([]domain.Order, error) {
	return s.orders.ListOrders(restaurantID)
}

func (s *CheckoutService) UpdateOrderStatus(restaurantID, orderID int, next domain.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	order, err := s.orders.GetOrder(restaurantID, orderID)
	if err != nil {
		return ErrNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}
	return s.orders.UpdateOrderStatus(restaurantID, orderID, next)
}

// DeleteOrder is idempotent; the receipt keeps the billing history.
func (s *CheckoutService) DeleteOrder(restaurantID, orderID int) error {
	_, err := s.orders.DeleteOrder(restaurantID, orderID)
	return err
}

func (s *CheckoutService) GetReceipt(restaurantID, receiptID int) (*domain.Receipt, error) {
	receipt, err := s.orders.GetReceipt(restaurantID, receiptID)
	if err != nil {
		return nil, ErrNotFound
	}
	return receipt, nil
}

func (s *CheckoutService) ListReceipts(restaurantID int) ([]domain.Receipt, error) {
	return s.orders.ListReceipts(restaurantID)
}

func (s *CheckoutService) RenderReceiptPDF(restaurantID, receiptID int) ([]byte, error) {
	receipt, err := s.orders.GetReceipt(restaurantID, receiptID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.renderer.Render(receipt)
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
