package service

import (
	"context"
	"fmt"

	"tableside/internal/domain"
)

type CartServiceInterface interface {
	AddLine(ctx context.Context, restaurantID, tableNo, foodID, quantity int) ([]domain.CartLine, error)
	RemoveLine(ctx context.Context, restaurantID, tableNo, index int) ([]domain.CartLine, error)
	Lines(ctx context.Context, restaurantID, tableNo int) ([]domain.CartLine, error)
	Total(ctx context.Context, restaurantID, tableNo int) (float64, error)
}

type CartService struct {
	carts   CartRepository
	catalog CatalogRepository
}

func NewCartService(carts CartRepository, catalog CatalogRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// AddLine appends a new line. Repeated adds of the same food produce
// repeated lines; lines are removed individually by index.
func (s *CartService) AddLine(ctx context.Context, restaurantID, tableNo, foodID, quantity int) ([]domain.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	exists, err := s.catalog.TableExists(restaurantID, tableNo)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTableNotFound
	}

	food, err := s.catalog.GetFood(restaurantID, foodID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !food.IsAvailable {
		return nil, fmt.Errorf("%w: food is not available", ErrValidation)
	}

	lines, err := s.carts.Get(ctx, restaurantID, tableNo)
	if err != nil {
		return nil, err
	}

	imageURL := food.ImageURL
	if imageURL == "" {
		imageURL = domain.PlaceholderImageURL
	}
	lines = append(lines, domain.CartLine{
		FoodID:   food.ID,
		Title:    food.Name,
		Price:    food.Price,
		Quantity: quantity,
		ImageURL: imageURL,
		Category: food.Category,
	})

	if err := s.carts.Save(ctx, restaurantID, tableNo, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// RemoveLine drops exactly one line by index, preserving the relative order
// of the rest. An emptied basket is stored as empty, not re-seeded.
func (s *CartService) RemoveLine(ctx context.Context, restaurantID, tableNo, index int) ([]domain.CartLine, error) {
	lines, err := s.carts.Get(ctx, restaurantID, tableNo)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(lines) {
		return nil, fmt.Errorf("%w: cart line index out of range", ErrValidation)
	}

	lines = append(lines[:index], lines[index+1:]...)
	if err := s.carts.Save(ctx, restaurantID, tableNo, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *CartService) Lines(ctx context.Context, restaurantID, tableNo int) ([]domain.CartLine, error) {
	return s.carts.Get(ctx, restaurantID, tableNo)
}

func (s *CartService) Total(ctx context.Context, restaurantID, tableNo int) (float64, error) {
	lines, err := s.carts.Get(ctx, restaurantID, tableNo)
	if err != nil {
		return 0, err
	}
	return CartTotal(lines), nil
}

func CartTotal(lines []domain.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

var _ CartServiceInterface = (*CartService)(nil)
