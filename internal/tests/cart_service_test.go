package tests

import (
	"context"
	"testing"

	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"
	"tableside/internal/storage"

	"github.com/stretchr/testify/assert"
)

func biryani() *domain.Food {
	return &domain.Food{ID: 7, RestaurantID: 1, Name: "Biryani", Price: 250, Category: "mains", IsAvailable: true}
}

func TestCartAddLine(t *testing.T) {
	ctx := context.Background()
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCartService(storage.NewMemoryCartRepository(), catalog)

	catalog.On("TableExists", 1, 4).Return(true, nil).Twice()
	catalog.On("GetFood", 1, 7).Return(biryani(), nil).Twice()

	lines, err := svc.AddLine(ctx, 1, 4, 7, 2)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 500.0, service.CartTotal(lines))

	// A repeated add appends a second line instead of merging quantities.
	lines, err = svc.AddLine(ctx, 1, 4, 7, 1)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, 750.0, service.CartTotal(lines))
}

func TestCartAddLineUnknownTable(t *testing.T) {
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCartService(storage.NewMemoryCartRepository(), catalog)

	catalog.On("TableExists", 1, 99).Return(false, nil).Once()

	_, err := svc.AddLine(context.Background(), 1, 99, 7, 1)
	assert.ErrorIs(t, err, service.ErrTableNotFound)
}

func TestCartAddLineInvalidQuantity(t *testing.T) {
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCartService(storage.NewMemoryCartRepository(), catalog)

	_, err := svc.AddLine(context.Background(), 1, 4, 7, 0)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCartRemoveLinePreservesOrder(t *testing.T) {
	ctx := context.Background()
	catalog := mocks.NewCatalogRepository(t)
	carts := storage.NewMemoryCartRepository()
	svc := service.NewCartService(carts, catalog)

	seed := []domain.CartLine{
		{FoodID: 1, Title: "Samosa", Price: 40, Quantity: 3},
		{FoodID: 2, Title: "Biryani", Price: 250, Quantity: 1},
		{FoodID: 3, Title: "Lassi", Price: 60, Quantity: 2},
	}
	assert.NoError(t, carts.Save(ctx, 1, 4, seed))

	lines, err := svc.RemoveLine(ctx, 1, 4, 1)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, "Samosa", lines[0].Title)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Lassi", lines[1].Title)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestCartRemoveLastLineLeavesEmptyBasket(t *testing.T) {
	ctx := context.Background()
	catalog := mocks.NewCatalogRepository(t)
	carts := storage.NewMemoryCartRepository()
	svc := service.NewCartService(carts, catalog)

	assert.NoError(t, carts.Save(ctx, 1, 4, []domain.CartLine{{FoodID: 1, Title: "Samosa", Price: 40, Quantity: 1}}))

	lines, err := svc.RemoveLine(ctx, 1, 4, 0)
	assert.NoError(t, err)
	assert.Empty(t, lines)

	total, err := svc.Total(ctx, 1, 4)
	assert.NoError(t, err)
	assert.Zero(t, total)
}

func TestCartRemoveLineOutOfRange(t *testing.T) {
	catalog := mocks.NewCatalogRepository(t)
	svc := service.NewCartService(storage.NewMemoryCartRepository(), catalog)

	_, err := svc.RemoveLine(context.Background(), 1, 4, 0)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCartIsolationAcrossTablesAndTenants(t *testing.T) {
	ctx := context.Background()
	carts := storage.NewMemoryCartRepository()

	assert.NoError(t, carts.Save(ctx, 1, 4, []domain.CartLine{{FoodID: 1, Title: "Samosa", Price: 40, Quantity: 1}}))

	other, err := carts.Get(ctx, 1, 5)
	assert.NoError(t, err)
	assert.Empty(t, other)

	other, err = carts.Get(ctx, 2, 4)
	assert.NoError(t, err)
	assert.Empty(t, other)
}
