package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "tableside/internal/api/http"
	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"
	"tableside/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(h *httpapi.Handler) *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func TestHealthRoute(t *testing.T) {
	router := newRouter(&httpapi.Handler{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestGetSubscriptionRoute(t *testing.T) {
	restaurants := mocks.NewRestaurantRepository(t)
	restaurants.On("GetRestaurant", 1).
		Return(restaurantWithPlan(time.Now().Add(-10*24*time.Hour)), nil).Once()

	h := &httpapi.Handler{Subscriptions: service.NewSubscriptionService(restaurants)}
	router := newRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/1/subscription", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var status domain.SubscriptionStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, domain.PlanActive, status.State)
	assert.Equal(t, 20, status.DaysRemaining)
}

func TestBlockRouteRequiresOperatorToken(t *testing.T) {
	repo := mocks.NewRestaurantRepository(t)
	sessions := mocks.NewSessionStore(t)
	entitlements := service.NewEntitlementService(repo, sessions, newFakeBlockBus(), fixedIDs{id: "t"})

	h := &httpapi.Handler{Entitlements: entitlements, OperatorToken: "op-secret"}
	router := newRouter(h)

	body := bytes.NewBufferString(`{"reason":"non-payment"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/restaurants/1/block", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	repo.On("SetBlocked", 1, true, "non-payment", mock.AnythingOfType("time.Time")).Return(nil).Once()
	sessions.On("DeleteTenant", mock.Anything, 1).Return(0, nil).Once()

	body = bytes.NewBufferString(`{"reason":"non-payment"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/restaurants/1/block", body)
	req.Header.Set("X-Operator-Token", "op-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateRestaurantRoute(t *testing.T) {
	repo := mocks.NewRestaurantRepository(t)
	sessions := mocks.NewSessionStore(t)
	entitlements := service.NewEntitlementService(repo, sessions, newFakeBlockBus(), fixedIDs{id: "t"})

	sessions.On("Lookup", mock.Anything, "token-1").Return(1, nil).Once()
	repo.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, Name: "Spice Route"}, nil).Twice()
	repo.On("UpdateRestaurantProfile", 1, mock.MatchedBy(func(upd *domain.RestaurantUpdate) bool {
		return upd.Name != nil && *upd.Name == "Spice Route Deluxe" && upd.Phone == nil
	})).Return(nil).Once()

	h := &httpapi.Handler{
		Restaurants:  service.NewRestaurantService(repo),
		Entitlements: entitlements,
	}
	router := newRouter(h)

	body := bytes.NewBufferString(`{"name":"Spice Route Deluxe"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/restaurants/1", body)
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateRestaurantRouteRejectsForeignSession(t *testing.T) {
	repo := mocks.NewRestaurantRepository(t)
	sessions := mocks.NewSessionStore(t)
	entitlements := service.NewEntitlementService(repo, sessions, newFakeBlockBus(), fixedIDs{id: "t"})

	sessions.On("Lookup", mock.Anything, "token-2").Return(2, nil).Once()
	repo.On("GetRestaurant", 2).Return(&domain.Restaurant{ID: 2}, nil).Once()

	h := &httpapi.Handler{Entitlements: entitlements}
	router := newRouter(h)

	body := bytes.NewBufferString(`{"name":"Hijacked"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/restaurants/1", body)
	req.Header.Set("Authorization", "Bearer token-2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRouteRejectsForeignSession(t *testing.T) {
	repo := mocks.NewRestaurantRepository(t)
	sessions := mocks.NewSessionStore(t)
	entitlements := service.NewEntitlementService(repo, sessions, newFakeBlockBus(), fixedIDs{id: "t"})

	// The token resolves to tenant 2 but the path names tenant 1.
	sessions.On("Lookup", mock.Anything, "token-2").Return(2, nil).Once()
	repo.On("GetRestaurant", 2).Return(&domain.Restaurant{ID: 2}, nil).Once()

	h := &httpapi.Handler{Entitlements: entitlements}
	router := newRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/1/orders", nil)
	req.Header.Set("Authorization", "Bearer token-2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRouteRejectsMissingSession(t *testing.T) {
	repo := mocks.NewRestaurantRepository(t)
	sessions := mocks.NewSessionStore(t)
	entitlements := service.NewEntitlementService(repo, sessions, newFakeBlockBus(), fixedIDs{id: "t"})

	sessions.On("Lookup", mock.Anything, "").Return(0, service.ErrInvalidSession).Once()

	h := &httpapi.Handler{Entitlements: entitlements}
	router := newRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutRouteBadJSON(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	checkout := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "c"})

	h := &httpapi.Handler{Checkout: checkout}
	router := newRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/restaurants/1/tables/4/checkout", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuyNowRoute(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	catalog := mocks.NewCatalogRepository(t)
	checkout := service.NewCheckoutService(orders, catalog, storage.NewMemoryCartRepository(), nil, nil, fixedIDs{id: "commit-3"})

	catalog.On("GetFood", 1, 7).Return(biryani(), nil).Once()
	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	orders.On("CommitCheckout", mock.Anything, 1, 4, "commit-3", mock.Anything, mock.Anything, domain.StatusPending).
		Return(&storage.CheckoutResult{OrderIDs: []int{31}, ReceiptID: 9}, nil).Once()

	h := &httpapi.Handler{Checkout: checkout}
	router := newRouter(h)

	body := bytes.NewBufferString(`{"table_no":4,"food_id":7,"quantity":1,"customer":{"name":"Ravi","phone":"9998887771"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/restaurants/1/orders", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var receipt service.CheckoutReceipt
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, []int{31}, receipt.OrderIDs)
}

func TestCartRoutes(t *testing.T) {
	catalog := mocks.NewCatalogRepository(t)
	carts := service.NewCartService(storage.NewMemoryCartRepository(), catalog)

	catalog.On("TableExists", 1, 4).Return(true, nil).Once()
	catalog.On("GetFood", 1, 7).Return(biryani(), nil).Once()

	h := &httpapi.Handler{Carts: carts}
	router := newRouter(h)

	body := bytes.NewBufferString(`{"food_id":7,"quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/restaurants/1/tables/4/cart", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Lines []domain.CartLine `json:"lines"`
		Total float64           `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Lines, 1)
	assert.Equal(t, 500.0, payload.Total)

	req = httptest.NewRequest(http.MethodGet, "/api/restaurants/1/tables/4/cart", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Lines, 1)
}
