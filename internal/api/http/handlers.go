package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tableside/internal/domain"
	"tableside/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Restaurants   service.RestaurantServiceInterface
	Catalog       service.CatalogServiceInterface
	Carts         service.CartServiceInterface
	Checkout      service.CheckoutServiceInterface
	Subscriptions service.SubscriptionServiceInterface
	Entitlements  service.EntitlementServiceInterface
	Notifications service.NotificationServiceInterface
	Analytics     *service.AnalyticsService

	// OperatorToken guards the platform-operator endpoints (block/unblock,
	// tenant directory, broadcasts).
	OperatorToken string
}

func NewHandler(
	restaurants service.RestaurantServiceInterface,
	catalog service.CatalogServiceInterface,
	carts service.CartServiceInterface,
	checkout service.CheckoutServiceInterface,
	subscriptions service.SubscriptionServiceInterface,
	entitlements service.EntitlementServiceInterface,
	notifications service.NotificationServiceInterface,
) *Handler {
	return &Handler{
		Restaurants:   restaurants,
		Catalog:       catalog,
		Carts:         carts,
		Checkout:      checkout,
		Subscriptions: subscriptions,
		Entitlements:  entitlements,
		Notifications: notifications,
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrUnknownPlan):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrTableNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrEntitlementBlocked):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "tableside"})
}

// requireAdmin resolves the session token and checks it belongs to the
// restaurant in the path. A blocked tenant gets 403 here.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (int, bool) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return 0, false
	}

	sessionTenant, err := h.Entitlements.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		h.respondError(w, err)
		return 0, false
	}
	if sessionTenant != restaurantID {
		http.Error(w, "session does not belong to this restaurant", http.StatusForbidden)
		return 0, false
	}
	return restaurantID, true
}

func (h *Handler) requireOperator(w http.ResponseWriter, r *http.Request) bool {
	if h.OperatorToken == "" || r.Header.Get("X-Operator-Token") != h.OperatorToken {
		http.Error(w, "operator access required", http.StatusForbidden)
		return false
	}
	return true
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		domain.Restaurant
		AdminEmail string `json:"admin_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Restaurants.Onboard(&payload.Restaurant, payload.AdminEmail); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload.Restaurant)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	if !h.requireOperator(w, r) {
		return
	}
	restaurants, err := h.Restaurants.List()
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	rest, err := h.Restaurants.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	sessionTenant, err := h.Entitlements.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if sessionTenant != id {
		http.Error(w, "session does not belong to this restaurant", http.StatusForbidden)
		return
	}

	var upd domain.RestaurantUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Restaurants.UpdateProfile(id, &upd); err != nil {
		h.respondError(w, err)
		return
	}
	rest, err := h.Restaurants.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) blockRestaurant(w http.ResponseWriter, r *http.Request) {
	if !h.requireOperator(w, r) {
		return
	}
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Entitlements.Block(r.Context(), id, payload.Reason); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocked": true, "reason": payload.Reason})
}

func (h *Handler) unblockRestaurant(w http.ResponseWriter, r *http.Request) {
	if !h.requireOperator(w, r) {
		return
	}
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	if err := h.Entitlements.Unblock(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocked": false})
}

func (h *Handler) getSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	status, err := h.Subscriptions.StatusFor(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) upgradeSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	var payload struct {
		PlanID string `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Subscriptions.Upgrade(id, payload.PlanID); err != nil {
		h.respondError(w, err)
		return
	}
	status, err := h.Subscriptions.StatusFor(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.Entitlements.Login(r.Context(), payload.Email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Entitlements.Logout(r.Context(), bearerToken(r)); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createFood(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var food domain.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	food.RestaurantID = restaurantID

	if err := h.Catalog.CreateFood(&food); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) listFoods(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	foods, err := h.Catalog.ListFoods(restaurantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *Handler) getFood(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	foodID, err := pathInt(r, "foodId")
	if err != nil {
		http.Error(w, "invalid food id", http.StatusBadRequest)
		return
	}
	food, err := h.Catalog.GetFood(restaurantID, foodID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) updateFood(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	foodID, err := pathInt(r, "foodId")
	if err != nil {
		http.Error(w, "invalid food id", http.StatusBadRequest)
		return
	}

	var upd domain.FoodUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Catalog.UpdateFood(restaurantID, foodID, &upd); err != nil {
		h.respondError(w, err)
		return
	}
	food, err := h.Catalog.GetFood(restaurantID, foodID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) deleteFood(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	foodID, err := pathInt(r, "foodId")
	if err != nil {
		http.Error(w, "invalid food id", http.StatusBadRequest)
		return
	}
	if err := h.Catalog.DeleteFood(restaurantID, foodID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var table domain.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	table.RestaurantID = restaurantID

	if err := h.Catalog.CreateTable(&table); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	tables, err := h.Catalog.ListTables(restaurantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	tableID, err := pathInt(r, "tableId")
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}

	var upd domain.TableUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Catalog.UpdateTable(restaurantID, tableID, &upd); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	tableID, err := pathInt(r, "tableId")
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}
	if err := h.Catalog.DeleteTable(restaurantID, tableID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) tableQRCode(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	number, err := pathInt(r, "number")
	if err != nil {
		http.Error(w, "invalid table number", http.StatusBadRequest)
		return
	}

	png, err := h.Catalog.TableQRCode(restaurantID, number)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var staff domain.Staff
	if err := json.NewDecoder(r.Body).Decode(&staff); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	staff.RestaurantID = restaurantID

	if err := h.Catalog.CreateStaff(&staff); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	members, err := h.Catalog.ListStaff(restaurantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	staffID, err := pathInt(r, "staffId")
	if err != nil {
		http.Error(w, "invalid staff id", http.StatusBadRequest)
		return
	}
	if err := h.Catalog.DeleteStaff(restaurantID, staffID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	restaurantID, tableNo, ok := h.cartScope(w, r)
	if !ok {
		return
	}
	lines, err := h.Carts.Lines(r.Context(), restaurantID, tableNo)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lines": lines,
		"total": service.CartTotal(lines),
	})
}

func (h *Handler) addCartLine(w http.ResponseWriter, r *http.Request) {
	restaurantID, tableNo, ok := h.cartScope(w, r)
	if !ok {
		return
	}

	var payload struct {
		FoodID   int `json:"food_id"`
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines, err := h.Carts.AddLine(r.Context(), restaurantID, tableNo, payload.FoodID, payload.Quantity)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lines": lines,
		"total": service.CartTotal(lines),
	})
}

func (h *Handler) removeCartLine(w http.ResponseWriter, r *http.Request) {
	restaurantID, tableNo, ok := h.cartScope(w, r)
	if !ok {
		return
	}
	index, err := pathInt(r, "index")
	if err != nil {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return
	}

	lines, err := h.Carts.RemoveLine(r.Context(), restaurantID, tableNo, index)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lines": lines,
		"total": service.CartTotal(lines),
	})
}

func (h *Handler) cartScope(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return 0, 0, false
	}
	tableNo, err := pathInt(r, "tableNo")
	if err != nil {
		http.Error(w, "invalid table number", http.StatusBadRequest)
		return 0, 0, false
	}
	return restaurantID, tableNo, true
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	restaurantID, tableNo, ok := h.cartScope(w, r)
	if !ok {
		return
	}

	var payload struct {
		Customer service.CustomerInput `json:"customer"`
		CommitID string                `json:"commit_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := h.Checkout.CommitCart(r.Context(), restaurantID, tableNo, payload.Customer, payload.CommitID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) buyNow(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	var payload struct {
		TableNo  int                   `json:"table_no"`
		FoodID   int                   `json:"food_id"`
		Quantity int                   `json:"quantity"`
		Customer service.CustomerInput `json:"customer"`
		CommitID string                `json:"commit_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := h.Checkout.BuyNow(r.Context(), restaurantID, payload.TableNo, payload.Customer,
		payload.FoodID, payload.Quantity, payload.CommitID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	orders, err := h.Checkout.ListOrders(restaurantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	orderID, err := pathInt(r, "orderId")
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Checkout.UpdateOrderStatus(restaurantID, orderID, payload.Status); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": orderID, "status": payload.Status})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	orderID, err := pathInt(r, "orderId")
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	if err := h.Checkout.DeleteOrder(restaurantID, orderID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	receipts, err := h.Checkout.ListReceipts(restaurantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipts)
}

func (h *Handler) getReceiptPDF(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	receiptID, err := pathInt(r, "receiptId")
	if err != nil {
		http.Error(w, "invalid receipt id", http.StatusBadRequest)
		return
	}

	pdf, err := h.Checkout.RenderReceiptPDF(restaurantID, receiptID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+strconv.Itoa(receiptID)+".pdf")
	w.Write(pdf)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	// Reading the inbox doubles as the subscription check tick.
	if err := h.Notifications.CheckSubscription(r.Context(), restaurantID); err != nil {
		h.respondError(w, err)
		return
	}

	notifications, err := h.Notifications.List(restaurantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	notificationID, err := pathInt(r, "notificationId")
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	if err := h.Notifications.MarkRead(restaurantID, notificationID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) broadcastNotification(w http.ResponseWriter, r *http.Request) {
	if !h.requireOperator(w, r) {
		return
	}
	restaurantID, err := pathInt(r, "restaurantId")
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Notifications.Broadcast(restaurantID, payload.Title, payload.Message); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) dailyAnalytics(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	if h.Analytics == nil {
		http.Error(w, "analytics unavailable", http.StatusServiceUnavailable)
		return
	}

	day := r.URL.Query().Get("day")
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}

	daily, err := h.Analytics.Daily(r.Context(), restaurantID, day)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, daily)
}
