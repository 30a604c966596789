package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/admin/login", h.adminLogin).Methods("POST")
	r.HandleFunc("/api/admin/logout", h.adminLogout).Methods("POST")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}/block", h.blockRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/unblock", h.unblockRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/subscription", h.getSubscription).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/subscription/upgrade", h.upgradeSubscription).Methods("POST")

	r.HandleFunc("/api/restaurants/{restaurantId}/foods", h.createFood).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/foods", h.listFoods).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/foods/{foodId}", h.getFood).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/foods/{foodId}", h.updateFood).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}/foods/{foodId}", h.deleteFood).Methods("DELETE")

	r.HandleFunc("/api/restaurants/{restaurantId}/tables", h.createTable).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables", h.listTables).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableId}", h.updateTable).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableId}", h.deleteTable).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{number}/qrcode", h.tableQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants/{restaurantId}/staff", h.createStaff).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/staff", h.listStaff).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/staff/{staffId}", h.deleteStaff).Methods("DELETE")

	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableNo}/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableNo}/cart", h.addCartLine).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableNo}/cart/{index}", h.removeCartLine).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableNo}/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/restaurants/{restaurantId}/orders", h.buyNow).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/orders/{orderId}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/restaurants/{restaurantId}/orders/{orderId}", h.deleteOrder).Methods("DELETE")

	r.HandleFunc("/api/restaurants/{restaurantId}/receipts", h.listReceipts).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/receipts/{receiptId}/pdf", h.getReceiptPDF).Methods("GET")

	r.HandleFunc("/api/restaurants/{restaurantId}/notifications", h.listNotifications).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/notifications/{notificationId}/read", h.markNotificationRead).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/notifications/broadcast", h.broadcastNotification).Methods("POST")

	r.HandleFunc("/api/restaurants/{restaurantId}/analytics/daily", h.dailyAnalytics).Methods("GET")
}

func (h *Handler) CORSHandler(r *mux.Router) http.Handler {
	return cors.Default().Handler(r)
}
