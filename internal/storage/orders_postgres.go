package storage

import (
	"context"
	"database/sql"
	"time"

	"tableside/internal/domain"

	"github.com/lib/pq"
)

type CheckoutResult struct {
	OrderIDs   []int
	CustomerID int
	ReceiptID  int
	Replayed   bool
}

// CommitCheckout writes the customer, one order row per line and the receipt
// snapshot in a single transaction. The (restaurant_id, commit_id) unique
// index makes a replayed commit return the stored result instead of writing
// twice; a concurrent duplicate loses the race on the index and is resolved
// the same way.
func (r *PostgresRepository) CommitCheckout(
	ctx context.Context,
	restaurantID, tableNo int,
	commitID string,
	customer *domain.Customer,
	lines []domain.CartLine,
	status domain.OrderStatus,
) (*CheckoutResult, error) {
	if existing, err := r.findCommitted(ctx, restaurantID, commitID); err == nil && existing != nil {
		existing.Replayed = true
		return existing, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := &CheckoutResult{}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO customers (restaurant_id, name, phone, table_no)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		restaurantID, customer.Name, customer.Phone, tableNo,
	).Scan(&customer.ID, &customer.CreatedAt); err != nil {
		return nil, err
	}
	customer.RestaurantID = restaurantID
	customer.TableNo = tableNo
	result.CustomerID = customer.ID

	total := 0.0
	for _, line := range lines {
		var orderID int
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (restaurant_id, table_no, food_id, title, price, quantity, total,
			                    customer_id, customer_name, customer_phone, status, commit_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`,
			restaurantID, tableNo, line.FoodID, line.Title, line.Price, line.Quantity,
			line.Subtotal(), customer.ID, customer.Name, customer.Phone, string(status), commitID,
		).Scan(&orderID); err != nil {
			return nil, err
		}
		result.OrderIDs = append(result.OrderIDs, orderID)
		total += line.Subtotal()
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO receipts (restaurant_id, commit_id, customer_name, customer_phone, table_no, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'paid')
		RETURNING id`,
		restaurantID, commitID, customer.Name, customer.Phone, tableNo, total,
	).Scan(&result.ReceiptID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			tx.Rollback()
			if existing, ferr := r.findCommitted(ctx, restaurantID, commitID); ferr == nil && existing != nil {
				existing.Replayed = true
				return existing, nil
			}
			return nil, ErrDuplicateCommit
		}
		return nil, err
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO receipt_items (receipt_id, food_id, title, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			result.ReceiptID, line.FoodID, line.Title, line.Price, line.Quantity, line.Subtotal(),
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) findCommitted(ctx context.Context, restaurantID int, commitID string) (*CheckoutResult, error) {
	var result CheckoutResult
	err := r.DB.QueryRowContext(ctx, `
		SELECT id FROM receipts WHERE restaurant_id = $1 AND commit_id = $2`,
		restaurantID, commitID).Scan(&result.ReceiptID)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(customer_id, 0)
		FROM orders
		WHERE restaurant_id = $1 AND commit_id = $2
		ORDER BY id`, restaurantID, commitID)
	if err != nil {
		return &result, nil
	}
	defer rows.Close()
	for rows.Next() {
		var orderID, customerID int
		if err := rows.Scan(&orderID, &customerID); err != nil {
			continue
		}
		result.OrderIDs = append(result.OrderIDs, orderID)
		result.CustomerID = customerID
	}
	return &result, nil
}

func (r *PostgresRepository) ListOrders(restaurantID int) ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, table_no, food_id, title, price, quantity, total,
		       COALESCE(customer_id, 0), customer_name, customer_phone, status, created_at
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.TableNo, &order.FoodID,
			&order.Title, &order.Price, &order.Quantity, &order.Total, &order.CustomerID,
			&order.CustomerName, &order.CustomerPhone, &order.Status, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *PostgresRepository) GetOrder(restaurantID, orderID int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRow(`
		SELECT id, restaurant_id, table_no, food_id, title, price, quantity, total,
		       COALESCE(customer_id, 0), customer_name, customer_phone, status, created_at
		FROM orders
		WHERE id = $1 AND restaurant_id = $2`, orderID, restaurantID,
	).Scan(&order.ID, &order.RestaurantID, &order.TableNo, &order.FoodID,
		&order.Title, &order.Price, &order.Quantity, &order.Total, &order.CustomerID,
		&order.CustomerName, &order.CustomerPhone, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) UpdateOrderStatus(restaurantID, orderID int, status domain.OrderStatus) error {
	result, err := r.DB.Exec(`
		UPDATE orders SET status = $1 WHERE id = $2 AND restaurant_id = $3`,
		string(status), orderID, restaurantID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) DeleteOrder(restaurantID, orderID int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM orders WHERE id = $1 AND restaurant_id = $2", orderID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) GetReceipt(restaurantID, receiptID int) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.DB.QueryRow(`
		SELECT id, restaurant_id, commit_id, customer_name, customer_phone, table_no, total, status, created_at
		FROM receipts
		WHERE id = $1 AND restaurant_id = $2`, receiptID, restaurantID,
	).Scan(&receipt.ID, &receipt.RestaurantID, &receipt.CommitID, &receipt.CustomerName,
		&receipt.CustomerPhone, &receipt.TableNo, &receipt.Total, &receipt.Status, &receipt.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(`
		SELECT food_id, title, price, quantity, subtotal
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY id`, receipt.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.ReceiptItem
		if err := rows.Scan(&item.FoodID, &item.Title, &item.Price, &item.Quantity, &item.Subtotal); err != nil {
			continue
		}
		receipt.Items = append(receipt.Items, item)
	}
	return &receipt, nil
}

func (r *PostgresRepository) ListReceipts(restaurantID int) ([]domain.Receipt, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, commit_id, customer_name, customer_phone, table_no, total, status, created_at
		FROM receipts
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		var receipt domain.Receipt
		if err := rows.Scan(&receipt.ID, &receipt.RestaurantID, &receipt.CommitID, &receipt.CustomerName,
			&receipt.CustomerPhone, &receipt.TableNo, &receipt.Total, &receipt.Status, &receipt.CreatedAt); err != nil {
			continue
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func (r *PostgresRepository) CreateNotification(n *domain.Notification) error {
	return r.DB.QueryRow(`
		INSERT INTO notifications (restaurant_id, type, title, message, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at`,
		n.RestaurantID, string(n.Type), n.Title, n.Message, n.Priority,
	).Scan(&n.ID, &n.Read, &n.CreatedAt)
}

// HasRecentNotification reports whether a notification of the given type was
// created for the tenant within the window.
func (r *PostgresRepository) HasRecentNotification(restaurantID int, typ domain.NotificationType, window time.Duration) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE restaurant_id = $1 AND type = $2 AND created_at > $3
		)`, restaurantID, string(typ), time.Now().Add(-window)).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) ListNotifications(restaurantID int) ([]domain.Notification, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, type, title, message, priority, read, created_at
		FROM notifications
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RestaurantID, &n.Type, &n.Title, &n.Message,
			&n.Priority, &n.Read, &n.CreatedAt); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *PostgresRepository) MarkNotificationRead(restaurantID, notificationID int) error {
	_, err := r.DB.Exec(`
		UPDATE notifications SET read = TRUE WHERE id = $1 AND restaurant_id = $2`,
		notificationID, restaurantID)
	return err
}
