package storage

import (
	"database/sql"
	"fmt"
	"time"

	"tableside/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(`
		INSERT INTO restaurants (name, address, phone, email, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, is_active, created_at`,
		rest.Name, rest.Address, rest.Phone, rest.Email,
	).Scan(&rest.ID, &rest.IsActive, &rest.CreatedAt)
}

const restaurantColumns = `
	id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
	plan_id, plan_name, plan_price, plan_duration, plan_purchased_at,
	is_blocked, blocked_at, COALESCE(blocked_reason, ''), is_active, created_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var planID, planName sql.NullString
	var planPrice sql.NullFloat64
	var planDuration sql.NullInt64
	var purchasedAt, blockedAt sql.NullTime

	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &rest.Email,
		&planID, &planName, &planPrice, &planDuration, &purchasedAt,
		&rest.IsBlocked, &blockedAt, &rest.BlockedReason, &rest.IsActive, &rest.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if planID.Valid && purchasedAt.Valid {
		rest.Plan = &domain.Plan{
			ID:          planID.String,
			Name:        planName.String,
			Price:       planPrice.Float64,
			Duration:    int(planDuration.Int64),
			PurchasedAt: purchasedAt.Time,
		}
	}
	if blockedAt.Valid {
		rest.BlockedAt = &blockedAt.Time
	}
	return &rest, nil
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	return scanRestaurant(r.DB.QueryRow(
		"SELECT"+restaurantColumns+" FROM restaurants WHERE id = $1", id))
}

func (r *PostgresRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query("SELECT" + restaurantColumns + " FROM restaurants ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			continue
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, nil
}

// UpdateRestaurantProfile merges non-nil fields into the stored row; nil
// fields are left untouched.
func (r *PostgresRepository) UpdateRestaurantProfile(id int, upd *domain.RestaurantUpdate) error {
	_, err := r.DB.Exec(`
		UPDATE restaurants
		SET name    = COALESCE($1, name),
		    address = COALESCE($2, address),
		    phone   = COALESCE($3, phone),
		    email   = COALESCE($4, email)
		WHERE id = $5`,
		upd.Name, upd.Address, upd.Phone, upd.Email, id)
	return err
}

// ReplacePlan swaps the plan wholesale. purchasedAt is set by the caller and
// is never backdated.
func (r *PostgresRepository) ReplacePlan(restaurantID int, plan *domain.Plan) error {
	result, err := r.DB.Exec(`
		UPDATE restaurants
		SET plan_id = $1, plan_name = $2, plan_price = $3, plan_duration = $4, plan_purchased_at = $5
		WHERE id = $6`,
		plan.ID, plan.Name, plan.Price, plan.Duration, plan.PurchasedAt, restaurantID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) SetBlocked(restaurantID int, blocked bool, reason string, at time.Time) error {
	var result sql.Result
	var err error
	if blocked {
		result, err = r.DB.Exec(`
			UPDATE restaurants SET is_blocked = TRUE, blocked_at = $1, blocked_reason = $2
			WHERE id = $3`, at, reason, restaurantID)
	} else {
		result, err = r.DB.Exec(`
			UPDATE restaurants SET is_blocked = FALSE, blocked_at = NULL, blocked_reason = NULL
			WHERE id = $1`, restaurantID)
	}
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) GetAdminRestaurant(email string) (int, error) {
	var restaurantID int
	err := r.DB.QueryRow("SELECT restaurant_id FROM admins WHERE email = $1", email).Scan(&restaurantID)
	return restaurantID, err
}

func (r *PostgresRepository) CreateAdmin(email string, restaurantID int) error {
	_, err := r.DB.Exec(`
		INSERT INTO admins (email, restaurant_id) VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET restaurant_id = EXCLUDED.restaurant_id`,
		email, restaurantID)
	return err
}

func (r *PostgresRepository) CreateFood(food *domain.Food) error {
	if food.ImageURL == "" {
		food.ImageURL = domain.PlaceholderImageURL
	}
	return r.DB.QueryRow(`
		INSERT INTO foods (restaurant_id, name, price, category, image_url, stock, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		food.RestaurantID, food.Name, food.Price, food.Category, food.ImageURL, food.Stock, food.IsAvailable,
	).Scan(&food.ID, &food.CreatedAt, &food.UpdatedAt)
}

func (r *PostgresRepository) ListFoods(restaurantID int) ([]domain.Food, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, price, COALESCE(category, ''), COALESCE(image_url, ''),
		       stock, is_available, created_at, updated_at
		FROM foods
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		var food domain.Food
		if err := rows.Scan(&food.ID, &food.RestaurantID, &food.Name, &food.Price, &food.Category,
			&food.ImageURL, &food.Stock, &food.IsAvailable, &food.CreatedAt, &food.UpdatedAt); err != nil {
			continue
		}
		foods = append(foods, food)
	}
	return foods, nil
}

func (r *PostgresRepository) GetFood(restaurantID, foodID int) (*domain.Food, error) {
	var food domain.Food
	err := r.DB.QueryRow(`
		SELECT id, restaurant_id, name, price, COALESCE(category, ''), COALESCE(image_url, ''),
		       stock, is_available, created_at, updated_at
		FROM foods
		WHERE id = $1 AND restaurant_id = $2`, foodID, restaurantID,
	).Scan(&food.ID, &food.RestaurantID, &food.Name, &food.Price, &food.Category,
		&food.ImageURL, &food.Stock, &food.IsAvailable, &food.CreatedAt, &food.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *PostgresRepository) UpdateFood(restaurantID, foodID int, upd *domain.FoodUpdate) error {
	result, err := r.DB.Exec(`
		UPDATE foods
		SET name         = COALESCE($1, name),
		    price        = COALESCE($2, price),
		    category     = COALESCE($3, category),
		    image_url    = COALESCE($4, image_url),
		    stock        = COALESCE($5, stock),
		    is_available = COALESCE($6, is_available),
		    updated_at   = CURRENT_TIMESTAMP
		WHERE id = $7 AND restaurant_id = $8`,
		upd.Name, upd.Price, upd.Category, upd.ImageURL, upd.Stock, upd.IsAvailable, foodID, restaurantID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) DeleteFood(restaurantID, foodID int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM foods WHERE id = $1 AND restaurant_id = $2", foodID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateTable(table *domain.Table) error {
	return r.DB.QueryRow(`
		INSERT INTO tables (restaurant_id, number, capacity, is_occupied)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, is_occupied, created_at`,
		table.RestaurantID, table.Number, table.Capacity,
	).Scan(&table.ID, &table.IsOccupied, &table.CreatedAt)
}

func (r *PostgresRepository) ListTables(restaurantID int) ([]domain.Table, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, number, capacity, is_occupied, created_at
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY number`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(&table.ID, &table.RestaurantID, &table.Number, &table.Capacity,
			&table.IsOccupied, &table.CreatedAt); err != nil {
			continue
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// TableExists is the authorization check for unauthenticated customer
// ordering: the table number must belong to the tenant.
func (r *PostgresRepository) TableExists(restaurantID, number int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM tables WHERE restaurant_id = $1 AND number = $2)`,
		restaurantID, number).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) UpdateTable(restaurantID, tableID int, upd *domain.TableUpdate) error {
	result, err := r.DB.Exec(`
		UPDATE tables
		SET number      = COALESCE($1, number),
		    capacity    = COALESCE($2, capacity),
		    is_occupied = COALESCE($3, is_occupied)
		WHERE id = $4 AND restaurant_id = $5`,
		upd.Number, upd.Capacity, upd.IsOccupied, tableID, restaurantID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) DeleteTable(restaurantID, tableID int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM tables WHERE id = $1 AND restaurant_id = $2", tableID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateStaff(staff *domain.Staff) error {
	return r.DB.QueryRow(`
		INSERT INTO staff (restaurant_id, name, role, phone, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		staff.RestaurantID, staff.Name, staff.Role, staff.Phone, staff.PhotoURL,
	).Scan(&staff.ID, &staff.CreatedAt)
}

func (r *PostgresRepository) ListStaff(restaurantID int) ([]domain.Staff, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(role, ''), COALESCE(phone, ''), COALESCE(photo_url, ''), created_at
		FROM staff
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Staff
	for rows.Next() {
		var member domain.Staff
		if err := rows.Scan(&member.ID, &member.RestaurantID, &member.Name, &member.Role,
			&member.Phone, &member.PhotoURL, &member.CreatedAt); err != nil {
			continue
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *PostgresRepository) DeleteStaff(restaurantID, staffID int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM staff WHERE id = $1 AND restaurant_id = $2", staffID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			phone TEXT,
			email TEXT,
			plan_id TEXT,
			plan_name TEXT,
			plan_price NUMERIC,
			plan_duration INT,
			plan_purchased_at TIMESTAMPTZ,
			is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
			blocked_at TIMESTAMPTZ,
			blocked_reason TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			email TEXT PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id)
		)`,
		`CREATE TABLE IF NOT EXISTS foods (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			price NUMERIC NOT NULL,
			category TEXT,
			image_url TEXT,
			stock INT NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tables (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			number INT NOT NULL,
			capacity INT NOT NULL DEFAULT 2,
			is_occupied BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (restaurant_id, number)
		)`,
		`CREATE TABLE IF NOT EXISTS staff (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			role TEXT,
			phone TEXT,
			photo_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			table_no INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			table_no INT NOT NULL,
			food_id INT NOT NULL,
			title TEXT NOT NULL,
			price NUMERIC NOT NULL,
			quantity INT NOT NULL,
			total NUMERIC NOT NULL,
			customer_id INT,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			status TEXT NOT NULL,
			commit_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS receipts (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			commit_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			table_no INT NOT NULL,
			total NUMERIC NOT NULL,
			status TEXT NOT NULL DEFAULT 'paid',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (restaurant_id, commit_id)
		)`,
		`CREATE TABLE IF NOT EXISTS receipt_items (
			id SERIAL PRIMARY KEY,
			receipt_id INT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
			food_id INT NOT NULL,
			title TEXT NOT NULL,
			price NUMERIC NOT NULL,
			quantity INT NOT NULL,
			subtotal NUMERIC NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			priority TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
