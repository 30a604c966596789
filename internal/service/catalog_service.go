package service

import (
	"database/sql"
	"errors"
	"fmt"

	"tableside/internal/domain"
)

type CatalogServiceInterface interface {
	CreateFood(food *domain.Food) error
	ListFoods(restaurantID int) ([]domain.Food, error)
	GetFood(restaurantID, foodID int) (*domain.Food, error)
	UpdateFood(restaurantID, foodID int, upd *domain.FoodUpdate) error
	DeleteFood(restaurantID, foodID int) error
	CreateTable(table *domain.Table) error
	ListTables(restaurantID int) ([]domain.Table, error)
	UpdateTable(restaurantID, tableID int, upd *domain.TableUpdate) error
	DeleteTable(restaurantID, tableID int) error
	TableQRCode(restaurantID, number int) ([]byte, error)
	CreateStaff(staff *domain.Staff) error
	ListStaff(restaurantID int) ([]domain.Staff, error)
	DeleteStaff(restaurantID, staffID int) error
}

type CatalogService struct {
	repo CatalogRepository
	qr   QRGenerator
}

func NewCatalogService(repo CatalogRepository, qr QRGenerator) *CatalogService {
	return &CatalogService{repo: repo, qr: qr}
}

func (s *CatalogService) CreateFood(food *domain.Food) error {
	if food.Name == "" {
		return fmt.Errorf("%w: food name is required", ErrValidation)
	}
	if food.Price <= 0 {
		return fmt.Errorf("%w: food price must be positive", ErrValidation)
	}
	return s.repo.CreateFood(food)
}

func (s *CatalogService) ListFoods(restaurantID int) ([]domain.Food, error) {
	return s.repo.ListFoods(restaurantID)
}

func (s *CatalogService) GetFood(restaurantID, foodID int) (*domain.Food, error) {
	food, err := s.repo.GetFood(restaurantID, foodID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return food, err
}

func (s *CatalogService) UpdateFood(restaurantID, foodID int, upd *domain.FoodUpdate) error {
	if upd.Price != nil && *upd.Price <= 0 {
		return fmt.Errorf("%w: food price must be positive", ErrValidation)
	}
	err := s.repo.UpdateFood(restaurantID, foodID, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// DeleteFood is idempotent: deleting a missing food is not an error.
func (s *CatalogService) DeleteFood(restaurantID, foodID int) error {
	_, err := s.repo.DeleteFood(restaurantID, foodID)
	return err
}

func (s *CatalogService) CreateTable(table *domain.Table) error {
	if table.Number <= 0 {
		return fmt.Errorf("%w: table number must be positive", ErrValidation)
	}
	if table.Capacity <= 0 {
		table.Capacity = 2
	}
	return s.repo.CreateTable(table)
}

func (s *CatalogService) ListTables(restaurantID int) ([]domain.Table, error) {
	return s.repo.ListTables(restaurantID)
}

func (s *CatalogService) UpdateTable(restaurantID, tableID int, upd *domain.TableUpdate) error {
	err := s.repo.UpdateTable(restaurantID, tableID, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *CatalogService) DeleteTable(restaurantID, tableID int) error {
	_, err := s.repo.DeleteTable(restaurantID, tableID)
	return err
}

func (s *CatalogService) TableQRCode(restaurantID, number int) ([]byte, error) {
	exists, err := s.repo.TableExists(restaurantID, number)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTableNotFound
	}
	return s.qr.Generate(restaurantID, number)
}

func (s *CatalogService) CreateStaff(staff *domain.Staff) error {
	if staff.Name == "" {
		return fmt.Errorf("%w: staff name is required", ErrValidation)
	}
	return s.repo.CreateStaff(staff)
}

func (s *CatalogService) ListStaff(restaurantID int) ([]domain.Staff, error) {
	return s.repo.ListStaff(restaurantID)
}

func (s *CatalogService) DeleteStaff(restaurantID, staffID int) error {
	_, err := s.repo.DeleteStaff(restaurantID, staffID)
	return err
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
