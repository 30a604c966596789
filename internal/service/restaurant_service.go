package service

import (
	"database/sql"
	"errors"
	"fmt"

	"tableside/internal/domain"
)

type RestaurantServiceInterface interface {
	Onboard(rest *domain.Restaurant, adminEmail string) error
	List() ([]domain.Restaurant, error)
	Get(id int) (*domain.Restaurant, error)
	UpdateProfile(id int, upd *domain.RestaurantUpdate) error
}

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

// Onboard creates the tenant directory entry and, when an admin email is
// given, the admin mapping for it. A new tenant starts with no plan.
func (s *RestaurantService) Onboard(rest *domain.Restaurant, adminEmail string) error {
	if rest.Name == "" {
		return fmt.Errorf("%w: restaurant name is required", ErrValidation)
	}
	if err := s.repo.CreateRestaurant(rest); err != nil {
		return err
	}
	if adminEmail != "" {
		if err := s.repo.CreateAdmin(adminEmail, rest.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *RestaurantService) List() ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants()
}

func (s *RestaurantService) Get(id int) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rest, err
}

func (s *RestaurantService) UpdateProfile(id int, upd *domain.RestaurantUpdate) error {
	return s.repo.UpdateRestaurantProfile(id, upd)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
