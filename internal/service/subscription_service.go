package service

import (
	"database/sql"
	"errors"
	"time"

	"tableside/internal/domain"
)

// PlanCatalog is the set of purchasable plans. Duration is informational;
// entitlement always runs on the fixed 30-day period.
var PlanCatalog = map[string]domain.Plan{
	"basic":    {ID: "basic", Name: "Basic", Price: 999, Duration: domain.PlanPeriodDays},
	"standard": {ID: "standard", Name: "Standard", Price: 1999, Duration: domain.PlanPeriodDays},
	"premium":  {ID: "premium", Name: "Premium", Price: 2999, Duration: domain.PlanPeriodDays},
}

type SubscriptionServiceInterface interface {
	StatusFor(restaurantID int) (*domain.SubscriptionStatus, error)
	Upgrade(restaurantID int, planID string) error
}

type SubscriptionService struct {
	repo RestaurantRepository
	now  func() time.Time
}

func NewSubscriptionService(repo RestaurantRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo, now: time.Now}
}

// PlanStatus derives the entitlement state from the plan purchase instant.
// It is pure: identical inputs always yield identical outputs, and the
// restaurant record is never mutated.
func PlanStatus(rest *domain.Restaurant, now time.Time) domain.SubscriptionStatus {
	if rest == nil || rest.Plan == nil || rest.Plan.PurchasedAt.IsZero() {
		return domain.SubscriptionStatus{State: domain.PlanNone, DaysRemaining: 0}
	}

	elapsed := int(now.Sub(rest.Plan.PurchasedAt).Hours() / 24)
	remaining := domain.PlanPeriodDays - elapsed
	if remaining < 0 {
		remaining = 0
	}

	expiry := rest.Plan.PurchasedAt.Add(domain.PlanPeriodDays * 24 * time.Hour)
	status := domain.SubscriptionStatus{DaysRemaining: remaining, ExpiryDate: &expiry}

	switch {
	case remaining == 0:
		status.State = domain.PlanExpired
	case remaining <= 2:
		status.State = domain.PlanExpiring
	default:
		status.State = domain.PlanActive
	}
	return status
}

func (s *SubscriptionService) StatusFor(restaurantID int) (*domain.SubscriptionStatus, error) {
	rest, err := s.repo.GetRestaurant(restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	status := PlanStatus(rest, s.now())
	return &status, nil
}

// Upgrade replaces the plan wholesale and restarts the 30-day clock from the
// upgrade moment. Periods never accumulate.
func (s *SubscriptionService) Upgrade(restaurantID int, planID string) error {
	plan, ok := PlanCatalog[planID]
	if !ok {
		return ErrUnknownPlan
	}
	plan.PurchasedAt = s.now()

	err := s.repo.ReplacePlan(restaurantID, &plan)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

var _ SubscriptionServiceInterface = (*SubscriptionService)(nil)
