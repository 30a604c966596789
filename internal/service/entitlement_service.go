package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"tableside/internal/domain"

	"github.com/rs/zerolog/log"
)

type EntitlementServiceInterface interface {
	Block(ctx context.Context, restaurantID int, reason string) error
	Unblock(ctx context.Context, restaurantID int) error
	Watch(ctx context.Context, restaurantID int, onBlocked func(domain.BlockEvent)) (func(), error)
	Login(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (int, error)
	LastError() error
}

// EntitlementService owns the block flag, the admin sessions it invalidates
// and the pub/sub fanout that tells a live dashboard to log out.
type EntitlementService struct {
	repo     RestaurantRepository
	sessions SessionStore
	bus      BlockBus
	ids      IdGenerator
	now      func() time.Time

	mu      sync.Mutex
	lastErr error
}

func NewEntitlementService(repo RestaurantRepository, sessions SessionStore, bus BlockBus, ids IdGenerator) *EntitlementService {
	return &EntitlementService{repo: repo, sessions: sessions, bus: bus, ids: ids, now: time.Now}
}

// Block flips the tenant's block flag, drops every admin session for the
// tenant and publishes the block event. Platform-operator only.
func (s *EntitlementService) Block(ctx context.Context, restaurantID int, reason string) error {
	if err := s.repo.SetBlocked(restaurantID, true, reason, s.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	dropped, err := s.sessions.DeleteTenant(ctx, restaurantID)
	if err != nil {
		log.Warn().Err(err).Int("restaurant_id", restaurantID).Msg("failed to drop tenant sessions")
	} else if dropped > 0 {
		log.Info().Int("restaurant_id", restaurantID).Int("sessions", dropped).Msg("terminated admin sessions")
	}

	event := domain.BlockEvent{
		RestaurantID: restaurantID,
		Blocked:      true,
		Reason:       reason,
		Timestamp:    s.now().UTC(),
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Int("restaurant_id", restaurantID).Msg("failed to publish block event")
	}
	return nil
}

func (s *EntitlementService) Unblock(ctx context.Context, restaurantID int) error {
	if err := s.repo.SetBlocked(restaurantID, false, "", s.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	event := domain.BlockEvent{
		RestaurantID: restaurantID,
		Blocked:      false,
		Timestamp:    s.now().UTC(),
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Int("restaurant_id", restaurantID).Msg("failed to publish unblock event")
	}
	return nil
}

// Watch subscribes to the tenant's block channel and fires onBlocked exactly
// once per block event: a latch suppresses re-fires until an unblock resets
// it. The returned teardown must be called when the owning scope exits.
//
// Subscription errors do not change entitlement; they are logged and kept in
// LastError so callers can surface a "status unknown" state.
func (s *EntitlementService) Watch(ctx context.Context, restaurantID int, onBlocked func(domain.BlockEvent)) (func(), error) {
	events, unsubscribe, err := s.bus.Subscribe(ctx, restaurantID)
	if err != nil {
		s.setLastError(err)
		log.Error().Err(err).Int("restaurant_id", restaurantID).Msg("entitlement watch subscribe failed")
		return nil, err
	}

	go func() {
		fired := false
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if event.Blocked && !fired {
					fired = true
					onBlocked(event)
				} else if !event.Blocked {
					fired = false
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return unsubscribe, nil
}

// Login issues a session token for a known admin email, unless the tenant is
// blocked.
func (s *EntitlementService) Login(ctx context.Context, email string) (string, error) {
	restaurantID, err := s.repo.GetAdminRestaurant(email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	rest, err := s.repo.GetRestaurant(restaurantID)
	if err != nil {
		return "", err
	}
	if rest.IsBlocked {
		return "", ErrEntitlementBlocked
	}

	token := s.ids.NewID()
	if err := s.sessions.Create(ctx, token, restaurantID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *EntitlementService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its tenant. A blocked tenant's
// token is rejected and removed.
func (s *EntitlementService) Authenticate(ctx context.Context, token string) (int, error) {
	restaurantID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return 0, ErrInvalidSession
	}

	rest, err := s.repo.GetRestaurant(restaurantID)
	if err != nil {
		return 0, err
	}
	if rest.IsBlocked {
		_ = s.sessions.Delete(ctx, token)
		return 0, ErrEntitlementBlocked
	}
	return restaurantID, nil
}

func (s *EntitlementService) setLastError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *EntitlementService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

var _ EntitlementServiceInterface = (*EntitlementService)(nil)
