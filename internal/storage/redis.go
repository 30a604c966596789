package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tableside/internal/domain"

	"github.com/redis/go-redis/v9"
)

var ErrDuplicateCommit = errors.New("checkout already committed with this commit id")

// RedisCartRepository holds one basket per (restaurant, table). Baskets are
// ephemeral: they disappear on commit, explicit clear or TTL expiry.
type RedisCartRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{Client: client, TTL: ttl}
}

func cartKey(restaurantID, tableNo int) string {
	return "cart:" + strconv.Itoa(restaurantID) + ":" + strconv.Itoa(tableNo)
}

func (r *RedisCartRepository) Get(ctx context.Context, restaurantID, tableNo int) ([]domain.CartLine, error) {
	raw, err := r.Client.Get(ctx, cartKey(restaurantID, tableNo)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, restaurantID, tableNo int, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return r.Clear(ctx, restaurantID, tableNo)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, cartKey(restaurantID, tableNo), raw, r.TTL).Err()
}

func (r *RedisCartRepository) Clear(ctx context.Context, restaurantID, tableNo int) error {
	return r.Client.Del(ctx, cartKey(restaurantID, tableNo)).Err()
}

// RedisSessionStore maps admin session tokens to their tenant. A per-tenant
// set allows invalidating every session when the tenant is blocked.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func tenantSessionsKey(restaurantID int) string {
	return "sessions:" + strconv.Itoa(restaurantID)
}

func (s *RedisSessionStore) Create(ctx context.Context, token string, restaurantID int) error {
	if err := s.Client.Set(ctx, sessionKey(token), restaurantID, s.TTL).Err(); err != nil {
		return err
	}
	return s.Client.SAdd(ctx, tenantSessionsKey(restaurantID), token).Err()
}

func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (int, error) {
	restaurantID, err := s.Client.Get(ctx, sessionKey(token)).Int()
	if err == redis.Nil {
		return 0, redis.Nil
	}
	return restaurantID, err
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	restaurantID, err := s.Client.Get(ctx, sessionKey(token)).Int()
	if err == nil {
		s.Client.SRem(ctx, tenantSessionsKey(restaurantID), token)
	}
	return s.Client.Del(ctx, sessionKey(token)).Err()
}

// DeleteTenant removes every session belonging to the tenant and returns how
// many were dropped.
func (s *RedisSessionStore) DeleteTenant(ctx context.Context, restaurantID int) (int, error) {
	tokens, err := s.Client.SMembers(ctx, tenantSessionsKey(restaurantID)).Result()
	if err != nil {
		return 0, err
	}
	for _, token := range tokens {
		s.Client.Del(ctx, sessionKey(token))
	}
	s.Client.Del(ctx, tenantSessionsKey(restaurantID))
	return len(tokens), nil
}

// RedisBlockBus propagates block-flag changes to live admin sessions over
// pub/sub, one channel per tenant.
type RedisBlockBus struct {
	Client *redis.Client
}

func NewRedisBlockBus(client *redis.Client) *RedisBlockBus {
	return &RedisBlockBus{Client: client}
}

func blockChannel(restaurantID int) string {
	return "entitlement:" + strconv.Itoa(restaurantID)
}

func (b *RedisBlockBus) Publish(ctx context.Context, event domain.BlockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.Client.Publish(ctx, blockChannel(event.RestaurantID), payload).Err()
}

// Subscribe delivers block events for one tenant until the context ends or
// the returned cancel func runs. Teardown closes the underlying pubsub.
func (b *RedisBlockBus) Subscribe(ctx context.Context, restaurantID int) (<-chan domain.BlockEvent, func(), error) {
	pubsub := b.Client.Subscribe(ctx, blockChannel(restaurantID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	events := make(chan domain.BlockEvent)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event domain.BlockEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, func() { pubsub.Close() }, nil
}

// RedisAnalytics keeps rolling per-tenant order tallies, fed by the Kafka
// consumer.
type RedisAnalytics struct {
	Client *redis.Client
}

func NewRedisAnalytics(client *redis.Client) *RedisAnalytics {
	return &RedisAnalytics{Client: client}
}

func (a *RedisAnalytics) RecordOrder(ctx context.Context, event domain.OrderEvent) error {
	day := event.Timestamp.Format("2006-01-02")

	dailyKey := fmt.Sprintf("analytics:daily:%s:%d", day, event.RestaurantID)
	for _, foodID := range event.FoodIDs {
		a.Client.ZIncrBy(ctx, dailyKey, 1, strconv.Itoa(foodID))
	}
	a.Client.Expire(ctx, dailyKey, 7*24*time.Hour)

	revenueKey := fmt.Sprintf("analytics:revenue:%s:%d", day, event.RestaurantID)
	if err := a.Client.IncrByFloat(ctx, revenueKey, event.Total).Err(); err != nil {
		return err
	}
	a.Client.Expire(ctx, revenueKey, 7*24*time.Hour)
	return nil
}

func (a *RedisAnalytics) DailyVolume(ctx context.Context, restaurantID int, day string) ([]redis.Z, float64, error) {
	dailyKey := fmt.Sprintf("analytics:daily:%s:%d", day, restaurantID)
	top, err := a.Client.ZRevRangeWithScores(ctx, dailyKey, 0, 9).Result()
	if err != nil {
		return nil, 0, err
	}

	revenueKey := fmt.Sprintf("analytics:revenue:%s:%d", day, restaurantID)
	revenue, err := a.Client.Get(ctx, revenueKey).Float64()
	if err == redis.Nil {
		revenue = 0
	} else if err != nil {
		return top, 0, err
	}
	return top, revenue, nil
}
