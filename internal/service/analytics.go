package service

import (
	"context"
	"encoding/json"
	"strconv"

	"tableside/internal/domain"
	"tableside/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type AnalyticsStore interface {
	RecordOrder(ctx context.Context, event domain.OrderEvent) error
}

// AnalyticsConsumer drains the order topic and folds each event into the
// per-tenant Redis tallies.
type AnalyticsConsumer struct {
	Reader *kafka.Reader
	Store  AnalyticsStore
}

func NewAnalyticsConsumer(reader *kafka.Reader, store AnalyticsStore) *AnalyticsConsumer {
	return &AnalyticsConsumer{Reader: reader, Store: store}
}

func (c *AnalyticsConsumer) Start(ctx context.Context) {
	log.Info().Msg("Starting analytics consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("Error reading message")
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Error().Err(err).Msg("Error unmarshaling message")
			continue
		}

		if event.Type == "order_created" {
			c.ProcessOrder(ctx, event)
		}
	}
}

func (c *AnalyticsConsumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) {
	if err := c.Store.RecordOrder(ctx, event); err != nil {
		log.Error().Err(err).Int("restaurant_id", event.RestaurantID).Msg("Error recording order analytics")
		return
	}
	log.Info().Int("restaurant_id", event.RestaurantID).Int("receipt_id", event.ReceiptID).
		Msg("Recorded order analytics")
}

type TopItem struct {
	FoodID int     `json:"food_id"`
	Count  float64 `json:"count"`
}

type DailyAnalytics struct {
	Day     string    `json:"day"`
	Top     []TopItem `json:"top_items"`
	Revenue float64   `json:"revenue"`
}

// AnalyticsService is the read side of the Redis tallies.
type AnalyticsService struct {
	store *storage.RedisAnalytics
}

func NewAnalyticsService(store *storage.RedisAnalytics) *AnalyticsService {
	return &AnalyticsService{store: store}
}

func (s *AnalyticsService) Daily(ctx context.Context, restaurantID int, day string) (*DailyAnalytics, error) {
	top, revenue, err := s.store.DailyVolume(ctx, restaurantID, day)
	if err != nil {
		return nil, err
	}

	result := &DailyAnalytics{Day: day, Revenue: revenue}
	for _, z := range top {
		member, _ := z.Member.(string)
		foodID, _ := strconv.Atoi(member)
		result.Top = append(result.Top, TopItem{FoodID: foodID, Count: z.Score})
	}
	return result, nil
}
