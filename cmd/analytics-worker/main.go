package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tableside/config"
	"tableside/internal/service"
	"tableside/internal/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	config.InitLogger()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader("orders", "analytics-worker")
	defer reader.Close()

	consumer := service.NewAnalyticsConsumer(reader, storage.NewRedisAnalytics(rdb))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.Start(ctx)
	log.Info().Msg("Analytics worker stopped")
}
