package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/sentiview/config"
	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/clients/kafka_client"
	"github.com/spacesedan/sentiview/internal/consumers"
	"github.com/spacesedan/sentiview/internal/logging"
	"github.com/spacesedan/sentiview/internal/monitoring"
	"github.com/spacesedan/sentiview/internal/render"
)

func main() {
	config.LoadEnv(config.AppEnv())
	logging.InitLogger()

	appCfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	renderer, err := render.Configure(appCfg.Preset, appCfg.StylesPath)
	if err != nil {
		slog.Error("[Main] Failed to configure renderer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := kafka_client.GetKafkaConfig()

	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer kafka_client.CloseProducer()

	valkeyHealthy := &atomic.Bool{}
	var dedupe consumers.Deduper

	vc, err := clients.InitValkey(clients.ValkeyConfig{
		Address:  appCfg.ValkeyAddress,
		Password: appCfg.ValkeyPassword,
		UseTLS:   appCfg.ValkeyTLS,
	})
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, rendering without redelivery checks",
			slog.String("error", err.Error()))
	} else {
		defer clients.CloseValkey()
		dedupe = vc
		valkeyHealthy.Store(true)
		go monitoring.MonitorValkeyHealth(ctx, vc, valkeyHealthy)
	}

	renderConsumer := consumers.NewRenderConsumer(renderer, dedupe, kafka_client.PublishToKafka, cfg.OutputTopic)
	kafka_client.RegisterConsumer(cfg.Topic, consumers.WrapConsumer(renderConsumer.Start).
		WithHealthCheck(valkeyHealthy).Handler())

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
