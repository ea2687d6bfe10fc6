package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	_ "presencewatch/docs"
	"presencewatch/internal/adapters/http"
	"presencewatch/internal/adapters/mqtt"
	"presencewatch/internal/adapters/repository/memory"
	"presencewatch/internal/adapters/repository/sqlite"
	"presencewatch/internal/config"
	"presencewatch/internal/core/services"
	"presencewatch/internal/logger"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Package main Presence Watch Server.
//
// @title Presence Watch Server
// @version 1.0
// @description Online/offline presence aggregation for network devices keyed by MAC address.
//
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "presencewatch")
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	directory := memory.NewDeviceDirectory()
	if cfg.DeviceCSV != "" {
		if err := directory.LoadFromCSV(cfg.DeviceCSV); err != nil {
			log.Fatal("Failed to load device inventory",
				zap.String("path", cfg.DeviceCSV), zap.Error(err))
		}
		log.Info("Device inventory loaded",
			zap.String("path", cfg.DeviceCSV),
			zap.Int("devices", directory.Count()))
	}

	store := memory.NewEventStore()
	opts := []services.Option{
		services.WithDirectory(directory),
		services.WithFlapThreshold(cfg.FlapThreshold),
		services.WithLocation(cfg.Location),
		services.WithGranularityTable(cfg.Granularities),
		services.WithWorkers(cfg.QueryWorkers),
	}

	var journal *sqlite.Journal
	if cfg.JournalPath != "" {
		journal, err = sqlite.Open(cfg.JournalPath, log)
		if err != nil {
			log.Fatal("Failed to open journal",
				zap.String("path", cfg.JournalPath), zap.Error(err))
		}
		defer journal.Close()
		opts = append(opts, services.WithJournal(journal))
	}

	presenceSvc := services.NewPresenceService(store, log, opts...)

	restored, err := presenceSvc.Restore()
	if err != nil {
		log.Fatal("Failed to replay journal", zap.Error(err))
	}
	log.Info("Presence log restored",
		zap.Int("events", restored),
		zap.String("timezone", cfg.Timezone),
		zap.Duration("flap_threshold", cfg.FlapThreshold))

	if cfg.MQTTBroker != "" {
		sub := mqtt.NewSubscriber(mqtt.Config{
			Broker:   cfg.MQTTBroker,
			Topic:    cfg.MQTTTopic,
			Username: cfg.MQTTUsername,
			Password: cfg.MQTTPassword,
			ClientID: cfg.MQTTClientID,
		}, presenceSvc, log)
		if err := sub.Start(); err != nil {
			log.Fatal("Failed to start MQTT subscriber", zap.Error(err))
		}
		defer sub.Close()
		log.Info("MQTT ingestion enabled",
			zap.String("broker", cfg.MQTTBroker),
			zap.String("topic", cfg.MQTTTopic))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &nethttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           http.NewRouter(presenceSvc, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
