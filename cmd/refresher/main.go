package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"villagepulse-main/internal/kafka"
	"villagepulse-main/internal/refresher"
	"villagepulse-main/internal/vote"
	"villagepulse-main/internal/weight"

	_ "github.com/lib/pq"
)

const (
	cfgPath      = "config/refresher-config.yaml"
	KafkaBrokers = "kafka:9092"
	KafkaTopic   = "vote-events"
	KafkaGroupID = "refresher-group"

	defaultRefreshInterval = time.Hour
)

func main() {
	// Init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := zapLogger.Sugar()
	defer func() { _ = zapLogger.Sync() }()

	// Parse config
	c, err := refresher.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("Error parsing config: %v", err)
	}

	refreshInterval := defaultRefreshInterval
	if c.RefreshInterval != "" {
		parsed, err := time.ParseDuration(c.RefreshInterval)
		if err != nil {
			logger.Fatalf("Invalid refresh_interval: %v", err)
		}
		refreshInterval = parsed
	}

	// Init DB
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("Error connecting to DB: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Errorf("DB ping failed: %v", err)
	}

	// Init Kafka Consumer
	consumer := kafka.NewConsumer(KafkaBrokers, KafkaTopic, KafkaGroupID, logger)
	defer consumer.Close()

	// Init refresher service
	voteRepository := vote.NewVoteDBRepository(db, logger)
	calculator := &weight.Calculator{Cfg: weight.DefaultConfig(), Logger: logger}
	service := refresher.NewService(voteRepository, calculator, logger)

	// Start event processor
	go func() {
		consumer.Consume(context.Background(), func(ctx context.Context, event kafka.Event) error {
			return service.ProcessEvent(ctx, event)
		})
	}()

	// Периодический пересчет на случай пропущенных событий
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for range ticker.C {
			since := time.Now().Add(-refreshInterval)
			if err := service.RefreshRecent(context.Background(), since); err != nil {
				logger.Errorf("Periodic refresh failed: %v", err)
			}
		}
	}()

	// Init HTTP server
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	srv := &http.Server{
		Addr:         ":8082",
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Starting refresher service on :8082")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
