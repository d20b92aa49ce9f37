package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"villagepulse-main/internal/app"
	elasticService "villagepulse-main/internal/elastic_search"
	"villagepulse-main/internal/etl"
	"villagepulse-main/internal/feedback"
	handlersFeedback "villagepulse-main/internal/handlers/feedback"
	handlersPanel "villagepulse-main/internal/handlers/panel"
	handlersUser "villagepulse-main/internal/handlers/user"
	handlersVote "villagepulse-main/internal/handlers/vote"
	"villagepulse-main/internal/kafka"
	"villagepulse-main/internal/middleware"
	"villagepulse-main/internal/panel"
	"villagepulse-main/internal/session"
	"villagepulse-main/internal/similarity"
	"villagepulse-main/internal/trending"
	"villagepulse-main/internal/user"
	"villagepulse-main/internal/village"
	"villagepulse-main/internal/vote"
	"villagepulse-main/internal/weight"

	_ "github.com/lib/pq"
)

const (
	cfgPath      = "config/config.yaml"
	RedisAddr    = "redis:6379"
	KafkaBrokers = "kafka:9092"
	KafkaTopic   = "vote-events"
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: "",
		DB:       0, // стандартная БД
	})

	// init elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("error to elasticsearch client init: %v", err)
	}
	esService := elasticService.NewService(esClient, logger, c.CfgES.Index)
	if err := esService.EnsureIndex(context.Background()); err != nil {
		logger.Errorf("Failed to ensure elasticsearch index: %v", err)
	}

	// init kafka producer
	producer := kafka.NewProducer([]string{KafkaBrokers}, KafkaTopic, logger)
	defer producer.Close()

	// init repository
	userRepository := user.NewUserDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	villageRepository := village.NewVillageDBRepository(db, logger)
	feedbackRepository := feedback.NewFeedbackDBRepository(db, logger)
	voteRepository := vote.NewVoteDBRepository(db, logger)
	panelRepository := panel.NewPanelDBRepository(db, logger)

	// Конфиг может переопределить дефолты ранжирования
	weightCfg := weight.DefaultConfig()
	if c.CfgRanking.HalfLifeDays > 0 {
		weightCfg.HalfLifeDays = c.CfgRanking.HalfLifeDays
	}
	if c.CfgRanking.PanelBoost > 0 {
		weightCfg.PanelBoost = c.CfgRanking.PanelBoost
	}

	similarityCfg := similarity.DefaultConfig()
	if c.CfgRanking.SimilarityThreshold > 0 {
		similarityCfg.Threshold = c.CfgRanking.SimilarityThreshold
	}

	trendingCfg := trending.DefaultConfig()
	if c.CfgRanking.TrendingCacheTTL > 0 {
		trendingCfg.CacheTTL = c.CfgRanking.TrendingCacheTTL
	}

	// init ranking services
	calculator := weight.NewCalculator(weightCfg, userRepository, feedbackRepository, villageRepository, panelRepository, logger)
	aggregator := vote.NewAggregator(voteRepository, calculator, logger)
	matcher := similarity.NewMatcher(similarityCfg, feedbackRepository, logger)
	ranker := trending.NewRanker(trendingCfg, feedbackRepository, aggregator, redisClient, logger)
	tracker := panel.NewTracker(panel.DefaultTrackerConfig(), logger)

	// init ETL pipeline
	extractor := etl.NewPostgresExtractor(db, logger)
	transformer := etl.NewTransformer(logger)
	loader := etl.NewElasticLoader(esService, logger, db)
	pipeline := etl.NewPipeline(extractor, transformer, loader, logger, c.ETLInterval)
	go pipeline.Run(context.Background())

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler())

	// init handlers
	userHandlers := handlersUser.NewUserHandler(logger, userRepository, sessionRepository)
	feedbackHandlers := handlersFeedback.NewFeedbackHandler(logger, feedbackRepository, matcher, ranker, esService)
	voteHandlers := handlersVote.NewVoteHandler(logger, voteRepository, calculator, aggregator, producer)
	panelHandlers := handlersPanel.NewPanelHandler(logger, panelRepository, tracker)

	// Ручки требующие авторизации
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(sessionRepository, logger))

	authRouter.HandleFunc("/feedback", feedbackHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/feedback/{id}/vote", voteHandlers.Cast).Methods("POST")
	authRouter.HandleFunc("/feedback/{id}/vote", voteHandlers.Retract).Methods("DELETE")

	authRouter.HandleFunc("/user/{id}", userHandlers.ChangeProfile).Methods("PUT")

	// Ручки НЕ требующие авторизации
	noAuthRouter := r.PathPrefix("/api").Subrouter()

	noAuthRouter.HandleFunc("/user/register", userHandlers.Register).Methods("POST")
	noAuthRouter.HandleFunc("/user/login", userHandlers.Login).Methods("POST")
	noAuthRouter.HandleFunc("/user/{id}", userHandlers.Info).Methods("GET")

	// Специфичные маршруты регистрируются раньше /feedback/{id}
	noAuthRouter.HandleFunc("/feedback/trending", feedbackHandlers.Trending).Methods("GET")
	noAuthRouter.HandleFunc("/feedback/duplicates", feedbackHandlers.Duplicates).Methods("GET")
	noAuthRouter.HandleFunc("/feedback/search", feedbackHandlers.SearchByTitle).Methods("GET")
	noAuthRouter.HandleFunc("/feedback/{id}", feedbackHandlers.GetByID).Methods("GET")
	noAuthRouter.HandleFunc("/feedback/{id}/votes", voteHandlers.Stats).Methods("GET")

	noAuthRouter.HandleFunc("/panel/{id}", panelHandlers.GetByID).Methods("GET")
	noAuthRouter.HandleFunc("/panel/{id}/quotas", panelHandlers.QuotaReport).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}
