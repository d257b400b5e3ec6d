package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pharmaflux/internal/config"
	"pharmaflux/internal/database"
	dbpostgres "pharmaflux/internal/database/postgres"
	"pharmaflux/internal/domain/matching"
	"pharmaflux/internal/infrastructure/cache"
	"pharmaflux/internal/infrastructure/geocode"
	"pharmaflux/internal/infrastructure/mailer"
	"pharmaflux/internal/pkg/logger"
	"pharmaflux/internal/repository"
	"pharmaflux/internal/usecase"
	"pharmaflux/internal/worker"
	"pharmaflux/internal/ws"
)

// Container owns the long-lived infrastructure: pool, cache, dispatcher
// and hub. Everything request-scoped hangs off these.
type Container struct {
	Config     config.Config
	Logger     *zap.Logger
	DB         database.DB
	Cache      *cache.Redis
	Geocoder   geocode.Client
	Mailer     mailer.Mailer
	Dispatcher *worker.Dispatcher
	Matcher    *usecase.Matching
	Hub        *ws.Hub

	cancel context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	log := logger.New(cfg.App.LogLevel, cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("database connect failed", zap.Error(err))
		return nil, err
	}

	cacheClient := cache.NewRedis(log)

	mail, err := mailer.NewSES(context.Background(), cfg.Mailer)
	if err != nil {
		log.Warn("mailer disabled", zap.Error(err))
	}

	profiles := repository.NewPostgresProfileRepository(db)
	missions := repository.NewPostgresMissionRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)

	engine := matching.NewEngine(matching.Criteria{RadiusKm: cfg.Matching.RadiusKm})
	matcher := usecase.NewMatchingUsecase(missions, profiles, applications, engine, cacheClient, log)

	dispatcher := worker.NewDispatcher(cfg.Matching.Workers, 64, log)

	hub := ws.NewHub(log)
	ws.SetDefaultHub(hub)

	workCtx, cancelWork := context.WithCancel(context.Background())
	go hub.Run()
	dispatcher.Run(workCtx)

	c := &Container{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Cache:      cacheClient,
		Geocoder:   geocode.NewClient(cfg.Geocoder),
		Dispatcher: dispatcher,
		Matcher:    matcher,
		Hub:        hub,
		cancel:     cancelWork,
	}
	if mail != nil {
		c.Mailer = mail
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Dispatcher != nil {
		c.Dispatcher.Close()
		c.Dispatcher.Wait()
	}
	if c.cancel != nil {
		c.cancel()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
