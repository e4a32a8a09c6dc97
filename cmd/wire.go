package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/badnails/TestProjectGateway/internal/adapters/gateway"
	"github.com/badnails/TestProjectGateway/internal/adapters/metrics"
	terminaladapter "github.com/badnails/TestProjectGateway/internal/adapters/render/terminal"
	memoryrepo "github.com/badnails/TestProjectGateway/internal/adapters/repo/memory"
	redisrepo "github.com/badnails/TestProjectGateway/internal/adapters/repo/redis"
	tomlrepo "github.com/badnails/TestProjectGateway/internal/adapters/repo/toml"
	"github.com/badnails/TestProjectGateway/internal/application"
	"github.com/badnails/TestProjectGateway/internal/config"
	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/logging"
	"github.com/badnails/TestProjectGateway/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

type app struct {
	config           *config.Config
	logger           *slog.Logger
	repo             ports.SessionRepository
	controller       *application.Controller
	metrics          *metrics.Recorder
	terminalRenderer func(domain.Session) (string, error)
	closers          []func() error
}

func wireApp(opts config.Options, logOutput io.Writer) (*app, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	a := &app{
		config:           cfg,
		logger:           logger,
		metrics:          metrics.NewRecorder(),
		terminalRenderer: terminaladapter.Render,
	}

	repo, err := a.wireRepository()
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}
	a.repo = repo

	api := gateway.API{
		BaseURL:                 cfg.Gateway.BaseURL,
		ValidateUserPath:        cfg.Gateway.ValidateUserPath,
		CompleteTransactionPath: cfg.Gateway.CompleteTransactionPath,
	}
	if err := api.Validate(); err != nil {
		return nil, fmt.Errorf("wire gateway client: %w", err)
	}
	client := gateway.Client{
		API:            api,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.Gateway.Timeout,
	}

	a.controller = application.NewController(repo, client, a.metrics, logger)

	return a, nil
}

func (a *app) wireRepository() (ports.SessionRepository, error) {
	store := a.config.Store

	switch store.Driver {
	case config.StoreDriverMemory:
		return memoryrepo.NewRepository(), nil
	case config.StoreDriverRedis:
		opts, err := goredis.ParseURL(store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse store.redis_url: %w", err)
		}
		client := goredis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		return redisrepo.NewRepository(client, store.RedisPrefix, store.TTL), nil
	default:
		return tomlrepo.NewRepository(a.config.Viper())
	}
}

func (a *app) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil

	return errors.Join(errs...)
}
