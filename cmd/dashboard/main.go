package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/client"

	"github.com/Keyring-Network/trendintel/internal/analysis"
	"github.com/Keyring-Network/trendintel/internal/api"
	"github.com/Keyring-Network/trendintel/internal/config"
	"github.com/Keyring-Network/trendintel/internal/dashboard"
	"github.com/Keyring-Network/trendintel/internal/events"
	"github.com/Keyring-Network/trendintel/internal/logger"
	"github.com/Keyring-Network/trendintel/internal/trends"
	"github.com/Keyring-Network/trendintel/internal/workflows"
)

type server interface {
	Start(ctx context.Context, addr string) error
}

var (
	loadConfig         = config.Load
	newLogger          = logger.New
	newBroker          = events.NewBroker
	newFetcher         = trends.FromConfig
	newRenderer        = dashboard.NewRenderer
	dialTemporal       = client.Dial
	newWorkflowService = func(c client.Client, taskQueue string) analysis.Fetcher {
		return workflows.NewService(c, taskQueue)
	}
	newServer = func(controller *analysis.Controller, broker *events.Broker, renderer *dashboard.Renderer, cfg config.Config, log *logrus.Logger) server {
		return api.NewServer(controller, broker, renderer, cfg, log)
	}
	notifyContext = signal.NotifyContext
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logr, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	ctx, cancel := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.APIKey == "" {
		logr.Warn("API_KEY is not set; analysis requests will fail")
	}

	var fetcher analysis.Fetcher
	switch cfg.AnalysisMode {
	case config.ModeTemporal:
		workflowClient, err := dialTemporal(client.Options{
			HostPort: cfg.TemporalAddress,
			Logger:   logger.NewTemporalLogger(logr),
		})
		if err != nil {
			return err
		}
		if workflowClient != nil {
			defer workflowClient.Close()
		}
		fetcher = newWorkflowService(workflowClient, cfg.TemporalTaskQueue)
	default:
		inline, err := newFetcher(cfg, logr)
		if err != nil {
			return err
		}
		fetcher = inline
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	broker := newBroker()
	controller := analysis.NewController(fetcher, broker, logr)
	server := newServer(controller, broker, renderer, cfg, logr)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logr.WithField("mode", cfg.AnalysisMode).Infof("TrendIntel dashboard listening on %s", addr)
	if err := server.Start(ctx, addr); err != nil {
		return err
	}

	return nil
}
