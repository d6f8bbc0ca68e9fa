package main

import (
	"log"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/Keyring-Network/trendintel/internal/config"
	"github.com/Keyring-Network/trendintel/internal/logger"
	"github.com/Keyring-Network/trendintel/internal/trends"
	"github.com/Keyring-Network/trendintel/internal/workflows"
)

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	dialTemporal    = client.Dial
	newFetcher      = trends.FromConfig
	newWorker       = worker.New
	workerInterrupt = worker.InterruptCh
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
	temporalClient, err := dialTemporal(client.Options{
		HostPort: cfg.TemporalAddress,
		Logger:   logger.NewTemporalLogger(logr),
	})
	if err != nil {
		return err
	}
	if temporalClient != nil {
		defer temporalClient.Close()
	}

	fetcher, err := newFetcher(cfg, logr)
	if err != nil {
		return err
	}

	w := newWorker(temporalClient, cfg.TemporalTaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.AnalysisWorkflow)
	w.RegisterActivity(workflows.NewActivities(fetcher))

	logr.WithField("task_queue", cfg.TemporalTaskQueue).Info("TrendIntel worker started")
	if err := w.Run(workerInterrupt()); err != nil {
		return err
	}

	return nil
}
