package main

import (
	"errors"
	"testing"

	"github.com/nexus-rpc/sdk-go/nexus"
	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Keyring-Network/trendintel/internal/config"
	"github.com/Keyring-Network/trendintel/internal/logger"
	"github.com/Keyring-Network/trendintel/internal/trends"
)

type stubWorker struct {
	runErr     error
	startErr   error
	workflows  int
	activities int
}

func (s *stubWorker) RegisterWorkflow(w interface{}) { s.workflows++ }

func (s *stubWorker) RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions) {}

func (s *stubWorker) RegisterDynamicWorkflow(w interface{}, options workflow.DynamicRegisterOptions) {
}

func (s *stubWorker) RegisterActivity(a interface{}) { s.activities++ }

func (s *stubWorker) RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions) {}

func (s *stubWorker) RegisterDynamicActivity(a interface{}, options activity.DynamicRegisterOptions) {
}

func (s *stubWorker) RegisterNexusService(_ *nexus.Service) {}

func (s *stubWorker) Start() error {
	return s.startErr
}

func (s *stubWorker) Run(_ <-chan interface{}) error {
	return s.runErr
}

func (s *stubWorker) Stop() {}

func captureWorkerDeps() func() {
	origLoadConfig := loadConfig
	origNewLogger := newLogger
	origDialTemporal := dialTemporal
	origNewFetcher := newFetcher
	origNewWorker := newWorker
	origWorkerInterrupt := workerInterrupt

	return func() {
		loadConfig = origLoadConfig
		newLogger = origNewLogger
		dialTemporal = origDialTemporal
		newFetcher = origNewFetcher
		newWorker = origNewWorker
		workerInterrupt = origWorkerInterrupt
	}
}

func stubWorkerDeps(w *stubWorker) {
	newLogger = func(_ string, _ string) (*logrus.Logger, error) {
		return logger.Discard(), nil
	}
	dialTemporal = func(_ client.Options) (client.Client, error) {
		return nil, nil
	}
	newFetcher = func(_ config.Config, _ logrus.FieldLogger) (*trends.Fetcher, error) {
		return trends.NewFetcher(nil, trends.Options{}), nil
	}
	newWorker = func(_ client.Client, _ string, _ worker.Options) worker.Worker {
		return w
	}
	workerInterrupt = func() <-chan interface{} {
		return make(chan interface{})
	}
}

func TestRunSuccess(t *testing.T) {
	restore := captureWorkerDeps()
	t.Cleanup(restore)

	w := &stubWorker{}
	stubWorkerDeps(w)
	loadConfig = func() (config.Config, error) {
		return config.Config{TemporalAddress: "localhost:7233", TemporalTaskQueue: "trendintel-analysis"}, nil
	}

	if err := run(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if w.workflows != 1 || w.activities != 1 {
		t.Fatalf("expected one workflow and one activity, got %d and %d", w.workflows, w.activities)
	}
}

func TestRunConfigLoadFailure(t *testing.T) {
	restore := captureWorkerDeps()
	t.Cleanup(restore)

	loadConfig = func() (config.Config, error) {
		return config.Config{}, errors.New("config load failed")
	}

	if err := run(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunTemporalClientFailure(t *testing.T) {
	restore := captureWorkerDeps()
	t.Cleanup(restore)

	stubWorkerDeps(&stubWorker{})
	loadConfig = func() (config.Config, error) {
		return config.Config{TemporalAddress: "localhost:7233"}, nil
	}
	dialTemporal = func(_ client.Options) (client.Client, error) {
		return nil, errors.New("temporal dial failed")
	}

	if err := run(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunFetcherFailure(t *testing.T) {
	restore := captureWorkerDeps()
	t.Cleanup(restore)

	stubWorkerDeps(&stubWorker{})
	loadConfig = func() (config.Config, error) {
		return config.Config{LLMProvider: "mystery"}, nil
	}
	newFetcher = func(_ config.Config, _ logrus.FieldLogger) (*trends.Fetcher, error) {
		return nil, errors.New("unsupported LLM provider: mystery")
	}

	if err := run(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunWorkerFailure(t *testing.T) {
	restore := captureWorkerDeps()
	t.Cleanup(restore)

	stubWorkerDeps(&stubWorker{runErr: errors.New("worker stopped")})
	loadConfig = func() (config.Config, error) {
		return config.Config{}, nil
	}

	if err := run(); err == nil {
		t.Fatal("expected error, got nil")
	}
}
