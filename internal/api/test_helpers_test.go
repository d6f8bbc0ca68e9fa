package api

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Keyring-Network/trendintel/internal/analysis"
	"github.com/Keyring-Network/trendintel/internal/config"
	"github.com/Keyring-Network/trendintel/internal/dashboard"
	"github.com/Keyring-Network/trendintel/internal/events"
	"github.com/Keyring-Network/trendintel/internal/logger"
	"github.com/Keyring-Network/trendintel/internal/report"
)

type MockController struct {
	mock.Mock
}

func (m *MockController) Start(ctx context.Context) <-chan analysis.State {
	args := m.Called(ctx)
	if value := args.Get(0); value != nil {
		return value.(<-chan analysis.State)
	}
	return nil
}

func (m *MockController) Snapshot() analysis.State {
	args := m.Called()
	return args.Get(0).(analysis.State)
}

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Subscribe(ctx context.Context) <-chan events.StateEvent {
	args := m.Called(ctx)
	if value := args.Get(0); value != nil {
		return value.(chan events.StateEvent)
	}
	return nil
}

func newServer(t *testing.T, controller Controller, broker Broker, cfg config.Config) *Server {
	t.Helper()
	renderer, err := dashboard.NewRenderer()
	require.NoError(t, err)
	return NewServer(controller, broker, renderer, cfg, logger.Discard())
}

func newTestServer(t *testing.T, controller Controller, broker Broker, cfg config.Config) *httptest.Server {
	t.Helper()
	return httptest.NewServer(newServer(t, controller, broker, cfg).Router())
}

func successState(t *testing.T, sources []report.Source) analysis.State {
	t.Helper()
	analytics, err := report.DefaultAnalytics()
	require.NoError(t, err)
	rec := analytics.Record("Global beauty keeps growing.", sources)
	return analysis.State{Status: analysis.StatusSuccess, Record: &rec, RunID: "run-1"}
}
