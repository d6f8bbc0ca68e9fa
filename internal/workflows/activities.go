package workflows

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/Keyring-Network/trendintel/internal/report"
)

type TrendFetcher interface {
	Fetch(ctx context.Context) (report.Record, error)
}

type Activities struct {
	fetcher TrendFetcher
}

func NewActivities(fetcher TrendFetcher) *Activities {
	return &Activities{fetcher: fetcher}
}

func (a *Activities) FetchTrends(ctx context.Context, input AnalysisInput) (report.Record, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("fetching trends", "run_id", input.RunID)
	return a.fetcher.Fetch(ctx)
}
