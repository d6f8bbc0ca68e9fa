package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Keyring-Network/trendintel/internal/report"
)

const FetchTrendsActivity = "FetchTrends"

type AnalysisInput struct {
	RunID string
}

// AnalysisWorkflow runs one trend fetch. The model call is never retried.
func AnalysisWorkflow(ctx workflow.Context, input AnalysisInput) (report.Record, error) {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 20 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)
	logger := workflow.GetLogger(ctx)

	var record report.Record
	if err := workflow.ExecuteActivity(ctx, FetchTrendsActivity, input).Get(ctx, &record); err != nil {
		logger.Error("fetch trends activity failed", "run_id", input.RunID, "error", err)
		return report.Record{}, err
	}
	logger.Info("fetch trends activity completed", "run_id", input.RunID, "sources", len(record.Sources))
	return record, nil
}
