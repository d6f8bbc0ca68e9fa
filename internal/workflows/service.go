package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Keyring-Network/trendintel/internal/report"
)

const DefaultTaskQueue = "trendintel-analysis"

// Service runs trend fetches as workflows and waits for their result.
type Service struct {
	client    client.Client
	taskQueue string
	newID     func() string
}

func NewService(client client.Client, taskQueue string) *Service {
	if taskQueue == "" {
		taskQueue = DefaultTaskQueue
	}
	return &Service{client: client, taskQueue: taskQueue, newID: uuid.NewString}
}

func (s *Service) Fetch(ctx context.Context) (report.Record, error) {
	runID := s.newID()
	options := client.StartWorkflowOptions{
		ID:        workflowID(runID),
		TaskQueue: s.taskQueue,
	}
	run, err := s.client.ExecuteWorkflow(ctx, options, AnalysisWorkflow, AnalysisInput{RunID: runID})
	if err != nil {
		return report.Record{}, err
	}
	var record report.Record
	if err := run.Get(ctx, &record); err != nil {
		return report.Record{}, activityFailure(err)
	}
	return record, nil
}

// activityFailure strips the workflow and activity wrappers so callers see the
// message the fetch itself failed with.
func activityFailure(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return errors.New(appErr.Message())
	}
	return err
}

func workflowID(runID string) string {
	return fmt.Sprintf("analysis:%s", runID)
}
