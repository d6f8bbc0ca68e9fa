// Package analysis owns the process-wide state of the trend analysis: its
// status, the last report and the last error message.
package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Keyring-Network/trendintel/internal/events"
	"github.com/Keyring-Network/trendintel/internal/report"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// FallbackErrorMessage is shown when a failure carries no message of its own.
const FallbackErrorMessage = "An unexpected error occurred while analyzing trends."

const fetchKey = "fetch"

type State struct {
	Status     Status         `json:"status"`
	Record     *report.Record `json:"record,omitempty"`
	Error      string         `json:"error,omitempty"`
	RunID      string         `json:"run_id,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

type Fetcher interface {
	Fetch(ctx context.Context) (report.Record, error)
}

type Publisher interface {
	Publish(event events.StateEvent)
}

type Controller struct {
	fetcher   Fetcher
	publisher Publisher
	log       logrus.FieldLogger

	group singleflight.Group

	mu    sync.Mutex
	state State
	seq   int64

	now   func() time.Time
	newID func() string
}

func NewController(fetcher Fetcher, publisher Publisher, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		fetcher:   fetcher,
		publisher: publisher,
		log:       log,
		state:     State{Status: StatusIdle},
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start moves the controller to loading before returning and fetches a new
// report in the background. A trigger that arrives while a fetch is in flight
// joins it. The returned channel yields the settled state of this trigger once.
func (c *Controller) Start(ctx context.Context) <-chan State {
	c.mu.Lock()
	runID := c.newID()
	c.state.Status = StatusLoading
	c.state.Error = ""
	c.state.RunID = runID
	c.state.StartedAt = c.now()
	c.state.FinishedAt = time.Time{}
	c.publishLocked(events.TypeLoading)
	c.mu.Unlock()

	log := c.log.WithField("run_id", runID)
	log.Info("analysis started")

	fetchCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(fetchKey, func() (any, error) {
		return c.fetcher.Fetch(fetchCtx)
	})

	out := make(chan State, 1)
	go func() {
		res := <-results
		var record *report.Record
		if res.Err == nil {
			if value, ok := res.Val.(report.Record); ok {
				record = &value
			}
		}
		settled := c.settle(runID, record, res.Err)
		if res.Err != nil {
			log.WithField("shared", res.Shared).Warnf("analysis failed: %s", settled.Error)
		} else {
			log.WithField("shared", res.Shared).Info("analysis succeeded")
		}
		out <- settled
		close(out)
	}()
	return out
}

// settle applies the outcome of runID. Outcomes of superseded runs are returned
// to their caller but leave the controller untouched.
func (c *Controller) settle(runID string, record *report.Record, err error) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	next.RunID = runID
	next.FinishedAt = c.now()
	eventType := events.TypeSucceeded
	if err != nil {
		next.Status = StatusError
		next.Error = errorMessage(err)
		eventType = events.TypeFailed
	} else {
		next.Status = StatusSuccess
		next.Error = ""
		next.Record = record
	}

	if c.state.RunID != runID {
		return next
	}
	c.state = next
	c.publishLocked(eventType)
	return next
}

func (c *Controller) publishLocked(eventType string) {
	if c.publisher == nil {
		return
	}
	c.seq++
	c.publisher.Publish(events.StateEvent{
		Seq:    c.seq,
		Type:   eventType,
		RunID:  c.state.RunID,
		Status: string(c.state.Status),
		Ts:     c.now().Format(time.RFC3339Nano),
		Error:  c.state.Error,
	})
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return err.Error()
	}
	return FallbackErrorMessage
}
