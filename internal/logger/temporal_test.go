package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestTemporalLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&LineFormatter{})
	base.SetLevel(logrus.DebugLevel)

	l := NewTemporalLogger(base)
	l.Info("activity completed", "run_id", "run-1", "dangling")
	l.Debug("debug line")

	out := buf.String()
	require.Contains(t, out, "activity completed")
	require.Contains(t, out, "run_id=run-1")
	require.Contains(t, out, "dangling=(missing)")
	require.Contains(t, out, "debug line")
}
