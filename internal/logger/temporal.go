package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/log"
)

// TemporalLogger routes Temporal SDK key/value logs through logrus.
type TemporalLogger struct {
	log logrus.FieldLogger
}

var _ log.Logger = TemporalLogger{}

func NewTemporalLogger(l logrus.FieldLogger) TemporalLogger {
	return TemporalLogger{log: l}
}

func (l TemporalLogger) withKeyvals(keyvals []interface{}) logrus.FieldLogger {
	fields := logrus.Fields{}
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 < len(keyvals) {
			fields[key] = keyvals[i+1]
		} else {
			fields[key] = "(missing)"
		}
	}
	return l.log.WithFields(fields)
}

func (l TemporalLogger) Debug(msg string, keyvals ...interface{}) { l.withKeyvals(keyvals).Debug(msg) }
func (l TemporalLogger) Info(msg string, keyvals ...interface{})  { l.withKeyvals(keyvals).Info(msg) }
func (l TemporalLogger) Warn(msg string, keyvals ...interface{})  { l.withKeyvals(keyvals).Warn(msg) }
func (l TemporalLogger) Error(msg string, keyvals ...interface{}) { l.withKeyvals(keyvals).Error(msg) }
