package services

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Runtime carries the collaborators every ledger service shares: the wall
// clock, the user-local timezone for day keys and the logger.
type Runtime struct {
	Clock    Clock
	Location *time.Location
	Logger   logrus.FieldLogger
}

func (runtime Runtime) withDefaults() Runtime {
	if runtime.Clock == nil {
		runtime.Clock = SystemClock{}
	}
	if runtime.Location == nil {
		runtime.Location = time.UTC
	}
	if runtime.Logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		runtime.Logger = silent
	}
	return runtime
}

func (runtime Runtime) now() time.Time {
	return runtime.Clock.Now()
}

func (runtime Runtime) dayKey(value time.Time) string {
	return DayKey(value, runtime.Location)
}
