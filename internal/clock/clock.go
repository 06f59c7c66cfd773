package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time to code that stamps file names and
// fallback dates.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func System() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(System),
)
