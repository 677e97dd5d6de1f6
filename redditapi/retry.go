package redditapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrAttemptsExhausted is returned once a retried operation has failed on
// its final attempt.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Policy bounds the retries of one remote operation. Only HTTP-level
// failures are retried; anything else propagates on the first attempt.
type Policy struct {
	Attempts int
	Pause    time.Duration
	Log      *logrus.Logger
}

func DefaultPolicy(log *logrus.Logger) Policy {
	return Policy{Attempts: 5, Pause: 15 * time.Second, Log: log}
}

// Do invokes op until it succeeds, a non-HTTP error occurs, or the
// attempt budget runs out.
func Do[T any](p Policy, op func() (T, error)) (T, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		v, err := op()
		if err == nil {
			return v, nil
		}
		if !IsHTTPError(err) {
			return zero, err
		}
		if attempt >= p.Attempts {
			return zero, fmt.Errorf("%v: %w", err, ErrAttemptsExhausted)
		}
		if p.Log != nil {
			p.Log.WithError(err).WithField("attempt", attempt).Warn("Request failed, trying again")
		}
		time.Sleep(p.Pause)
	}
}
