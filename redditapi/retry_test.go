package redditapi

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietPolicy() Policy {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return Policy{Attempts: 5, Pause: 0, Log: log}
}

func TestRetrySucceedsOnFinalAttempt(t *testing.T) {
	calls := 0
	v, err := Do(quietPolicy(), func() (string, error) {
		calls++
		if calls < 5 {
			return "", &StatusError{Code: 503, Err: errors.New("upstream")}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", v)
	require.Equal(t, 5, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(quietPolicy(), func() (string, error) {
		calls++
		return "", &StatusError{Code: 503, Err: errors.New("upstream")}
	})
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	require.Equal(t, 5, calls)
}

func TestRetryPropagatesNonHTTPErrors(t *testing.T) {
	calls := 0
	boom := errors.New("malformed payload")
	_, err := Do(quietPolicy(), func() (string, error) {
		calls++
		return "", boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestStatusErrorTagging(t *testing.T) {
	err := &StatusError{Code: 429, Err: errors.New("rate limited")}
	require.True(t, IsHTTPError(err))
	require.False(t, IsHTTPError(errors.New("plain")))
}
