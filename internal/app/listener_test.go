package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakySource struct {
	calls    atomic.Int32
	failures int32
	cancel   context.CancelFunc
}

func (s *flakySource) Listen(ctx context.Context) error {
	n := s.calls.Add(1)
	if n <= s.failures {
		return errors.New("connection reset")
	}
	s.cancel()
	<-ctx.Done()
	return nil
}

func TestListenerReconnectsAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &flakySource{failures: 2, cancel: cancel}
	listener := NewListener(source, zap.NewNop())
	listener.retryDelay = time.Millisecond

	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}

	assert.Equal(t, int32(3), source.calls.Load())
}

func TestListenerStopsWhileWaitingToRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	source := &flakySource{failures: 100, cancel: cancel}
	listener := NewListener(source, zap.NewNop())
	listener.retryDelay = time.Hour

	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	require.Eventually(t, func() bool { return source.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}
