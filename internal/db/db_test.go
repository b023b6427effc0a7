package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"memories-backend/internal/config"
	"memories-backend/internal/store"
	"memories-backend/internal/store/memstore"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions(retries int) ConnectOptions {
	return ConnectOptions{
		Retries:         retries,
		Timeout:         time.Second,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func TestHandleNotReady(t *testing.T) {
	h := NewHandle()

	_, err := h.Store()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, h.Ping(context.Background()), ErrNotReady)
	assert.NoError(t, h.Close(context.Background()))
}

func TestHandleReady(t *testing.T) {
	mem := memstore.New()
	h := NewReadyHandle(mem)

	st, err := h.Store()
	require.NoError(t, err)
	assert.Same(t, mem, st)
	assert.NoError(t, h.Ping(context.Background()))

	require.NoError(t, h.Close(context.Background()))
	_, err = h.Store()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, mem.Ping(context.Background()), memstore.ErrClosed)
}

func TestConnectRetriesUntilSuccess(t *testing.T) {
	h := NewHandle()
	calls := 0
	open := func(ctx context.Context) (store.Store, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return memstore.New(), nil
	}

	buf := &bytes.Buffer{}
	err := h.Connect(context.Background(), open, fastOptions(5), zerolog.New(buf))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	_, err = h.Store()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "retrying")
	assert.Contains(t, buf.String(), "connected to database")
}

func TestConnectGivesUpAfterRetries(t *testing.T) {
	h := NewHandle()
	calls := 0
	boom := errors.New("connection refused")
	open := func(ctx context.Context) (store.Store, error) {
		calls++
		return nil, boom
	}

	buf := &bytes.Buffer{}
	err := h.Connect(context.Background(), open, fastOptions(2), zerolog.New(buf))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, h.LastError(), boom)

	pingErr := h.Ping(context.Background())
	assert.ErrorIs(t, pingErr, ErrNotReady)
	assert.Contains(t, pingErr.Error(), "connection refused")
	assert.Contains(t, buf.String(), "database connection error")
}

func TestConnectStopsOnCancel(t *testing.T) {
	h := NewHandle()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	open := func(ctx context.Context) (store.Store, error) {
		return nil, errors.New("unreachable")
	}
	err := h.Connect(ctx, open, fastOptions(100), zerolog.Nop())

	assert.Error(t, err)
	_, err = h.Store()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestOpenerFor(t *testing.T) {
	for _, driver := range []string{"mongo", "postgres", "memory", ""} {
		_, err := OpenerFor(&config.Config{DBDriver: driver})
		assert.NoError(t, err, driver)
	}

	_, err := OpenerFor(&config.Config{DBDriver: "cassandra"})
	assert.Error(t, err)

	open, err := OpenerFor(&config.Config{DBDriver: config.DriverMemory})
	require.NoError(t, err)
	st, err := open(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, st)
}
