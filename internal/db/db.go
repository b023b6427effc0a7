package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"memories-backend/internal/config"
	"memories-backend/internal/store"
	"memories-backend/internal/store/memstore"
	"memories-backend/internal/store/mongostore"
	"memories-backend/internal/store/pgstore"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// ErrNotReady is returned while no store is connected.
var ErrNotReady = errors.New("database not ready")

// Opener opens one store. It must release anything it created when it fails.
type Opener func(ctx context.Context) (store.Store, error)

// Handle owns the shared store. It starts empty and is filled once Connect
// succeeds, so handlers can tell "not connected yet" apart from a query error.
type Handle struct {
	mu      sync.RWMutex
	st      store.Store
	lastErr error
}

func NewHandle() *Handle {
	return &Handle{}
}

// NewReadyHandle wraps an already open store.
func NewReadyHandle(st store.Store) *Handle {
	h := NewHandle()
	h.Set(st)
	return h
}

// Store returns the connected store or ErrNotReady.
func (h *Handle) Store() (store.Store, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.st == nil {
		return nil, ErrNotReady
	}
	return h.st, nil
}

func (h *Handle) Set(st store.Store) {
	h.mu.Lock()
	h.st = st
	h.lastErr = nil
	h.mu.Unlock()
}

// LastError is the error of the most recent failed connect attempt.
func (h *Handle) LastError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}

func (h *Handle) Ping(ctx context.Context) error {
	st, err := h.Store()
	if err != nil {
		if last := h.LastError(); last != nil {
			return fmt.Errorf("%w: %v", ErrNotReady, last)
		}
		return err
	}
	return st.Ping(ctx)
}

// Close closes the store, if any, and returns the handle to the not-ready state.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	st := h.st
	h.st = nil
	h.mu.Unlock()
	if st == nil {
		return nil
	}
	return st.Close(ctx)
}

type ConnectOptions struct {
	// Retries is the number of attempts after the first one.
	Retries         int
	Timeout         time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Connect calls open until it succeeds, the retries are used up or ctx ends.
// The final error is logged and returned; the handle stays not ready.
func (h *Handle) Connect(ctx context.Context, open Opener, opts ConnectOptions, log zerolog.Logger) error {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	b := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		b.InitialInterval = opts.InitialInterval
	}
	if opts.MaxInterval > 0 {
		b.MaxInterval = opts.MaxInterval
	}
	b.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		st, err := open(attemptCtx)
		if err != nil {
			h.mu.Lock()
			h.lastErr = err
			h.mu.Unlock()
			return err
		}
		h.Set(st)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(opts.Retries)), ctx)
	err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("database connection failed, retrying")
	})
	if err != nil {
		log.Error().Err(err).Int("attempts", attempt).Msg("database connection error")
		return err
	}

	log.Info().Int("attempts", attempt).Msg("connected to database")
	return nil
}

// OpenerFor picks the store backend named by cfg.DBDriver.
func OpenerFor(cfg *config.Config) (Opener, error) {
	switch cfg.DBDriver {
	case config.DriverMongo, "mongodb", "":
		return func(ctx context.Context) (store.Store, error) {
			return mongostore.Open(ctx, cfg.DatabaseURL, cfg.DBName)
		}, nil
	case config.DriverPostgres, "postgresql", "pgx":
		return func(ctx context.Context) (store.Store, error) {
			return pgstore.Open(ctx, cfg.DatabaseURL)
		}, nil
	case config.DriverMemory:
		return func(ctx context.Context) (store.Store, error) {
			return memstore.New(), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
