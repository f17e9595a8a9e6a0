package middleware

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/metrics"
	"github.com/guttosm/budget-service/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// PoolSize is the number of concurrent database writes.
	PoolSize int
	// WriteTimeout bounds a single database write.
	WriteTimeout time.Duration
	// ShutdownTimeout bounds how long Stop waits for in-flight writes.
	ShutdownTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		PoolSize:        64,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// AsyncLogger ships log entries to the logging service on a bounded ants
// pool. When every worker is busy the entry is dropped rather than blocking
// the request.
type AsyncLogger struct {
	loggingService  service.LoggingService
	pool            *ants.Pool
	mu              sync.RWMutex
	wg              sync.WaitGroup
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	stopped         bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger creates an async logger. A nil logging service yields a nil
// logger, which is safe to call.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) (*AsyncLogger, error) {
	if loggingService == nil {
		return nil, nil
	}
	def := DefaultAsyncLoggerConfig()
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = def.PoolSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}

	pool, err := ants.NewPool(cfg.PoolSize,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			log.Error().Interface("panic", p).Msg("async log writer panicked")
		}),
	)
	if err != nil {
		return nil, err
	}

	return &AsyncLogger{
		loggingService:  loggingService,
		pool:            pool,
		writeTimeout:    cfg.WriteTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Log schedules entry for writing. It returns false when the entry was
// dropped because the pool was saturated or the logger stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}
	al.mu.RLock()
	defer al.mu.RUnlock()
	if al.stopped {
		al.drop()
		return false
	}

	al.wg.Add(1)
	err := al.pool.Submit(func() {
		defer al.wg.Done()
		al.write(entry)
	})
	if err != nil {
		al.wg.Done()
		if !errors.Is(err, ants.ErrPoolOverload) && !errors.Is(err, ants.ErrPoolClosed) {
			log.Warn().Err(err).Msg("async log submit failed")
		}
		al.drop()
		return false
	}
	al.enqueued.Add(1)
	return true
}

func (al *AsyncLogger) drop() {
	al.dropped.Add(1)
	metrics.RecordAsyncLogDropped()
}

func (al *AsyncLogger) write(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.loggingService.CreateLog(ctx, entry); err != nil {
		al.failed.Add(1)
		log.Warn().Err(err).Str("action_type", entry.ActionType).Msg("failed to write async log entry")
		return
	}
	al.written.Add(1)
}

// Stop waits for in-flight writes, up to the shutdown timeout, and releases
// the pool. Further entries are dropped.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.mu.Lock()
	if al.stopped {
		al.mu.Unlock()
		return
	}
	al.stopped = true
	al.mu.Unlock()

	done := make(chan struct{})
	go func() {
		al.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(al.shutdownTimeout):
		log.Warn().Int("running", al.pool.Running()).Msg("async logger stopped with writes in flight")
	}
	al.pool.Release()
}

// Stats returns current async logger statistics.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, failed int64) {
	if al == nil {
		return 0, 0, 0, 0
	}
	return al.enqueued.Load(), al.dropped.Load(), al.written.Load(), al.failed.Load()
}
