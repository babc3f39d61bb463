package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/safetrip/safetrip/internal/domain"
)

// Accessor hands out the shared store handle. Every repository operation
// goes through Acquire so liveness is revalidated before use.
type Accessor interface {
	Acquire(ctx context.Context) (*gorm.DB, error)
	OpContext(ctx context.Context) (context.Context, context.CancelFunc)
}

// Store owns the pooled connection to PostgreSQL. The handle is shared
// process-wide; callers never own it exclusively. Acquire pings the cached
// handle and reopens it once when the probe fails, which is the single
// internal retry before ErrStoreUnavailable surfaces.
type Store struct {
	dsn            string
	connectTimeout time.Duration
	opTimeout      time.Duration
	logger         *zap.Logger

	mu sync.Mutex
	db *gorm.DB
}

func NewStore(dsn string, connectTimeout, opTimeout time.Duration, logger *zap.Logger) *Store {
	return &Store{
		dsn:            dsn,
		connectTimeout: connectTimeout,
		opTimeout:      opTimeout,
		logger:         logger,
	}
}

// Acquire returns the shared handle, revalidated with a bounded ping.
// Safe for concurrent use.
func (s *Store) Acquire(ctx context.Context) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.ping(ctx, s.db)
		if err == nil {
			return s.db.WithContext(ctx), nil
		}
		s.logger.Warn("cached store handle is stale, reconnecting", zap.Error(err))
		s.closeHandle(s.db)
		s.db = nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	s.db = db

	return s.db.WithContext(ctx), nil
}

// OpContext bounds a single store operation.
func (s *Store) OpContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// Ping probes the current handle without reconnecting.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()

	if db == nil {
		return domain.ErrStoreUnavailable
	}
	if err := s.ping(ctx, db); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the pooled connection.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		s.closeHandle(s.db)
		s.db = nil
	}
}

func (s *Store) open(ctx context.Context) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(s.dsn), &gorm.Config{
		// Unique-constraint violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := s.ping(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	// Auto-migrate tables
	if err := db.AutoMigrate(
		&domain.Account{},
		&domain.Spot{},
		&domain.Application{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	s.logger.Info("connected to store")
	return db, nil
}

func (s *Store) ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.connectTimeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

func (s *Store) closeHandle(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// translateStoreErr maps operation timeouts and connection-level failures
// onto ErrStoreUnavailable so callers see a retryable 503 rather than an
// opaque failure. Data-shaped errors pass through untouched.
func translateStoreErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	// Drivers report a hit deadline in their own vocabulary; the bounded
	// operation context is the authority for what happened.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}
