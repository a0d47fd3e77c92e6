package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"codedcode/internal/domain"
	"codedcode/internal/metrics"
)

// Pool defaults.
const (
	DefaultMaxOpenConns     = 20
	DefaultMaxIdleConns     = 2
	DefaultConnMaxLifetime  = 30 * time.Minute
	DefaultConnMaxIdleTime  = 30 * time.Second
	DefaultOperationTimeout = 5 * time.Second
)

// membershipEmailConstraint is the unique constraint guarding membership emails.
const membershipEmailConstraint = "membership_applications_email_key"

// PoolConfig tunes the shared connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open creates the connection pool. It does not dial; call Ping to check connectivity.
func Open(dsn string, cfg PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime <= 0 {
		cfg.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

// store is embedded by every repository. Each operation runs under its own deadline,
// detached from request cancellation so a started statement completes or times out.
type store struct {
	DB      *sql.DB
	timeout time.Duration
}

func newStore(db *sql.DB, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	return store{DB: db, timeout: timeout}
}

func (s store) begin(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

// done records the query metric and classifies err.
func (s store) done(op string, start time.Time, err error) error {
	err = classify(err)
	metrics.RecordDBQuery(op, time.Since(start), ignoreNotFound(err))
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// classify maps driver errors onto domain sentinels, keeping the original in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505" && pqErr.Constraint == membershipEmailConstraint:
			return fmt.Errorf("%w: %w", domain.ErrDuplicateEmail, err)
		case pqErr.Code == "23505":
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		// 57014 is a statement timeout or a cancel sent when the request context expired.
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "53",
			pqErr.Code == "57014", pqErr.Code == "57P01", pqErr.Code == "57P03":
			return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		}
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}

type probe struct {
	store
}

// NewProbe returns a domain.StoreProbe that pings db under the operation timeout.
func NewProbe(db *sql.DB, timeout time.Duration) domain.StoreProbe {
	return &probe{store: newStore(db, timeout)}
}

func (p *probe) Ping(ctx context.Context) error {
	ctx, cancel := p.begin(ctx)
	defer cancel()
	start := time.Now()
	err := p.DB.PingContext(ctx)
	return p.done("ping", start, err)
}
