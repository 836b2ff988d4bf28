package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/pkg/logger"
)

// TxOptions configures transaction behavior.
type TxOptions struct {
	IsoLevel       pgx.TxIsoLevel
	AccessMode     pgx.TxAccessMode
	DeferrableMode pgx.TxDeferrableMode
	Timeout        time.Duration
}

// DefaultTxOptions returns the options used for ordinary read-write work.
func DefaultTxOptions() TxOptions {
	return TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
		Timeout:    30 * time.Second,
	}
}

// SerializableTxOptions returns options for work that needs full isolation.
func SerializableTxOptions() TxOptions {
	return TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
		Timeout:    30 * time.Second,
	}
}

type txKey struct{}

// Tx carries the active transaction through the context.
type Tx struct {
	tx        pgx.Tx
	savepoint int
}

// TxManager manages database transactions over a pgx pool.
type TxManager struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

var _ tx.Manager = (*TxManager)(nil)
var _ tx.ReadOnlyManager = (*TxManager)(nil)

// NewTxManager creates a transaction manager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{
		pool:   pool,
		tracer: otel.Tracer("rma/tx"),
	}
}

// RunInTransaction executes fn inside a transaction with default options.
// Nested calls reuse the outer transaction through savepoints.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransactionWithOptions(ctx, DefaultTxOptions(), fn)
}

// RunInTransactionWithOptions executes fn inside a transaction with the given options.
func (m *TxManager) RunInTransactionWithOptions(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	if existing, ok := ctx.Value(txKey{}).(*Tx); ok {
		return m.handleNestedTransaction(ctx, existing, fn)
	}
	return m.startNewTransaction(ctx, opts, fn)
}

func (m *TxManager) startNewTransaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	ctx, span := m.tracer.Start(ctx, "tx",
		trace.WithAttributes(
			attribute.String("db.isolation", string(opts.IsoLevel)),
			attribute.String("db.access_mode", string(opts.AccessMode)),
		),
	)
	defer span.End()

	pgxTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:       opts.IsoLevel,
		AccessMode:     opts.AccessMode,
		DeferrableMode: opts.DeferrableMode,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin failed")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if opts.Timeout > 0 {
		timeout := fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", opts.Timeout.Milliseconds())
		if _, err := pgxTx.Exec(ctx, timeout); err != nil {
			_ = pgxTx.Rollback(ctx)
			span.RecordError(err)
			return fmt.Errorf("failed to set statement timeout: %w", err)
		}
	}

	txCtx := context.WithValue(ctx, txKey{}, &Tx{tx: pgxTx})

	if err := m.executeWithRollbackProtection(txCtx, pgxTx, fn); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tx failed")
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (m *TxManager) handleNestedTransaction(ctx context.Context, outer *Tx, fn func(ctx context.Context) error) error {
	outer.savepoint++
	name := fmt.Sprintf("sp_%d", outer.savepoint)

	if _, err := outer.tx.Exec(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := outer.tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			logger.Error(ctx, "failed to rollback to savepoint", "savepoint", name, "error", rbErr)
		}
		return err
	}

	if _, err := outer.tx.Exec(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

func (m *TxManager) executeWithRollbackProtection(ctx context.Context, pgxTx pgx.Tx, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				logger.Error(ctx, "rollback after panic failed", "error", rbErr)
			}
			panic(p)
		}
		if err != nil {
			if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				logger.Error(ctx, "rollback failed", "error", rbErr)
			}
		}
	}()
	return fn(ctx)
}

// ReadOnly executes fn inside a read-only transaction.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := DefaultTxOptions()
	opts.AccessMode = pgx.ReadOnly
	return m.RunInTransactionWithOptions(ctx, opts, fn)
}

// GetTx returns the active transaction from the context, if any.
func GetTx(ctx context.Context) (pgx.Tx, bool) {
	t, ok := ctx.Value(txKey{}).(*Tx)
	if !ok {
		return nil, false
	}
	return t.tx, true
}

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the active transaction if present, otherwise the pool.
// Repositories use it so the same code runs inside and outside transactions.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t, ok := GetTx(ctx); ok {
		return t
	}
	return m.pool
}
