package procedure

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outcomes reported to an Observer.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Observer receives one observation per call.
type Observer interface {
	ObserveProcedure(id, outcome string, elapsed time.Duration)
}

// Config tunes an Executor.
type Config struct {
	// Timeout bounds every call. Zero leaves only the caller's deadline.
	Timeout time.Duration
	// Logger receives one debug line per call and failures at warn level.
	Logger *zap.Logger
	// Observer, when set, records call outcomes.
	Observer Observer
}

// Executor runs registered stored procedures against a pooled database.
// It holds no per-call state and is safe for concurrent use.
type Executor struct {
	db       *gorm.DB
	registry *Registry
	cfg      Config
}

// NewExecutor creates an executor. db may be nil when the database is
// unavailable; every call then fails with ErrBackend.
func NewExecutor(db *gorm.DB, registry *Registry, cfg Config) *Executor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Executor{db: db, registry: registry, cfg: cfg}
}

// Registry returns the registry the executor resolves identifiers against.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Query calls the procedure registered under id with params and maps every
// returned row through shape, preserving the backend's row order.
//
// A call that yields no rows returns an empty, non-nil slice. Every failure
// is a *DataAccessError. The connection borrowed for the call is released on
// every path. Calls are never retried.
func Query[T any](ctx context.Context, e *Executor, id string, params Params, shape Shape[T]) (result []T, err error) {
	p, ok := e.registry.Lookup(id)
	if !ok {
		p = Procedure{ID: id}
		err = newError(p, ErrUnknownProcedure, nil)
		e.report(p, 0, 0, err)
		return nil, err
	}

	start := time.Now()
	defer func() {
		e.report(p, time.Since(start), len(result), err)
	}()

	args, bindErr := p.bind(params)
	if bindErr != nil {
		return nil, newError(p, ErrParameterMismatch, bindErr)
	}
	if e.db == nil {
		return nil, newError(p, ErrBackend, errors.New("database unavailable"))
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	rows, qErr := e.db.WithContext(ctx).Raw(p.statement(), args...).Rows()
	if qErr != nil {
		return nil, classify(ctx, p, qErr)
	}
	defer rows.Close()

	columns, cErr := rows.Columns()
	if cErr != nil {
		return nil, classify(ctx, p, cErr)
	}
	assign := shape.assigners(columns)

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	result = make([]T, 0)
	for rows.Next() {
		if sErr := rows.Scan(dest...); sErr != nil {
			return nil, classify(ctx, p, sErr)
		}
		var rec T
		for i, fn := range assign {
			if fn != nil {
				fn(&rec, values[i])
			}
		}
		result = append(result, rec)
	}
	if rErr := rows.Err(); rErr != nil {
		return nil, classify(ctx, p, rErr)
	}

	return result, nil
}

func (e *Executor) report(p Procedure, elapsed time.Duration, rows int, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	if e.cfg.Observer != nil {
		e.cfg.Observer.ObserveProcedure(p.ID, outcome, elapsed)
	}

	fields := []zap.Field{
		zap.String("procedure", p.ID),
		zap.String("routine", p.Routine),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		e.cfg.Logger.Warn("Procedure call failed", append(fields, zap.Error(err))...)
		return
	}
	e.cfg.Logger.Debug("Procedure call completed", append(fields, zap.Int("rows", rows))...)
}
