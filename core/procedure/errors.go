package procedure

import (
	"context"
	"errors"
	"fmt"

	"cnet-api/core/apierror"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUnknownProcedure: the procedure is not registered or the backend does not declare it.
	ErrUnknownProcedure = errors.New("unknown procedure")
	// ErrParameterMismatch: the parameter bag does not match the declared parameters.
	ErrParameterMismatch = errors.New("parameter mismatch")
	// ErrBackend: the backend is unavailable or failed while executing the call.
	ErrBackend = errors.New("backend failure")
	// ErrTimeout: the call exceeded its deadline.
	ErrTimeout = errors.New("procedure call timed out")
)

// MySQL server error numbers mapped to specific kinds.
const (
	mysqlErrSPDoesNotExist  = 1305
	mysqlErrSPWrongNoOfArgs = 1318
)

// DataAccessError reports a failed procedure call. It is distinct from an
// empty result, which is a nil error and an empty slice.
type DataAccessError struct {
	// Procedure is the logical procedure identifier.
	Procedure string
	// Routine is the backend routine name, when known.
	Routine string
	// Kind is one of the Err* sentinels.
	Kind error
	// Err is the underlying cause, possibly nil.
	Err error
}

func (e *DataAccessError) Error() string {
	name := e.Procedure
	if e.Routine != "" {
		name = fmt.Sprintf("%s (%s)", e.Procedure, e.Routine)
	}
	if e.Err != nil {
		return fmt.Sprintf("data access: procedure %s: %v: %v", name, e.Kind, e.Err)
	}
	return fmt.Sprintf("data access: procedure %s: %v", name, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DataAccessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(p Procedure, kind, cause error) *DataAccessError {
	return &DataAccessError{Procedure: p.ID, Routine: p.Routine, Kind: kind, Err: cause}
}

// classify maps a driver or context error to a DataAccessError. Drivers
// report cancellation in their own words, so the call's context is consulted too.
func classify(ctx context.Context, p Procedure, err error) *DataAccessError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newError(p, ErrTimeout, err)
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrSPDoesNotExist:
			return newError(p, ErrUnknownProcedure, err)
		case mysqlErrSPWrongNoOfArgs:
			return newError(p, ErrParameterMismatch, err)
		}
	}

	return newError(p, ErrBackend, err)
}

// Classify is an apierror.Classifier for DataAccessError.
func Classify(err error) *apierror.Error {
	var dae *DataAccessError
	if !errors.As(err, &dae) {
		return nil
	}
	if errors.Is(dae.Kind, ErrTimeout) {
		return apierror.Wrap(apierror.KindDataAccess, "data access timed out", err)
	}
	return apierror.Wrap(apierror.KindDataAccess, "data access failed", err)
}
