// Package procedure runs backend stored procedures and maps their rows to
// typed records.
//
// A Procedure declaration binds a logical identifier to a routine and its
// formal parameters. Handlers never build SQL; they call Query with the
// identifier, a Params bag and a Shape describing how columns become fields:
//
//	var deptShape = procedure.Shape[Department]{
//	    "DeptCode": func(d *Department, v any) { d.Code = utils.ToString(v) },
//	    "DeptName": func(d *Department, v any) { d.Name = utils.ToString(v) },
//	}
//
//	depts, err := procedure.Query(ctx, exec, "search-child-department",
//	    procedure.Params{procedure.P("deptCodeIn", "D000001")}, deptShape)
//
// # Results and Errors
//
// Rows come back in backend order. No rows is an empty slice and a nil
// error. Failures are *DataAccessError values matching one of
// ErrUnknownProcedure, ErrParameterMismatch, ErrBackend or ErrTimeout with
// errors.Is. Classify turns them into API errors for the error handler.
//
// # Resources
//
// Each call borrows one pooled connection and returns it on every exit path.
// The Executor applies its configured timeout and never retries.
package procedure
