// Package database handles database connections and routine inspection.
//
// It wraps GORM to configure MySQL (or SQLite for local runs) connections from
// the application's configuration, including pool sizes and timeouts.
//
// # Connect
//
// Connect opens the pool and pings it. The pool is shared by every request;
// each stored procedure call borrows one connection for its duration.
//
// # Routine Inspection
//
// ProcedureExists and GetProcedureParams read information_schema so the
// procedure registry can verify at startup that the backend declares the
// parameters the API will bind.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	params, err := database.GetProcedureParams(ctx, db, "p_SearchChildDept")
package database
