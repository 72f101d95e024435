// Package pipeline assembles the HTTP request pipeline.
//
// Every request passes through the stages in Stages order:
//
//	buffering -> routing -> static -> authentication -> cors -> authorization -> dispatch
//
// Request ids, access logging, metrics, error rendering and panic recovery
// wrap the chain ahead of the first stage. Authentication, CORS and
// authorization only apply to the /api group, so /health, /metrics, the
// Swagger UI and static assets stay public and carry no CORS headers.
//
// # Usage
//
//	rt, err := pipeline.NewRuntime(cfg, logs, metrics.New(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app := pipeline.NewApp(rt)
//	if _, err := pipeline.Assemble(app, rt, mgr); err != nil {
//	    log.Fatal(err)
//	}
//	app.Listen(":" + cfg.Server.Port)
package pipeline
