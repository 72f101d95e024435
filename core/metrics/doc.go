// Package metrics exposes Prometheus collectors for HTTP requests and stored
// procedure calls. Metrics implements procedure.Observer and serves its
// private registry on GET /metrics.
package metrics
