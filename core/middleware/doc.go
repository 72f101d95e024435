// Package middleware contains HTTP middleware for the Fiber application.
//
// Each subpackage is one stage of the request pipeline assembled by
// core/pipeline:
//
//   - bodybuffer: buffers the request body so later stages can read it again.
//   - static: serves static assets from a directory or an object storage bucket.
//   - authn: validates the bearer token and attaches the principal.
//   - cors: the named cross-origin policy applied to API routes.
//   - authz: rejects unauthenticated or under-privileged requests.
//   - rayid: assigns every request a correlation id for logs and responses.
//
// Stages only communicate through Fiber locals, read back with the accessor
// functions each package exports (authn.Principal, bodybuffer.Reader,
// rayid.Get).
package middleware
