// Package apierror translates handler failures into one response shape.
//
// Every error leaving a route, whether returned or raised as a panic and
// recovered, reaches Handler, which is installed as the Fiber ErrorHandler:
//
//	{"kind": "data_access", "message": "data access failed", "ray_id": "..."}
//
// Errors built with New or Wrap keep their kind and message. *fiber.Error
// values map by status code. Other packages contribute a Classifier for their
// own error types (core/procedure does for DataAccessError). Anything left
// becomes kind "internal" with a generic message, so raw error text and stack
// traces never reach clients.
package apierror
