// Package department implements the department hierarchy lookup.
//
// The lookup is a single stored-procedure call: search-child-department maps
// to p_SearchChildDept(deptCodeIn) and returns the departments below the
// given code. Rows come back in database order.
//
// # Components
//
//   - Service: validates the code and runs the query through the procedure executor.
//   - Handler: exposes the HTTP endpoints.
//   - Feature: registers the routes with the loader.
//
// # HTTP Endpoints
//
//   - GET /api/departments/children?code=D000001
//   - GET /api/departments/:code/children
//
// Both accept nested=true to return a tree instead of a flat list.
package department
