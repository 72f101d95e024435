// Package utils provides small helpers shared across the API.
//
// Conversion helpers (ToInt, ToString, ToBool, ToTime) turn raw column values
// scanned from a stored procedure result into typed fields; they are what
// procedure result shapes use to assign columns. DateTime carries the fixed
// JSON date format used by every response.
package utils
