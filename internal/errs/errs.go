// Package errs defines the error taxonomy returned to API clients.
//
// Every error response has the same shape:
//
//	{ "success": false, "error": "<message>" }
//
// The constructors in types.go map the taxonomy onto HTTP statuses.
package errs
