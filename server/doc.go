// Package server provides the HTTP server behind "onion serve": a Gin engine
// wrapped in h2c so HTTP/2 clients can connect without TLS.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation
//   - RequestLogger: request logging with duration tracking
//   - BodySizeLimit: request body size limit
//   - Auth: bearer token authentication, with JWTValidator for HMAC tokens
package server
