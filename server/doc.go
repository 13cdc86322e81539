// Package server provides the HTTP server for the rendering service
// using Gin with HTTP/2 h2c support.
//
// The server follows the component pattern with lifecycle management,
// health endpoints, and configurable middleware.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: Panic recovery with structured logging
//   - Logging: Request/response logging with duration tracking
//   - CORS: Cross-origin resource sharing configuration
//   - RequestID: Request ID generation and propagation
//   - RateLimit: Sliding-window rate limiting
//   - BodySize: Request body size limits
//   - Auth: JWT authentication middleware
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - POST /v1/render: Diagram rendering
//   - /health: Health check aggregation
//   - /info: Application information
//   - /metrics: Runtime metrics
//   - /alive: Kubernetes liveness probe
//   - /ready: Kubernetes readiness probe
//   - /version: Build version information
package server
