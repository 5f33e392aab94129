// Package httpserver serves the status endpoints of a running soak.
//
// Routes:
//
//   - GET /health: liveness probe
//   - GET /stats: live map occupancy as JSON
//   - GET <metrics path>: Prometheus exposition
//
// Every route runs behind the RequestID, Recover and AccessLog middleware.
// An optional per-client rate limit is applied in front of them.
package httpserver
