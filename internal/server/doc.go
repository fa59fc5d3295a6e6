// Package server exposes call timing metrics over HTTP.
//
// Available endpoints:
//   - /metrics    : Prometheus metrics endpoint
//   - /health     : Liveness probe (always returns 200)
//   - /version    : Build information as JSON
//
// The server is configured with the same timeouts for every endpoint:
// 15s read, 15s write, 60s idle. Only GET is routed; other methods get 405.
package server
