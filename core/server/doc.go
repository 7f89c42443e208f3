// Package server exposes a small HTTP status endpoint for watch mode:
// GET /healthz for liveness and GET /status for the last run report as JSON.
// The server is optional and disabled unless configured.
package server
