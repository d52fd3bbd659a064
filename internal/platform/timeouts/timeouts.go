// Package timeouts holds the durations shared by talenthub servers and
// their backing stores.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreConnect caps the initial ping of Postgres and Redis.
const StoreConnect = 5 * time.Second

// LandingFetch caps each best-effort landing page acquisition.
const LandingFetch = 3 * time.Second

// LiveWrite caps a single websocket push to a visitor.
const LiveWrite = 5 * time.Second
