// Package timeouts defines shared timeout constants for the backoffice
// processes.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Read caps the time to read a full request including the body.
const Read = 15 * time.Second

// Write caps the time to write a response, including CSV downloads.
const Write = 30 * time.Second

// Idle bounds keep-alive connections.
const Idle = 60 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreQuery caps a single storage call made while serving a page.
const StoreQuery = 3 * time.Second

// Widget caps the whole dashboard widget fan-out.
const Widget = 4 * time.Second
