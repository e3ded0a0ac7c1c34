// Package tracing wraps OpenTelemetry so the engine can open spans around
// task operations without importing the upstream packages directly. Until
// Init is called, and again after Shutdown, spans are no-ops.
package tracing
