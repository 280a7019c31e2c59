// Package tracing wraps OpenTelemetry so that the network and supervisor can
// emit spans for carrier traversals and station invocations without importing
// the SDK directly.
package tracing
