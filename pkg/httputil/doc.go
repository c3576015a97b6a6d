// Package httputil provides HTTP utilities shared by the IsoTrack API
// client and server.
//
// # Envelope
//
// Every endpoint of the diagram/flow contract wraps its payload in a
// uniform envelope:
//
//	{"success": true, "message": "ok", "data": ...}
//
// [Envelope] models that wrapper. Servers write it with [WriteEnvelope]
// and [WriteError]; clients decode it with [DecodeEnvelope] and unwrap
// the data field once the success flag has been checked.
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures
// (network errors, 5xx responses). Wrap such failures in
// [RetryableError] so Retry knows to try again; anything else aborts
// immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchDiagram(id)
//	})
//
// Defaults are 3 attempts starting at 1 second, doubling each retry.
package httputil
