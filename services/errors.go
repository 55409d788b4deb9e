package services

import "fmt"

// UpstreamError reports a failed provider call. Transient errors are
// network-level (timeout, connection reset); permanent ones mean the provider
// rejected the request (non-2xx status, explicit error payload). Either way
// the aggregator skips the destination and continues.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *UpstreamError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s upstream error (HTTP %d): %v", e.Provider, kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s upstream error: %v", e.Provider, kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
