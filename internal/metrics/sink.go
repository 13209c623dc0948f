package metrics

import "time"

// Sink records service metrics. Implementations must not block or return
// errors to callers.
type Sink interface {
	// HTTP metrics
	RequestObserved(method, route string, status int, duration time.Duration)

	// Job metrics
	JobCreated(backend string, operation string)
	JobRejected(backend string, reason string)
	JobUpdated(backend string, status string)

	// Backend metrics
	BackendSwapped(backend string)
}

// Reasons passed to JobRejected.
const (
	RejectJobExists       = "job_exists"
	RejectBumpingDisabled = "bumping_disabled"
	RejectInvalid         = "invalid"
	RejectError           = "error"
)
