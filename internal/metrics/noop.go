package metrics

import "time"

// NoopSink discards every metric.
type NoopSink struct{}

func (NoopSink) RequestObserved(string, string, int, time.Duration) {}
func (NoopSink) JobCreated(string, string)                          {}
func (NoopSink) JobRejected(string, string)                         {}
func (NoopSink) JobUpdated(string, string)                          {}
func (NoopSink) BackendSwapped(string)                              {}
