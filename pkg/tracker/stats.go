package tracker

import "sync/atomic"

// stats holds the tracker's atomic counters.
type stats struct {
	events         atomic.Int64
	translations   atomic.Int64
	detections     atomic.Int64
	oracleFailures atomic.Int64
	speakFailures  atomic.Int64
}

// Stats is a point-in-time snapshot of tracker counters, exposed on
// the metrics endpoint.
type Stats struct {
	EventsHandled  int64
	Translations   int64
	Detections     int64
	OracleFailures int64
	SpeakFailures  int64
}

// Stats returns current counter values.
func (t *Tracker) Stats() Stats {
	return Stats{
		EventsHandled:  t.stats.events.Load(),
		Translations:   t.stats.translations.Load(),
		Detections:     t.stats.detections.Load(),
		OracleFailures: t.stats.oracleFailures.Load(),
		SpeakFailures:  t.stats.speakFailures.Load(),
	}
}
