// Package telemetry defines the vehicle-bus boundary: sparse
// (rpm, pedal, timestamp) samples at irregular ~50-100ms intervals.
// Byte-level bus protocol parsing lives outside this module; sources
// here either simulate or replay already-decoded samples.
package telemetry

// Sample is one reading from the vehicle data source. Timestamp is
// monotonic seconds; the zero point is source-defined.
type Sample struct {
	RPM       float64 // >= 0
	Pedal     float64 // [0,1]
	Timestamp float64
}

// Source produces a stream of telemetry samples. Implementations own a
// goroutine between Start and Stop and close Samples on Stop.
type Source interface {
	Name() string
	Start() error
	Stop() error

	// Samples returns the sample stream. Slow consumers lose samples
	// rather than stall the source.
	Samples() <-chan Sample
}
