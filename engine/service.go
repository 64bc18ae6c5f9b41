package engine

// Service is the lifecycle contract for infrastructure subsystems: the
// audio graph, telemetry sources, anything owning a goroutine or a
// device handle.
//
// Lifecycle:
//  1. Construction (package-specific constructor)
//  2. Start() - acquire resources, launch goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins service operation (launches goroutines if any)
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// StartAll starts services in order, stopping already-started ones in
// reverse on failure.
func StartAll(services ...Service) error {
	for i, svc := range services {
		if err := svc.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = services[j].Stop()
			}
			return err
		}
	}
	return nil
}

// StopAll stops services in reverse order, keeping the first error.
func StopAll(services ...Service) error {
	var first error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
