package parameter

import "time"

// Simulated Bus Timing
const (
	// SimSampleIntervalMin/Max bound the jittered polling interval of
	// the drive-cycle simulator, matching real bus polling cadence.
	SimSampleIntervalMin = 50 * time.Millisecond
	SimSampleIntervalMax = 100 * time.Millisecond
)

// Simulated Vehicle Response
const (
	// SimEngineResponse is the first-order RPM response rate toward
	// the pedal-demanded target (fraction per second).
	SimEngineResponse = 3.0

	// SimEngineBrakeResponse applies off-throttle, where engine
	// braking pulls RPM down slower than combustion spins it up.
	SimEngineBrakeResponse = 1.6

	// SimShiftRPMDrop is the fraction of RPM retained across an
	// upshift.
	SimShiftRPMDrop = 0.62

	// SimSampleQuantization coarsens simulated RPM readings the way a
	// bus register does, exercising the smoother's debounce path.
	SimSampleQuantization = 4.0
)
