// Package events carries session lifecycle notifications from the
// engine to observers (dashboard, logs). The render path publishes
// nothing per frame; only state transitions go through the bus.
package events

import (
	"fmt"
	"time"
)

// Type identifies a session event.
type Type int

const (
	// SessionStarted fires after a profile is loaded and ticking
	// begins. Payload: profile id.
	SessionStarted Type = iota

	// SessionStopped fires after ticking halts and state is reset.
	// Payload: profile id.
	SessionStopped

	// ProfileSwitched fires on a stop+start profile swap.
	// Payload: new profile id.
	ProfileSwitched

	// TelemetryStalled fires when no sample has arrived within the
	// stall timeout. Payload: none.
	TelemetryStalled

	// TelemetryResumed fires on the first sample after a stall.
	// Payload: none.
	TelemetryResumed

	typeCount
)

var typeNames = [typeCount]string{
	SessionStarted:   "session started",
	SessionStopped:   "session stopped",
	ProfileSwitched:  "profile switched",
	TelemetryStalled: "telemetry stalled",
	TelemetryResumed: "telemetry resumed",
}

func (t Type) String() string {
	if t < 0 || t >= typeCount {
		return fmt.Sprintf("event(%d)", int(t))
	}
	return typeNames[t]
}

// Event is one notification.
type Event struct {
	Type      Type
	ProfileID string
	At        time.Time
}
