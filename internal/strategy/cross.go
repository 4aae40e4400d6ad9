package strategy

// Event is a discrete signal derived from the transition of the fast-above
// state, not from its absolute value.
type Event int

const (
	// EventNone means no state transition occurred this step.
	EventNone Event = iota
	// EventEnter means the fast value crossed above the slow value: go to
	// full long exposure.
	EventEnter
	// EventExit means the fast value crossed below the slow value: flatten.
	EventExit
)

// String returns a short label for the event.
func (e Event) String() string {
	switch e {
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	default:
		return "none"
	}
}

// CrossDetector tracks whether a fast indicator value is above a slow one
// and emits enter/exit events on transitions. The zero value is ready to
// use.
//
// The state is a tagged pair (initialized, fastAbove) rather than a single
// sentinel boolean so that "not yet seen" is distinct from "currently
// below". It is initialized on the first step where both indicators are
// ready, and that step never emits an event: trading on the first ready
// sample would open an artificial position at the warm-up boundary.
//
// Update must be called at most once per time step, in non-decreasing time
// order, with real (non-NaN) values; readiness of each input is reported by
// the caller. These are preconditions, not runtime checks.
type CrossDetector struct {
	initialized bool
	fastAbove   bool
}

// Update consumes one synchronized pair of indicator readings and returns
// the event for this step. While either indicator is warming up it returns
// EventNone and leaves the state untouched.
//
// Equality is "not above": fast == slow fails the strict-greater test but
// does not itself clear an existing above-state, so a touch of the slow
// line reads as a downward transition only because the stored state flips
// to false.
func (d *CrossDetector) Update(fast, slow float64, fastReady, slowReady bool) Event {
	if !fastReady || !slowReady {
		return EventNone
	}

	isFastAbove := fast > slow

	if !d.initialized {
		d.initialized = true
		d.fastAbove = isFastAbove
		return EventNone
	}

	event := EventNone
	switch {
	case isFastAbove && !d.fastAbove:
		event = EventEnter
	case !isFastAbove && d.fastAbove:
		event = EventExit
	}

	d.fastAbove = isFastAbove
	return event
}

// Initialized reports whether the detector has seen a step with both
// indicators ready.
func (d *CrossDetector) Initialized() bool { return d.initialized }
