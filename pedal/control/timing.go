package control

// Timing holds the footswitch gesture thresholds in milliseconds.
//
// MultiClickGapMs should normally be smaller than LongPressMs so that double
// clicks and long presses stay distinguishable; the machine does not enforce
// this, overlapping windows resolve through the release-time classification
// in footswitch.service.
type Timing struct {
	// DebounceMs is the minimum stable duration before a raw transition is
	// accepted.
	DebounceMs uint32
	// LongPressMs is the hold duration that turns a press into a long press.
	LongPressMs uint32
	// MultiClickGapMs is the maximum gap between two presses that still
	// counts as a double click.
	MultiClickGapMs uint32
}

// DefaultTiming returns the stock thresholds: 12 ms debounce, 500 ms long
// press, 300 ms double-click gap.
func DefaultTiming() Timing {
	return Timing{
		DebounceMs:      12,
		LongPressMs:     500,
		MultiClickGapMs: 300,
	}
}
