package control

// footswitch is the per-channel debounce and gesture state machine.
// pressed is the debounced level; the event fields are one-shot latches
// consumed by the Service accessors.
type footswitch struct {
	pressed    bool
	lastChange uint32
	lastPress  uint32
	clicks     uint8

	longEvent       bool
	doubleEvent     bool
	doubleLongEvent bool
}

// service advances the machine by one tick. raw is the logical level after
// wiring inversion (true = pressed), now the monotonic millisecond clock.
// All clock math is uint32 subtraction so counter wraparound cancels out.
func (f *footswitch) service(raw bool, now uint32, t Timing) {
	if raw == f.pressed {
		return
	}
	if now-f.lastChange < t.DebounceMs {
		return
	}

	f.pressed = raw
	f.lastChange = now

	if raw {
		// Accepted press: restart or extend the click sequence. The count
		// never passes 2, rapid triples restart at the release below.
		gap := now - f.lastPress
		if f.clicks == 0 || gap > t.MultiClickGapMs {
			f.clicks = 1
		} else if f.clicks < 2 {
			f.clicks++
		}
		f.lastPress = now
		return
	}

	// Accepted release: classification happens here, on the held duration,
	// so a double click and a long press can never fire for the same
	// physical press.
	held := now - f.lastPress
	switch {
	case f.clicks == 1 && held >= t.LongPressMs:
		f.longEvent = true
		f.clicks = 0
	case f.clicks == 2 && held >= t.LongPressMs:
		f.doubleLongEvent = true
		f.clicks = 0
	case f.clicks == 2:
		f.doubleEvent = true
		f.clicks = 0
	case held > t.MultiClickGapMs:
		// Plain click that can no longer become a double.
		f.clicks = 0
	}
	// clicks == 1 with held inside the gap window stays pending: the second
	// press of a double may still arrive.
}

func (f *footswitch) takeLong() bool {
	v := f.longEvent
	f.longEvent = false
	return v
}

func (f *footswitch) takeDouble() bool {
	v := f.doubleEvent
	f.doubleEvent = false
	return v
}

func (f *footswitch) takeDoubleLong() bool {
	v := f.doubleLongEvent
	f.doubleLongEvent = false
	return v
}
