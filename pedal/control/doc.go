// Package control implements the non-real-time half of the pedal: footswitch
// debouncing and gesture classification, potentiometer sampling with one-pole
// smoothing, and the optional binding of a pot onto the audio master level.
//
// A Service is driven by calling Tick from the host's ordinary program loop
// at a roughly regular cadence (sub-10 ms recommended with the default 12 ms
// debounce). All state is owned by that single control context; the only
// value that crosses into the audio context is the master level, pushed
// through a LevelSink which the audio bridge implements with an atomic
// scalar.
//
// Gesture events (long press, double press, double long press) are one-shot
// latches: the corresponding accessor returns true exactly once per gesture
// and clears the latch. A poller running slower than the gesture rate sees
// coalesced events, not a queue.
package control
