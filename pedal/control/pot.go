package control

// pot carries the persistent one-pole filter state for one potentiometer.
type pot struct {
	smoothed float64
}

// smooth advances the filter toward raw and returns the new value.
// alpha = dt / (smoothMs + dt) stays in (0, 1], which guarantees monotone
// convergence without overshoot. Non-positive smoothing times and unknown
// tick periods degrade to passthrough.
func (p *pot) smooth(raw, smoothMs, dtMs float64) float64 {
	if smoothMs <= 0 || dtMs <= 0 {
		p.smoothed = raw
		return raw
	}

	alpha := dtMs / (smoothMs + dtMs)
	p.smoothed += alpha * (raw - p.smoothed)
	return p.smoothed
}
