// Package core provides numeric helpers and the shared audio configuration
// used across the pedal packages.
package core

const (
	// DefaultSampleRate matches the board's audio codec default.
	DefaultSampleRate = 48000.0
	// DefaultBlockSize matches the board's audio driver default.
	DefaultBlockSize = 8
)

// AudioConfig defines the audio driver settings shared by the bridge,
// the control service and the desktop host.
type AudioConfig struct {
	SampleRate float64
	BlockSize  int
}

// AudioOption mutates an AudioConfig.
type AudioOption func(*AudioConfig)

// DefaultAudioConfig returns the board defaults (48 kHz, 8-sample blocks).
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate: DefaultSampleRate,
		BlockSize:  DefaultBlockSize,
	}
}

// WithSampleRate sets the audio sample rate in Hz.
func WithSampleRate(sampleRate float64) AudioOption {
	return func(cfg *AudioConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the audio block size in samples.
func WithBlockSize(blockSize int) AudioOption {
	return func(cfg *AudioConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyAudioOptions applies zero or more options to the default config.
func ApplyAudioOptions(opts ...AudioOption) AudioConfig {
	cfg := DefaultAudioConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// BlockPeriodMs returns the duration of one audio block in milliseconds.
// This is the nominal tick period used by pot smoothing when the control
// loop is serviced once per block.
func (c AudioConfig) BlockPeriodMs() float64 {
	if c.SampleRate <= 0 || c.BlockSize <= 0 {
		return 0
	}
	return 1000 * float64(c.BlockSize) / c.SampleRate
}
