package core

import (
	"math"
	"testing"
)

func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()
	if cfg.SampleRate != 48000 {
		t.Fatalf("SampleRate = %v, want 48000", cfg.SampleRate)
	}
	if cfg.BlockSize != 8 {
		t.Fatalf("BlockSize = %v, want 8", cfg.BlockSize)
	}
}

func TestApplyAudioOptions(t *testing.T) {
	cfg := ApplyAudioOptions(WithSampleRate(96000), WithBlockSize(64), nil)
	if cfg.SampleRate != 96000 {
		t.Fatalf("SampleRate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 64 {
		t.Fatalf("BlockSize = %v, want 64", cfg.BlockSize)
	}
}

func TestAudioOptionsIgnoreInvalid(t *testing.T) {
	cfg := ApplyAudioOptions(WithSampleRate(-1), WithBlockSize(0))
	if cfg != DefaultAudioConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestBlockPeriodMs(t *testing.T) {
	cfg := AudioConfig{SampleRate: 48000, BlockSize: 48}
	if got := cfg.BlockPeriodMs(); math.Abs(got-1) > 1e-12 {
		t.Fatalf("BlockPeriodMs() = %v, want 1", got)
	}

	if got := (AudioConfig{}).BlockPeriodMs(); got != 0 {
		t.Fatalf("BlockPeriodMs() on zero config = %v, want 0", got)
	}
}
