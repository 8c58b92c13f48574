// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// SleepConfig holds the thresholds the sleep controller
// checks every substep to decide whether a body has gone quiet.
type SleepConfig struct {
	VelThreshold    float64 // EMA speed below this counts as quiet, default 0.05 m/s.
	TimeToSleep     float64 // quiet duration required to fall asleep, default 0.5s.
	ImpulseQuiet    float64 // max per-step impulse counted as quiet, default 1e-2 Ns.
	CorrectionQuiet float64 // max per-step correction counted as quiet, default 2e-3 m.
}

// DefaultSleepConfig returns the package's default sleep thresholds.
func DefaultSleepConfig() SleepConfig {
	return SleepConfig{
		VelThreshold:    0.05,
		TimeToSleep:     0.5,
		ImpulseQuiet:    1e-2,
		CorrectionQuiet: 2e-3,
	}
}
