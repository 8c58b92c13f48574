// Copyright © 2026 The phys3d Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldConfig is the YAML-serializable form of a World's tunables: the
// fixed-step loop parameters, gravity, the sleep controller thresholds,
// and the solver's tuning constants. It does not capture bodies — only
// the globals a scene needs to reproduce its simulation behavior exactly
// across runs.
type WorldConfig struct {
	Gravity          [3]float64 `yaml:"gravity"`
	FixedTimeStep    float64    `yaml:"fixed_time_step"`
	Substeps         int        `yaml:"substeps"`
	SolverIterations int        `yaml:"solver_iterations"`
	BroadphaseCell   float64    `yaml:"broadphase_cell_size,omitempty"`

	SleepVelThreshold float64 `yaml:"sleep_vel_threshold"`
	SleepTime         float64 `yaml:"sleep_time"`
	SleepImpulseQuiet float64 `yaml:"sleep_impulse_quiet"`
	SleepCorrQuiet    float64 `yaml:"sleep_correction_quiet"`

	CorrectionPercent    float64 `yaml:"correction_percent"`
	CorrectionSlop       float64 `yaml:"correction_slop"`
	NormalImpulseVSlop   float64 `yaml:"normal_impulse_vslop"`
	WakeImpulseThreshold float64 `yaml:"wake_impulse_threshold"`
	WakeCorrectionThresh float64 `yaml:"wake_correction_threshold"`
}

// DefaultWorldConfig returns a WorldConfig matching a freshly constructed
// World, so callers can load-modify-save without starting from zero
// values.
func DefaultWorldConfig() WorldConfig {
	w := NewWorld()
	return w.Config()
}

// Config snapshots the world's current tunables as a WorldConfig.
func (w *World) Config() WorldConfig {
	cfg := WorldConfig{
		Gravity:              [3]float64{w.gravity.X(), w.gravity.Y(), w.gravity.Z()},
		FixedTimeStep:        w.fixedTimeStep,
		Substeps:             w.substeps,
		SolverIterations:     w.solverIterations,
		SleepVelThreshold:    w.sleepCfg.VelThreshold,
		SleepTime:            w.sleepCfg.TimeToSleep,
		SleepImpulseQuiet:    w.sleepCfg.ImpulseQuiet,
		SleepCorrQuiet:       w.sleepCfg.CorrectionQuiet,
		CorrectionPercent:    w.solverCfg.CorrectionPercent,
		CorrectionSlop:       w.solverCfg.CorrectionSlop,
		NormalImpulseVSlop:   w.solverCfg.NormalImpulseVSlop,
		WakeImpulseThreshold: w.solverCfg.WakeImpulseThreshold,
		WakeCorrectionThresh: w.solverCfg.WakeCorrectionThreshold,
	}
	if w.broadphase != nil {
		cfg.BroadphaseCell = w.broadphase.cellSize
	}
	return cfg
}

// Apply pushes every field of cfg onto w, going through the same
// clamping setters a caller would use directly (SetFixedTimeStep,
// SetPositionCorrection, ...), so a config loaded from an untrusted file
// can't put the world into an invalid state.
func (cfg WorldConfig) Apply(w *World) {
	w.SetGravity(Vec3{cfg.Gravity[0], cfg.Gravity[1], cfg.Gravity[2]})
	w.SetFixedTimeStep(cfg.FixedTimeStep)
	w.SetSubsteps(cfg.Substeps)
	w.SetSolverIterations(cfg.SolverIterations)
	w.SetSleepVelThreshold(cfg.SleepVelThreshold)
	w.SetSleepTime(cfg.SleepTime)
	w.sleepCfg.ImpulseQuiet = maxF(cfg.SleepImpulseQuiet, 0)
	w.sleepCfg.CorrectionQuiet = maxF(cfg.SleepCorrQuiet, 0)
	w.SetPositionCorrection(cfg.CorrectionPercent, cfg.CorrectionSlop)
	w.SetNormalImpulseVSlop(cfg.NormalImpulseVSlop)
	w.SetWakeThresholds(cfg.WakeImpulseThreshold, cfg.WakeCorrectionThresh)
	if cfg.BroadphaseCell > 0 {
		w.SetBroadphase(NewBroadphase(cfg.BroadphaseCell))
	}
}

// LoadWorldConfig reads and parses a YAML world configuration file.
func LoadWorldConfig(path string) (WorldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldConfig{}, fmt.Errorf("physics: reading world config: %w", err)
	}
	cfg := DefaultWorldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WorldConfig{}, fmt.Errorf("physics: parsing world config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (cfg WorldConfig) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("physics: marshaling world config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("physics: writing world config: %w", err)
	}
	return nil
}
