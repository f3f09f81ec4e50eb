// Package config defines the tunable thresholds that drive a
// discovery run (§6) and their validation.
package config

import (
	"encoding/json"
	"fmt"
)

// AlphaPPPConfig is the flat, JSON-serializable threshold set that
// parameterizes a single discovery call (§6). Field names match the
// wire contract exactly; renaming any of them is a breaking change.
type AlphaPPPConfig struct {
	BalanceThresh float32 `json:"balance_thresh"`
	FitnessThresh float32 `json:"fitness_thresh"`
	ReplayThresh  float32 `json:"replay_thresh"`

	LogRepairSkipDFThreshRel float32 `json:"log_repair_skip_df_thresh_rel"`
	LogRepairLoopDFThreshRel float32 `json:"log_repair_loop_df_thresh_rel"`

	AbsoluteDFCleanThresh uint64  `json:"absolute_df_clean_thresh"`
	RelativeDFCleanThresh float32 `json:"relative_df_clean_thresh"`
}

// Default returns the commonly used starting configuration: lenient
// thresholds that keep most of the log's behavior in the model.
func Default() AlphaPPPConfig {
	return AlphaPPPConfig{
		BalanceThresh:            0.8,
		FitnessThresh:            0.8,
		ReplayThresh:             0.8,
		LogRepairSkipDFThreshRel: 0.4,
		LogRepairLoopDFThreshRel: 0.4,
		AbsoluteDFCleanThresh:    1,
		RelativeDFCleanThresh:    0.05,
	}
}

// Validate checks every threshold is within its documented range
// (§6, §7's InvalidConfig error kind).
func (c AlphaPPPConfig) Validate() error {
	unit := []struct {
		name string
		v    float32
	}{
		{"balance_thresh", c.BalanceThresh},
		{"fitness_thresh", c.FitnessThresh},
		{"replay_thresh", c.ReplayThresh},
		{"relative_df_clean_thresh", c.RelativeDFCleanThresh},
	}
	for _, f := range unit {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s = %f, want [0,1]", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.LogRepairSkipDFThreshRel < 0 {
		return fmt.Errorf("%w: log_repair_skip_df_thresh_rel = %f, want >= 0", ErrInvalidConfig, c.LogRepairSkipDFThreshRel)
	}
	if c.LogRepairLoopDFThreshRel < 0 {
		return fmt.Errorf("%w: log_repair_loop_df_thresh_rel = %f, want >= 0", ErrInvalidConfig, c.LogRepairLoopDFThreshRel)
	}
	return nil
}

// ParseJSON decodes a flat JSON object into an AlphaPPPConfig and
// validates it.
func ParseJSON(data []byte) (AlphaPPPConfig, error) {
	var c AlphaPPPConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return AlphaPPPConfig{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return AlphaPPPConfig{}, err
	}
	return c, nil
}
