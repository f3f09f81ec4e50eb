package config

import (
	"errors"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeThreshold(t *testing.T) {
	c := Default()
	c.BalanceThresh = 1.5
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateRejectsNegativeRelThresh(t *testing.T) {
	c := Default()
	c.LogRepairLoopDFThreshRel = -0.1
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	data := []byte(`{
		"balance_thresh": 0.5,
		"fitness_thresh": 0.5,
		"replay_thresh": 0.5,
		"log_repair_skip_df_thresh_rel": 0.3,
		"log_repair_loop_df_thresh_rel": 0.3,
		"absolute_df_clean_thresh": 2,
		"relative_df_clean_thresh": 0.1
	}`)
	c, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if c.BalanceThresh != 0.5 || c.AbsoluteDFCleanThresh != 2 {
		t.Errorf("unexpected decoded config: %+v", c)
	}
}

func TestParseJSONRejectsInvalidThreshold(t *testing.T) {
	data := []byte(`{"balance_thresh": -1}`)
	if _, err := ParseJSON(data); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for negative balance_thresh")
	}
}
