package timing

import "testing"

func TestStopwatchLapAccumulates(t *testing.T) {
	sw := NewStopwatch()
	sw.Lap(&sw.Result.LoopRepair)
	sw.Lap(&sw.Result.SkipRepair)
	result := sw.Finish()

	if result.Total < result.LoopRepair+result.SkipRepair {
		t.Errorf("Total should be at least the sum of recorded laps")
	}
}

func TestSecondsMatchesFields(t *testing.T) {
	d := AlgoDuration{LoopRepair: 0, Total: 0}
	m := d.Seconds()
	if _, ok := m["total"]; !ok {
		t.Errorf("Seconds() missing \"total\" key")
	}
	if len(m) != 7 {
		t.Errorf("Seconds() = %d keys, want 7", len(m))
	}
}

func TestFormatScale(t *testing.T) {
	if got := FormatScale(1234567); got != "1,234,567" {
		t.Errorf("FormatScale(1234567) = %q, want \"1,234,567\"", got)
	}
}
