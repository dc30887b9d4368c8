package phase

import (
	"testing"
	"time"

	"growroomd/internal/protocol"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentDay(t *testing.T) {
	start := date(2026, 3, 1)

	if d, ok := CurrentDay(start, start); !ok || d != 1 {
		t.Fatalf("day on start date = %d, %v; want 1, true", d, ok)
	}
	if d, ok := CurrentDay(start, date(2026, 3, 22)); !ok || d != 22 {
		t.Fatalf("day after 21 days = %d, %v; want 22, true", d, ok)
	}
	if _, ok := CurrentDay(start, date(2026, 2, 28)); ok {
		t.Fatalf("day before start should not be ok")
	}
	if _, ok := CurrentDay(time.Time{}, start); ok {
		t.Fatalf("zero start should not be ok")
	}
	// Times within the day don't shift the day number.
	noon := time.Date(2026, 3, 22, 12, 30, 0, 0, time.UTC)
	if d, _ := CurrentDay(start, noon); d != 22 {
		t.Fatalf("noon day = %d, want 22", d)
	}
}

func TestPhaseBoundaries(t *testing.T) {
	cases := []struct {
		day     int
		phase   string
		ec      float64
		dryback string
	}{
		{1, protocol.PhaseStretch, 3.0, "20-25%"},
		{21, protocol.PhaseStretch, 3.0, "20-25%"},
		{22, protocol.PhaseBulk, 3.0, "30-40%"},
		{55, protocol.PhaseBulk, 3.0, "30-40%"},
		{56, protocol.PhaseFinish, 1.5, "40-50%"},
		{84, protocol.PhaseFinish, 1.5, "40-50%"},
		{90, protocol.PhaseFinish, 1.5, "40-50%"},
	}
	for _, c := range cases {
		ph, ec, dryback := ForDay(c.day)
		if ph != c.phase || ec != c.ec || dryback != c.dryback {
			t.Errorf("day %d = (%s, %.1f, %s); want (%s, %.1f, %s)",
				c.day, ph, ec, dryback, c.phase, c.ec, c.dryback)
		}
	}
}

func TestDay22Scenario(t *testing.T) {
	// First day of Bulk.
	start := date(2026, 1, 1)
	st, ok := Flower(start, date(2026, 1, 22))
	if !ok {
		t.Fatalf("Flower not ok")
	}
	if st.Day != 22 || st.Phase != protocol.PhaseBulk {
		t.Fatalf("day/phase = %d/%s; want 22/Bulk", st.Day, st.Phase)
	}
	if st.RecommendedEC != 3.0 || st.TargetDryback != "30-40%" {
		t.Fatalf("targets = %.1f/%s", st.RecommendedEC, st.TargetDryback)
	}
	if st.DaysInPhase != 1 {
		t.Fatalf("days in phase = %d, want 1", st.DaysInPhase)
	}
	if st.DaysRemaining != 55 {
		t.Fatalf("days remaining = %d, want 55", st.DaysRemaining)
	}
	if st.Week != 4 {
		t.Fatalf("week = %d, want 4", st.Week)
	}
	if st.HarvestWindow {
		t.Fatalf("harvest window open on day 22")
	}
}

func TestProgress(t *testing.T) {
	if p := PhaseProgress(21); p != 100 {
		t.Fatalf("stretch end progress = %d, want 100", p)
	}
	if p := CycleProgress(84); p != 100 {
		t.Fatalf("cycle progress day 84 = %d, want 100", p)
	}
	if p := CycleProgress(100); p != 100 {
		t.Fatalf("cycle progress past end = %d, want capped 100", p)
	}
	if p := CycleProgress(42); p != 50 {
		t.Fatalf("cycle progress day 42 = %d, want 50", p)
	}
}

func TestHarvestWindow(t *testing.T) {
	for _, c := range []struct {
		day  int
		open bool
	}{{76, false}, {77, true}, {84, true}, {85, false}} {
		if got := IsHarvestWindow(c.day); got != c.open {
			t.Errorf("window day %d = %v, want %v", c.day, got, c.open)
		}
	}
	if r := DaysRemaining(80); r != 0 {
		t.Fatalf("remaining past harvest day = %d, want 0", r)
	}
}

func TestEstimatedHarvest(t *testing.T) {
	start := date(2026, 1, 1)
	want := date(2026, 3, 18) // start + 76 days
	if got := EstimatedHarvest(start); !got.Equal(want) {
		t.Fatalf("estimated harvest = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestProtocolDay(t *testing.T) {
	start := date(2026, 5, 1)
	// EarlyVeg batch on its start date sits at day 1+21.
	if d, ok := ProtocolDay(start, start, protocol.StageEarlyVeg); !ok || d != 22 {
		t.Fatalf("early veg day = %d, %v; want 22, true", d, ok)
	}
	// One week later.
	if d, _ := ProtocolDay(start, date(2026, 5, 8), protocol.StageEarlyVeg); d != 29 {
		t.Fatalf("early veg +7d = %d, want 29", d)
	}
	if d, _ := ProtocolDay(start, start, protocol.StageClone); d != 1 {
		t.Fatalf("clone day = %d, want 1", d)
	}
	if _, ok := ProtocolDay(start, date(2026, 4, 30), protocol.StageClone); ok {
		t.Fatalf("future start should not be ok")
	}
}

func TestDeterminism(t *testing.T) {
	start := date(2026, 2, 10)
	today := date(2026, 4, 1)
	a, _ := Flower(start, today)
	b, _ := Flower(start, today)
	if a != b {
		t.Fatalf("projection not deterministic: %+v vs %+v", a, b)
	}
}
