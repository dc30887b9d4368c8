// Package phase is the pure cycle calculator: a start date and "today" in,
// day numbers, phases and targets out. It holds no state and performs no
// I/O, so display paths, the task generator and tests all share the exact
// same arithmetic.
package phase

import (
	"time"

	"growroomd/internal/protocol"
)

// CurrentDay returns the 1-based day of the cycle for the given start date.
// ok is false when the cycle has not started yet (start in the future) or
// the start date is unset.
func CurrentDay(start, today time.Time) (int, bool) {
	if start.IsZero() {
		return 0, false
	}
	day := int(midnight(today).Sub(midnight(start)).Hours()/24) + 1
	if day < 1 {
		return 0, false
	}
	return day, true
}

// midnight truncates a time to its calendar date in UTC. Using calendar
// components (not Truncate) keeps day arithmetic stable across DST.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ForDay returns the flower phase and its targets for a day of flower.
func ForDay(day int) (phase string, ec float64, dryback string) {
	switch {
	case day <= protocol.StretchEndDay:
		return protocol.PhaseStretch, protocol.ECStretch, protocol.DrybackStretch
	case day <= protocol.BulkEndDay:
		return protocol.PhaseBulk, protocol.ECBulk, protocol.DrybackBulk
	default:
		return protocol.PhaseFinish, protocol.ECFinish, protocol.DrybackFinish
	}
}

// Week returns the 1-based week of flower.
func Week(day int) int { return ((day - 1) / 7) + 1 }

// DaysInPhase returns how many days the cycle has spent in its current phase.
func DaysInPhase(day int) int {
	switch {
	case day <= protocol.StretchEndDay:
		return day
	case day <= protocol.BulkEndDay:
		return day - protocol.StretchEndDay
	default:
		return day - protocol.BulkEndDay
	}
}

// PhaseProgress returns progress through the current phase as 0-100.
func PhaseProgress(day int) int {
	var pct int
	switch {
	case day <= protocol.StretchEndDay:
		pct = day * 100 / protocol.StretchLength
	case day <= protocol.BulkEndDay:
		pct = (day - protocol.StretchEndDay) * 100 / protocol.BulkLength
	default:
		pct = (day - protocol.BulkEndDay) * 100 / protocol.FinishLength
	}
	return min(100, pct)
}

// CycleProgress returns overall progress through the 84-day cycle as 0-100.
func CycleProgress(day int) int {
	return min(100, day*100/protocol.CycleDays)
}

// IsHarvestWindow reports whether a day falls in the closed harvest window.
func IsHarvestWindow(day int) bool {
	return day >= protocol.HarvestDay && day <= protocol.CycleDays
}

// DaysRemaining returns days until the nominal harvest day, floored at zero.
func DaysRemaining(day int) int {
	return max(0, protocol.HarvestDay-day)
}

// EstimatedHarvest is the nominal harvest date for a start date (day 77).
func EstimatedHarvest(start time.Time) time.Time {
	return midnight(start).AddDate(0, 0, protocol.HarvestDay-1)
}

// ProtocolDay returns a veg batch's position in the shared veg protocol
// table. Stage is authoritative: the batch's start date anchors elapsed
// time, and the stage offset re-bases it so a manually advanced batch
// resumes the table at the correct row.
func ProtocolDay(start, today time.Time, stage string) (int, bool) {
	day, ok := CurrentDay(start, today)
	if !ok {
		return 0, false
	}
	return day + protocol.StageOffsets[stage], true
}

// FlowerStatus is the full read-path projection for a flower room.
type FlowerStatus struct {
	Day              int
	Week             int
	Phase            string
	RecommendedEC    float64
	TargetDryback    string
	DaysInPhase      int
	PhaseProgress    int
	CycleProgress    int
	HarvestWindow    bool
	DaysRemaining    int
	EstimatedHarvest time.Time
	Env              EnvTargets
}

// Flower computes a flower room's status. ok is false when not started.
func Flower(start, today time.Time) (FlowerStatus, bool) {
	day, ok := CurrentDay(start, today)
	if !ok {
		return FlowerStatus{}, false
	}
	ph, ec, dryback := ForDay(day)
	return FlowerStatus{
		Day:              day,
		Week:             Week(day),
		Phase:            ph,
		RecommendedEC:    ec,
		TargetDryback:    dryback,
		DaysInPhase:      DaysInPhase(day),
		PhaseProgress:    PhaseProgress(day),
		CycleProgress:    CycleProgress(day),
		HarvestWindow:    IsHarvestWindow(day),
		DaysRemaining:    DaysRemaining(day),
		EstimatedHarvest: EstimatedHarvest(start),
		Env:              EnvForPhase(ph),
	}, true
}

// EnvTargets are the environmental bands for a phase (or the veg room).
type EnvTargets struct {
	TempDay   string
	TempNight string
	Humidity  string
	VPD       string
	PH        string
}

// EnvForPhase returns the environmental targets for a flower phase.
func EnvForPhase(phase string) EnvTargets {
	switch phase {
	case protocol.PhaseStretch:
		return EnvTargets{
			TempDay:   "78-82°F (25-28°C)",
			TempNight: "68-72°F (20-22°C)",
			Humidity:  "55-65%",
			VPD:       "1.0-1.2 kPa",
			PH:        "5.8-6.0",
		}
	case protocol.PhaseBulk:
		return EnvTargets{
			TempDay:   "78-82°F (25-28°C)",
			TempNight: "65-70°F (18-21°C)",
			Humidity:  "50-60%",
			VPD:       "1.2-1.4 kPa",
			PH:        "5.8-6.0",
		}
	case protocol.PhaseFinish:
		return EnvTargets{
			TempDay:   "75-78°F (24-26°C)",
			TempNight: "62-68°F (17-20°C)",
			Humidity:  "40-50%",
			VPD:       "1.4-1.6 kPa",
			PH:        "5.8-6.0",
		}
	default:
		return EnvTargets{}
	}
}

// EnvVeg returns the fixed veg-room environmental band.
func EnvVeg() EnvTargets {
	return EnvTargets{
		TempDay:   "75-82°F (24-28°C)",
		TempNight: "68-75°F (20-24°C)",
		Humidity:  "55-70%",
		VPD:       "0.8-1.2 kPa",
		PH:        "5.8-6.2",
	}
}
