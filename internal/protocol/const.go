package protocol

// Room types.
const (
	RoomTypeFlower = "flower"
	RoomTypeVeg    = "veg"
)

// Flower cycle phases (84-day Athena protocol).
const (
	PhaseStretch = "Stretch"
	PhaseBulk    = "Bulk"
	PhaseFinish  = "Finish"
)

// Veg pipeline stages.
const (
	StageClone    = "Clone"
	StagePreVeg   = "PreVeg"
	StageEarlyVeg = "EarlyVeg"
	StageLateVeg  = "LateVeg"
	StageMother   = "Mother"
)

// EC targets by flower phase.
const (
	ECStretch = 3.0
	ECBulk    = 3.0
	ECFinish  = 1.5 // fade nutrients
)

// Dryback targets by flower phase.
const (
	DrybackStretch = "20-25%"
	DrybackBulk    = "30-40%"
	DrybackFinish  = "40-50%"
)

// EC targets by veg stage.
const (
	ECClone    = 0.8
	ECPreVeg   = 1.2
	ECEarlyVeg = 1.8
	ECLateVeg  = 2.4
	ECMother   = 1.5
)

// Flower cycle geometry. Phase boundaries are fixed cut-points on the day
// axis; the harvest window is the closed interval [HarvestDay, CycleDays].
const (
	StretchEndDay = 21
	BulkEndDay    = 55
	CycleDays     = 84
	HarvestDay    = 77

	StretchLength = 21
	BulkLength    = 34
	FinishLength  = 29
)

// StageOffsets maps a veg stage to its fixed day offset into the shared veg
// protocol table. A batch created (or manually advanced) into a later stage
// resumes the table at the right row instead of replaying earlier stages.
var StageOffsets = map[string]int{
	StageClone:    0,
	StagePreVeg:   14,
	StageEarlyVeg: 21,
	StageLateVeg:  35,
	StageMother:   0,
}

// StageOrder lists the veg stages in progression order. Mother sits outside
// the progression: it is reachable at creation only.
var StageOrder = []string{StageClone, StagePreVeg, StageEarlyVeg, StageLateVeg, StageMother}

// ValidStage reports whether s names a known veg stage.
func ValidStage(s string) bool {
	_, ok := StageOffsets[s]
	return ok
}

// StageEC returns the recommended input EC for a veg stage.
func StageEC(stage string) float64 {
	switch stage {
	case StageClone:
		return ECClone
	case StagePreVeg:
		return ECPreVeg
	case StageEarlyVeg:
		return ECEarlyVeg
	case StageLateVeg:
		return ECLateVeg
	case StageMother:
		return ECMother
	default:
		return 1.5
	}
}

// TankSizes are the common reservoir sizes (liters) offered by the feed
// chart helpers.
var TankSizes = []int{20, 50, 100, 200, 500, 1000}
