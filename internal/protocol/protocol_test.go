package protocol

import (
	"strings"
	"testing"
)

func TestFlowerTableShape(t *testing.T) {
	days := FlowerTable.Days()
	if len(days) == 0 {
		t.Fatal("flower table empty")
	}
	if days[0] != 1 {
		t.Fatalf("first flower day = %d, want 1", days[0])
	}
	if days[len(days)-1] != CycleDays {
		t.Fatalf("last flower day = %d, want %d", days[len(days)-1], CycleDays)
	}
	for i := 1; i < len(days); i++ {
		if days[i] <= days[i-1] {
			t.Fatalf("days not strictly ascending at %d", days[i])
		}
	}
	for _, d := range days {
		task := FlowerTable[d]
		if task.Title == "" || task.Description == "" {
			t.Errorf("day %d has empty title/description", d)
		}
		if task.Priority == "" {
			t.Errorf("day %d has no priority", d)
		}
	}
	// The milestone days must be present.
	for _, d := range []int{1, StretchEndDay, StretchEndDay + 1, BulkEndDay, BulkEndDay + 1, HarvestDay, CycleDays} {
		if _, ok := FlowerTable[d]; !ok {
			t.Errorf("flower table missing day %d", d)
		}
	}
}

func TestVegTableStageAlignment(t *testing.T) {
	for _, d := range VegTable.Days() {
		task := VegTable[d]
		var want string
		switch {
		case d <= 14:
			want = StageClone
		case d <= 21:
			want = StagePreVeg
		case d <= 35:
			want = StageEarlyVeg
		default:
			want = StageLateVeg
		}
		if task.Phase != want {
			t.Errorf("veg day %d tagged %s, want %s", d, task.Phase, want)
		}
	}
	// Stage offsets line up with the first row of each stage block.
	if _, ok := VegTable[StageOffsets[StagePreVeg]+1]; !ok {
		t.Error("no veg task at first PreVeg day")
	}
	if _, ok := VegTable[StageOffsets[StageEarlyVeg]+1]; !ok {
		t.Error("no veg task at first EarlyVeg day")
	}
	if _, ok := VegTable[StageOffsets[StageLateVeg]+1]; !ok {
		t.Error("no veg task at first LateVeg day")
	}
}

func TestTableNext(t *testing.T) {
	day, task, ok := FlowerTable.Next(23)
	if !ok {
		t.Fatal("Next(23) not ok")
	}
	if day != 25 {
		t.Fatalf("Next(23) day = %d, want 25", day)
	}
	if task.Title == "" {
		t.Fatal("Next(23) empty task")
	}
	if d, _, ok := FlowerTable.Next(84); !ok || d != 84 {
		t.Fatalf("Next(84) = %d, %v; want 84, true", d, ok)
	}
	if _, _, ok := FlowerTable.Next(85); ok {
		t.Fatal("Next past table end should not be ok")
	}
}

func TestStageHelpers(t *testing.T) {
	for _, s := range StageOrder {
		if !ValidStage(s) {
			t.Errorf("stage %s not valid", s)
		}
	}
	if ValidStage("Flowering") {
		t.Error("unknown stage accepted")
	}
	if StageEC(StageClone) != ECClone || StageEC(StageLateVeg) != ECLateVeg {
		t.Error("stage EC mapping wrong")
	}
}

func TestMixForTank(t *testing.T) {
	out := MixForTank(PhaseBulk, 100)
	if out == "" {
		t.Fatal("empty bulk mix")
	}
	if !strings.Contains(out, "Athena Core:    79g") {
		t.Errorf("bulk mix missing scaled core:\n%s", out)
	}
	if !strings.Contains(out, "EC 3.0") {
		t.Errorf("bulk mix missing EC target:\n%s", out)
	}
	if MixForTank("Vegging", 100) != "" {
		t.Error("unknown phase should render empty")
	}
	if MixForTank(PhaseFinish, 0) != "" {
		t.Error("zero liters should render empty")
	}
	if !strings.Contains(MixForTank(PhaseFinish, 100), "Fade") {
		t.Error("finish mix missing fade")
	}
}
