package protocol

// VegTable is the shared veg pipeline protocol, keyed by stage-relative day
// 1-49. Batches enter the table at their stage's offset (see StageOffsets):
// Clone covers days 1-14, PreVeg 15-21, EarlyVeg 22-35, LateVeg 36-49.
// Mother plants loop the Clone rows (offset 0) since they exist to be cut.
var VegTable = Table{
	// ---- Clone (days 1-14) ----
	1: {
		Title: "🌱 STICK CLONES - Day 1",
		Description: "DAY 1 - CLONES STUCK\n\n" +
			"ACTIONS REQUIRED:\n" +
			"• Take cuttings from healthy mothers (sanitized blade)\n" +
			"• Dip in rooting gel, stick in plugs\n" +
			"• Dome on, vents closed, RH 90%+\n" +
			"• Label tray with strain and date\n\n" +
			"TARGETS:\n" +
			"• Plain water or EC 0.8 max\n" +
			"• Temp 75-80°F, gentle light (no direct HID/LED)",
		Category: "propagation", Phase: StageClone, Priority: PriorityHigh, DurationHours: 2,
	},
	3: {
		Title: "💧 Clone Dome Check - Day 3",
		Description: "CLONE CARE - DAY 3\n\n" +
			"CHECKLIST:\n" +
			"□ Mist dome interior if plugs drying\n" +
			"□ Remove any wilted or moldy cuttings\n" +
			"□ Keep vents closed, RH 90%+\n" +
			"□ No nutrients yet",
		Category: "propagation", Phase: StageClone, Priority: PriorityMedium, DurationHours: 1,
	},
	5: {
		Title: "💨 Begin Dome Venting - Day 5",
		Description: "CLONE CARE - DAY 5\n\n" +
			"HARDENING OFF:\n" +
			"• Crack dome vents 25% to start lowering humidity\n" +
			"• Cuttings should still look turgid\n" +
			"• Remove any failures immediately (mold risk)",
		Category: "propagation", Phase: StageClone, Priority: PriorityMedium, DurationHours: 1,
	},
	7: {
		Title: "🔍 First Root Check - Day 7",
		Description: "CLONE CARE - DAY 7\n\n" +
			"ROOT CHECK:\n" +
			"□ Inspect plug bottoms for root tips\n" +
			"□ Open vents to 50%\n" +
			"□ Light feed (EC 0.8) if roots showing\n\n" +
			"Slow strains may need 3-5 more days - don't panic.",
		Category: "propagation", Phase: StageClone, Priority: PriorityMedium, DurationHours: 1,
	},
	10: {
		Title: "🌿 Roots Showing - First Feed (Day 10)",
		Description: "CLONE CARE - DAY 10\n\n" +
			"ACTIONS:\n" +
			"• Most cuttings should show roots through plugs\n" +
			"• Remove domes for rooted trays\n" +
			"• Feed EC 0.8, pH 5.8-6.2\n" +
			"• Raise light intensity gradually",
		Category: "propagation", Phase: StageClone, Priority: PriorityMedium, DurationHours: 1,
	},
	14: {
		Title: "✅ CLONE COMPLETE - Transplant to PreVeg (Day 14)",
		Description: "DAY 14 - CLONE STAGE COMPLETE\n\n" +
			"TRANSPLANT:\n" +
			"• Move rooted clones into preveg pots/cubes\n" +
			"• Cull anything without a solid root ball\n" +
			"• Water in at EC 1.2\n\n" +
			"RECORD:\n" +
			"• Final rooting percentage per strain\n" +
			"• Update batch stage to PreVeg",
		Category: "milestone", Phase: StageClone, Priority: PriorityHigh, DurationHours: 3,
	},

	// ---- PreVeg (days 15-21) ----
	15: {
		Title: "🌱 BEGIN PREVEG - Transplant Recovery (Day 15)",
		Description: "PREVEG - DAY 15\n\n" +
			"RECOVERY CHECK:\n" +
			"□ No transplant shock (drooping, stalled growth)\n" +
			"□ EC 1.2, pH 5.8-6.2\n" +
			"□ RH 65-70% while roots establish\n" +
			"□ 18/6 light cycle",
		Category: "milestone", Phase: StagePreVeg, Priority: PriorityHigh, DurationHours: 1,
	},
	17: {
		Title: "🐛 Veg IPM Spray (Day 17)",
		Description: "PREVEG - IPM\n\n" +
			"SPRAY PROTOCOL:\n" +
			"• Full coverage, tops and undersides\n" +
			"• Spray at lights off\n" +
			"• Rotate products to prevent resistance\n\n" +
			"Veg plants tolerate sprays well - this is the time to get ahead of pests.",
		Category: "ipm", Phase: StagePreVeg, Priority: PriorityMedium, DurationHours: 1,
	},
	21: {
		Title: "✅ PREVEG COMPLETE - Ready for Early Veg (Day 21)",
		Description: "DAY 21 - PREVEG COMPLETE\n\n" +
			"CHECKLIST:\n" +
			"□ Roots at pot edges\n" +
			"□ 2-3 new nodes since transplant\n" +
			"□ Bump feed to EC 1.8\n" +
			"□ Update batch stage to EarlyVeg",
		Category: "milestone", Phase: StagePreVeg, Priority: PriorityHigh, DurationHours: 1,
	},

	// ---- EarlyVeg (days 22-35) ----
	22: {
		Title: "🌿 BEGIN EARLY VEG - Training Starts (Day 22)",
		Description: "EARLY VEG - DAY 22\n\n" +
			"ACTIONS:\n" +
			"• Transplant to final veg containers if needed\n" +
			"• Begin low-stress training / spreading\n" +
			"• Feed EC 1.8, pH 5.8-6.2\n" +
			"• VPD 0.8-1.2 kPa",
		Category: "training", Phase: StageEarlyVeg, Priority: PriorityHigh, DurationHours: 2,
	},
	25: {
		Title: "🐛 Veg IPM Spray (Day 25)",
		Description: "EARLY VEG - IPM\n\n" +
			"SPRAY PROTOCOL:\n" +
			"• Full coverage IPM application\n" +
			"• Inspect undersides for mites/eggs while spraying\n" +
			"• Sticky traps refreshed",
		Category: "ipm", Phase: StageEarlyVeg, Priority: PriorityMedium, DurationHours: 1,
	},
	28: {
		Title: "✂️ TOP PLANTS - Week 4 (Day 28)",
		Description: "EARLY VEG - TOPPING\n\n" +
			"TOPPING PROTOCOL:\n" +
			"• Top above the 4th-5th node\n" +
			"• Sanitize blade between plants\n" +
			"• Skip any plant that looks stressed\n\n" +
			"AFTERCARE:\n" +
			"• No defoliation for 3 days post-top\n" +
			"• Expect brief growth stall",
		Category: "training", Phase: StageEarlyVeg, Priority: PriorityHigh, DurationHours: 3,
	},
	31: {
		Title: "🔧 Veg Maintenance - Canopy & Roots (Day 31)",
		Description: "EARLY VEG - MAINTENANCE\n\n" +
			"CHECKLIST:\n" +
			"□ Even canopy - rotate or tuck as needed\n" +
			"□ Runoff EC within 0.5 of input\n" +
			"□ Roots white and vigorous\n" +
			"□ Remove lowest larfy growth",
		Category: "maintenance", Phase: StageEarlyVeg, Priority: PriorityMedium, DurationHours: 1,
	},
	35: {
		Title: "✅ EARLY VEG COMPLETE (Day 35)",
		Description: "DAY 35 - EARLY VEG COMPLETE\n\n" +
			"CHECKLIST:\n" +
			"□ Tops recovered and branching\n" +
			"□ Bump feed to EC 2.4\n" +
			"□ Update batch stage to LateVeg",
		Category: "milestone", Phase: StageEarlyVeg, Priority: PriorityHigh, DurationHours: 1,
	},

	// ---- LateVeg (days 36-49) ----
	36: {
		Title: "🌳 BEGIN LATE VEG - Final Shaping (Day 36)",
		Description: "LATE VEG - DAY 36\n\n" +
			"ACTIONS:\n" +
			"• Final container up-pot if scheduled\n" +
			"• Continue spreading/training for even canopy\n" +
			"• Feed EC 2.4, pH 5.8-6.2",
		Category: "training", Phase: StageLateVeg, Priority: PriorityHigh, DurationHours: 2,
	},
	38: {
		Title: "🐛 Veg IPM Spray (Day 38)",
		Description: "LATE VEG - IPM\n\n" +
			"SPRAY PROTOCOL:\n" +
			"• Full coverage IPM application\n" +
			"• Last easy window - flower rooms allow no sprays after day 21\n" +
			"• Treat anything suspicious aggressively now",
		Category: "ipm", Phase: StageLateVeg, Priority: PriorityMedium, DurationHours: 1,
	},
	42: {
		Title: "✂️ Final Topping / Trellis Prep (Day 42)",
		Description: "LATE VEG - STRUCTURE\n\n" +
			"ACTIONS:\n" +
			"• Last topping opportunity (needs 7+ days recovery before flip)\n" +
			"• Install trellis netting in destination flower room\n" +
			"• Defoliate interior for airflow",
		Category: "training", Phase: StageLateVeg, Priority: PriorityHigh, DurationHours: 3,
	},
	45: {
		Title: "🔍 Pre-Flip Health Screen (Day 45)",
		Description: "LATE VEG - HEALTH SCREEN\n\n" +
			"CHECKLIST:\n" +
			"□ Zero pest activity (loupe check)\n" +
			"□ No deficiencies going into flower\n" +
			"□ Confirm destination flower room turnaround date\n" +
			"□ Cull weak plants - they won't improve in flower",
		Category: "maintenance", Phase: StageLateVeg, Priority: PriorityMedium, DurationHours: 1,
	},
	49: {
		Title: "✅ LATE VEG COMPLETE - Ready to Flip (Day 49)",
		Description: "DAY 49 - VEG PIPELINE COMPLETE\n\n" +
			"FLIP READINESS:\n" +
			"□ Plants at 50-60% of target final height (stretch doubles them)\n" +
			"□ Destination flower room clean and reset\n" +
			"□ Move batch to flower room and set its start date\n\n" +
			"This is the hand-off point: the flower protocol takes over at Day 1.",
		Category: "milestone", Phase: StageLateVeg, Priority: PriorityCritical, DurationHours: 4,
	},
}
