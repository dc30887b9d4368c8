package protocol

// FlowerTable is the 84-day Athena flower protocol, keyed by day of flower
// (day 1 = flip day). Derived from the Athena handbook feed chart, IPM,
// defoliation and harvest protocols.
var FlowerTable = Table{
	// ---- Phase 1: Stretch (weeks 1-3, days 1-21) ----
	1: {
		Title: "🌱 FLIP DAY - Begin Flower Cycle",
		Description: "DAY 1 OF FLOWER - FLIP DAY\n\n" +
			"ACTIONS REQUIRED:\n" +
			"• Switch light cycle to 12/12\n" +
			"• Set Input EC to 3.0 (Athena Pro Core + Bloom)\n" +
			"• Record baseline plant heights for stretch tracking\n" +
			"• Verify VPD is 1.0-1.2 kPa for early flower\n\n" +
			"NUTRIENT MIX (per 100gal):\n" +
			"• Athena Core: 300g\n" +
			"• Athena Bloom: 300g\n" +
			"• Target pH: 5.8-6.0",
		Category: "milestone", Phase: PhaseStretch, Priority: PriorityHigh, DurationHours: 1,
	},
	2: {
		Title: "✂️ HEAVY DEFOLIATION - Strip & Clean",
		Description: "DAY 2 - HEAVY DEFOLIATION (STRIP)\n\n" +
			"ACTIONS REQUIRED:\n" +
			"• Remove ALL fan leaves from bottom 1/3 of plant (lollipop)\n" +
			"• Strip all sucker branches and weak growth\n" +
			"• Remove any yellowing or damaged leaves\n" +
			"• Sanitize tools between plants (70% isopropyl)\n\n" +
			"GOALS:\n" +
			"• Improve airflow through canopy\n" +
			"• Direct energy to top flower sites\n" +
			"• Reduce humidity pockets and mold risk",
		Category: "defoliation", Phase: PhaseStretch, Priority: PriorityHigh, DurationHours: 4,
	},
	3: {
		Title: "🐛 IPM Spray Application #1",
		Description: "WEEK 1 - IPM SPRAY (Application 1 of 6)\n\n" +
			"SPRAY PROTOCOL:\n" +
			"• Apply IPM spray to ALL leaf surfaces (top & bottom)\n" +
			"• Spray during lights-off or low light period\n" +
			"• Allow plants to dry before lights on\n\n" +
			"TARGETS:\n" +
			"• Spider mites, thrips, aphids\n" +
			"• Powdery mildew prevention\n\n" +
			"⚠️ CONTINUE 2x/WEEK UNTIL DAY 21",
		Category: "ipm", Phase: PhaseStretch, Priority: PriorityHigh, DurationHours: 2,
	},
	7: {
		Title: "🐛 IPM Spray Application #2",
		Description: "WEEK 1 - IPM SPRAY (Application 2 of 6)\n\n" +
			"SPRAY PROTOCOL:\n" +
			"• Apply IPM spray to ALL leaf surfaces\n" +
			"• Focus on undersides of leaves\n\n" +
			"INSPECTION CHECKLIST:\n" +
			"□ Check leaf undersides for mites/eggs\n" +
			"□ Inspect new growth for thrips damage\n" +
			"□ Check soil surface for fungus gnats\n\n" +
			"STRETCH PROGRESS CHECK:\n" +
			"• Plants should be 10-20% taller than Day 1",
		Category: "ipm", Phase: PhaseStretch, Priority: PriorityMedium, DurationHours: 2,
	},
	10: {
		Title: "🐛 IPM Spray Application #3",
		Description: "WEEK 2 - IPM SPRAY (Application 3 of 6)\n\n" +
			"SPRAY PROTOCOL:\n" +
			"• Continue full coverage IPM application\n" +
			"• Consider rotating to different product\n\n" +
			"WEEK 2 OBSERVATIONS:\n" +
			"• Stretch should be 30-50% complete\n" +
			"• First pistils may be visible\n" +
			"• Maintain EC at 3.0, VPD 1.0-1.2 kPa\n\n" +
			"ENVIRONMENTAL TARGETS:\n" +
			"• Day 78-82°F | Night 68-72°F | RH 55-65%",
		Category: "ipm", Phase: PhaseStretch, Priority: PriorityMedium, DurationHours: 2,
	},
	14: {
		Title: "🐛 IPM Spray Application #4 + Week 2 Check",
		Description: "WEEK 2 - IPM SPRAY (Application 4 of 6)\n\n" +
			"WEEK 2 HEALTH CHECK:\n" +
			"□ Measure plant heights (record stretch %)\n" +
			"□ Check for nutrient deficiencies\n" +
			"□ Verify runoff EC (should be within 0.5 of input)\n" +
			"□ Check for any hermaphrodite signs\n\n" +
			"COMMON ISSUES TO WATCH:\n" +
			"• Calcium deficiency (brown spots)\n" +
			"• Nitrogen toxicity (dark, clawing leaves)\n" +
			"• Light stress (bleaching, taco leaves)",
		Category: "ipm", Phase: PhaseStretch, Priority: PriorityMedium, DurationHours: 2,
	},
	17: {
		Title: "🐛 IPM Spray Application #5",
		Description: "WEEK 3 - IPM SPRAY (Application 5 of 6)\n\n" +
			"⚠️ IMPORTANT NOTES:\n" +
			"• Flowers are developing - avoid direct spray on buds\n" +
			"• Focus on fan leaves and stems\n" +
			"• Only 1 more spray after this!\n\n" +
			"STRETCH STATUS:\n" +
			"• Should be 70-90% of final stretch\n" +
			"• Flower sites clearly visible",
		Category: "ipm", Phase: PhaseStretch, Priority: PriorityMedium, DurationHours: 2,
	},
	21: {
		Title: "⚠️ DAY 21 DEFOLIATION + FINAL IPM - CRITICAL",
		Description: "DAY 21 - CRITICAL MILESTONE\n\n" +
			"🚨 THIS IS THE LAST DAY FOR IPM SPRAYS! 🚨\n\n" +
			"DEFOLIATION (SKIRT UP):\n" +
			"• Remove lower 1/3 canopy growth again\n" +
			"• Strip any leaves blocking bud sites\n" +
			"• Remove small/larfy lower flowers\n\n" +
			"FINAL IPM SPRAY (Application 6 of 6):\n" +
			"• After today, NO MORE SPRAYS on flowers\n" +
			"• Any pest issues after this = biological controls only\n\n" +
			"STRETCH COMPLETE:\n" +
			"• Record final plant heights\n" +
			"• Prepare for Bulk phase",
		Category: "defoliation", Phase: PhaseStretch, Priority: PriorityCritical, DurationHours: 4,
	},

	// ---- Phase 2: Bulk (weeks 4-8, days 22-55) ----
	// Maintenance pruning every 3 days for airflow.
	22: {
		Title: "🌸 BEGIN BULK PHASE - Vegetative Steering",
		Description: "DAY 22 - BULK PHASE BEGINS\n\n" +
			"PHASE TRANSITION:\n" +
			"• Stretch is complete - focus shifts to flower development\n" +
			"• Implement vegetative crop steering strategy\n" +
			"• Target 30-40% dryback between irrigations\n\n" +
			"IRRIGATION ADJUSTMENTS:\n" +
			"• Reduce irrigation frequency, increase shot sizes\n" +
			"• First irrigation 2-3 hours after lights on\n" +
			"• Last irrigation 2-3 hours before lights off\n\n" +
			"ENVIRONMENTAL TARGETS:\n" +
			"• Day 78-82°F | Night 65-70°F | RH 50-60% | VPD 1.2-1.4 kPa",
		Category: "steering", Phase: PhaseBulk, Priority: PriorityHigh, DurationHours: 1,
	},
	25: {
		Title:       "🔧 Maintenance Check - Airflow & Canopy (Day 25)",
		Description: bulkMaintenance("Remove any leaves blocking light to bud sites and check for male flowers/hermies."),
		Category:    "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	28: {
		Title: "🔧 Maintenance Check - Week 4 Complete (Day 28)",
		Description: bulkMaintenance("Week 4 progress: flowers golf ball sized or larger, trichome production increasing.") +
			"\n\nIRRIGATION CHECK:\n" +
			"□ Verify 30-40% dryback achieved\n" +
			"□ Check runoff EC (target: input + 0.5-1.0)",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	31: {
		Title:       "🔧 Maintenance Check - Airflow & Canopy (Day 31)",
		Description: bulkMaintenance("Buds stacking and gaining density; pistils mostly white, trichomes clear/cloudy."),
		Category:    "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	34: {
		Title: "🔧 Maintenance Check - Airflow & Canopy (Day 34)",
		Description: bulkMaintenance("Support heavy branches; add trellis if needed and tie up any leaning plants.") +
			"\n\nSTRUCTURAL SUPPORT:\n" +
			"□ Add trellis support if branches heavy\n" +
			"□ Ensure even light distribution",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	37: {
		Title:       "🔧 Maintenance Check - Airflow & Canopy (Day 37)",
		Description: bulkMaintenance("Buds gaining significant weight. Check for bud rot (gray/brown spots); some pistils turning orange."),
		Category:    "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	40: {
		Title: "🔧 Maintenance Check - Pre-Day 42 Prep (Day 40)",
		Description: "BULK PHASE - MAINTENANCE DAY (Every 3 Days)\n\n" +
			"⚠️ MAJOR PRUNE IN 2 DAYS - PREPARE!\n\n" +
			"CANOPY ASSESSMENT:\n" +
			"□ Identify areas needing heavy pruning\n" +
			"□ Mark plants with airflow issues\n" +
			"□ Plan Day 42 defoliation strategy\n\n" +
			"TOOL PREPARATION:\n" +
			"□ Clean and sharpen scissors\n" +
			"□ Prepare sanitizer (70% isopropyl)\n" +
			"□ Schedule adequate time for Day 42",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	42: {
		Title: "✂️ DAY 42 MAJOR DEFOLIATION - Ensure Airflow",
		Description: "DAY 42 - CRITICAL MAINTENANCE PRUNE\n\n" +
			"🚨 MAJOR DEFOLIATION DAY 🚨\n\n" +
			"DEFOLIATION PROTOCOL:\n" +
			"• Remove 20-30% of remaining fan leaves\n" +
			"• Focus on leaves blocking airflow\n" +
			"• Clear interior canopy completely\n" +
			"• Remove any remaining larf/popcorn buds\n\n" +
			"⚠️ DO NOT REMOVE:\n" +
			"• Healthy sugar leaves on buds\n" +
			"• More than 30% of total leaf mass\n\n" +
			"POST-PRUNE:\n" +
			"• Lower humidity 5% for 24-48 hours\n" +
			"• Increase airflow temporarily",
		Category: "defoliation", Phase: PhaseBulk, Priority: PriorityCritical, DurationHours: 4,
	},
	43: {
		Title: "🔧 Post-Defoliation Check (Day 43)",
		Description: "BULK PHASE - POST-DEFOLIATION RECOVERY\n\n" +
			"RECOVERY CHECK:\n" +
			"□ Plants recovering from Day 42 prune\n" +
			"□ No signs of excessive stress\n" +
			"□ New growth appearing healthy\n\n" +
			"AIRFLOW VERIFICATION:\n" +
			"□ Confirm improved air circulation\n" +
			"□ Can return humidity to normal if stable",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	46: {
		Title:       "🔧 Maintenance Check - Airflow & Canopy (Day 46)",
		Description: bulkMaintenance("Light touch-up pruning only. Buds dense and heavy; 30-50% of pistils turning orange."),
		Category:    "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	49: {
		Title: "🔧 Maintenance Check - Week 7 (Day 49)",
		Description: bulkMaintenance("Minimal pruning - plants need leaves. Buds at 70-80% final size, trichomes cloudy with some amber.") +
			"\n\nUPCOMING:\n" +
			"• Week 8 = Finish Phase begins\n" +
			"• Nutrient change to Athena Fade, EC reduction to 1.5",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	52: {
		Title: "🔧 Maintenance Check - Pre-Finish Prep (Day 52)",
		Description: "BULK PHASE - FINAL MAINTENANCE (Every 3 Days)\n\n" +
			"⚠️ FINISH PHASE IN 4 DAYS - PREPARE!\n\n" +
			"FINISH PHASE PREPARATION:\n" +
			"□ Order Athena Fade if not on hand\n" +
			"□ Plan nutrient transition\n" +
			"□ Prepare for EC reduction\n\n" +
			"AIRFLOW CHECK:\n" +
			"□ Critical for preventing late bud rot\n" +
			"□ Lower humidity if possible",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityMedium, DurationHours: 1,
	},
	55: {
		Title: "🔧 Maintenance Check - Last Bulk Day (Day 55)",
		Description: "BULK PHASE - FINAL DAY\n\n" +
			"🔔 TOMORROW: FINISH PHASE BEGINS!\n\n" +
			"FINAL BULK PHASE TASKS:\n" +
			"□ Last maintenance pruning\n" +
			"□ Document current plant status\n" +
			"□ Take photos for records\n\n" +
			"TRANSITION PREP:\n" +
			"□ Mix Athena Fade solution\n" +
			"□ Target EC: 1.5 (down from 3.0)\n" +
			"□ Lower humidity to 45-50% - rot risk highest",
		Category: "maintenance", Phase: PhaseBulk, Priority: PriorityHigh, DurationHours: 1,
	},

	// ---- Phase 3: Finish (weeks 8-10+, days 56-84) ----
	56: {
		Title: "🍂 BEGIN FINISH PHASE - Switch to Athena Fade",
		Description: "DAY 56 - FINISH PHASE BEGINS\n\n" +
			"🚨 MAJOR NUTRIENT CHANGE 🚨\n\n" +
			"NUTRIENT TRANSITION:\n" +
			"• Switch from Pro Line to Athena Fade (zero nitrogen)\n" +
			"• Target EC: 1.5 (reduced from 3.0), pH 5.8-6.0\n" +
			"• Promotes proper senescence and ripening\n\n" +
			"IRRIGATION CHANGES:\n" +
			"• Reduce irrigation frequency, target 40-50% dryback\n" +
			"• Generative steering for ripening\n\n" +
			"ENVIRONMENTAL TARGETS:\n" +
			"• Day 75-78°F | Night 62-68°F | RH 40-50% | VPD 1.4-1.6 kPa\n\n" +
			"EXPECTED CHANGES:\n" +
			"• Fan leaves will yellow (normal!)",
		Category: "nutrients", Phase: PhaseFinish, Priority: PriorityCritical, DurationHours: 2,
	},
	59: {
		Title: "🔧 Finish Phase Check - Day 59",
		Description: finishMaintenance("Fan leaves beginning to yellow (good!); plants responding to reduced nitrogen.") +
			"\n\nTRICHOME CHECK:\n" +
			"□ Use loupe/microscope\n" +
			"□ Target: mostly cloudy, 10-20% amber\n" +
			"□ Clear = too early | All amber = past peak",
		Category: "maintenance", Phase: PhaseFinish, Priority: PriorityMedium, DurationHours: 1,
	},
	62: {
		Title: "🔧 Finish Phase Check - Day 62",
		Description: finishMaintenance("Yellowing spreading through fan leaves; lower leaves may be dropping. Sugar leaves staying green.") +
			"\n\nHARVEST PLANNING:\n" +
			"□ Estimate 2-3 weeks to harvest\n" +
			"□ Prepare drying space\n" +
			"□ Check trichomes every 2-3 days",
		Category: "maintenance", Phase: PhaseFinish, Priority: PriorityMedium, DurationHours: 1,
	},
	65: {
		Title:       "🔧 Finish Phase Check - Day 65",
		Description: finishMaintenance("Significant leaf yellowing; buds at near-final size; aroma at peak. Check calyxes, not sugar leaves: target 70-80% cloudy, 10-20% amber."),
		Category:    "maintenance", Phase: PhaseFinish, Priority: PriorityMedium, DurationHours: 1,
	},
	68: {
		Title: "🔧 Finish Phase Check - Day 68",
		Description: finishMaintenance("Heavy yellowing/leaf drop normal; buds dense and frosty; pistils 70-90% orange/brown.") +
			"\n\nHARVEST PREP:\n" +
			"□ ~1-2 weeks to harvest window\n" +
			"□ Prepare drying room/tent\n" +
			"□ Clean trimming tools",
		Category: "maintenance", Phase: PhaseFinish, Priority: PriorityMedium, DurationHours: 1,
	},
	71: {
		Title: "🔧 Finish Phase Check - Day 71",
		Description: finishMaintenance("Most fan leaves yellow/dropped; buds at final size; harvest window approaching.") +
			"\n\nTRICHOME STATUS:\n" +
			"□ Should be 80%+ cloudy\n" +
			"□ More amber = more sedative effect",
		Category: "maintenance", Phase: PhaseFinish, Priority: PriorityMedium, DurationHours: 1,
	},
	74: {
		Title: "🔧 Finish Phase Check - Day 74 (Pre-Harvest)",
		Description: "FINISH PHASE - MAINTENANCE (Every 3 Days)\n\n" +
			"⚠️ HARVEST WINDOW IN ~3 DAYS!\n\n" +
			"FINAL CHECKS:\n" +
			"□ Trichomes at target maturity?\n" +
			"□ Drying space ready?\n" +
			"□ Schedule cleared for harvest?\n\n" +
			"HARVEST DECISION:\n" +
			"□ If trichomes ready - harvest Day 77\n" +
			"□ Don't rush - quality over speed",
		Category: "maintenance", Phase: PhaseFinish, Priority: PriorityHigh, DurationHours: 1,
	},
	77: {
		Title: "🌿 HARVEST WINDOW OPENS - Day 77",
		Description: "DAY 77 - HARVEST WINDOW BEGINS\n\n" +
			"HARVEST DECISION:\n" +
			"• Check trichomes one final time\n" +
			"• 80-90% cloudy + 10-20% amber = READY\n" +
			"• Can harvest now or wait up to Day 84\n\n" +
			"IF HARVESTING TODAY:\n" +
			"1. Stop all irrigation 24-48 hours before\n" +
			"2. Optional 24-48 hour dark period\n" +
			"3. Cut plants at base or branch by branch\n" +
			"4. Hang in drying room immediately\n\n" +
			"DRYING CONDITIONS:\n" +
			"• 60-70°F, 55-65% RH, gentle circulation, complete darkness\n" +
			"• 7-14 days typical dry time",
		Category: "harvest", Phase: PhaseFinish, Priority: PriorityCritical, DurationHours: 8,
	},
	80: {
		Title: "🔧 Harvest Window Check - Day 80",
		Description: "HARVEST WINDOW - DAY 80\n\n" +
			"IF NOT YET HARVESTED:\n" +
			"□ Check trichomes - more amber now\n" +
			"□ Maximum 4 more days recommended\n\n" +
			"ENVIRONMENT:\n" +
			"□ Maintain low humidity and airflow\n\n" +
			"HARVEST PREP:\n" +
			"□ Drying room ready, tools sanitized",
		Category: "harvest", Phase: PhaseFinish, Priority: PriorityHigh, DurationHours: 1,
	},
	83: {
		Title: "🔧 Final Harvest Check - Day 83",
		Description: "HARVEST WINDOW - DAY 83\n\n" +
			"⚠️ HARVEST TOMORROW RECOMMENDED!\n\n" +
			"FINAL ASSESSMENT:\n" +
			"□ Trichomes likely 30%+ amber\n" +
			"□ Quality will decline after Day 84 (THC degrading to CBN)\n\n" +
			"TOMORROW'S PLAN:\n" +
			"□ Stop irrigation now\n" +
			"□ Optional: 24hr dark period\n" +
			"□ Harvest first thing Day 84",
		Category: "harvest", Phase: PhaseFinish, Priority: PriorityCritical, DurationHours: 1,
	},
	84: {
		Title: "🏁 END OF CYCLE - Harvest & Sanitize Lines",
		Description: "DAY 84 - CYCLE COMPLETE\n\n" +
			"HARVEST (if not already done):\n" +
			"• Cut all remaining plants and process for drying\n\n" +
			"POST-HARVEST SANITATION:\n" +
			"1. Remove all plant material\n" +
			"2. Clean all surfaces with H2O2 or bleach\n" +
			"3. Sanitize irrigation lines (Athena Renew 2-4 oz/gal)\n" +
			"4. Run through all drippers, sit 15-30 min, flush clean\n\n" +
			"ROOM RESET:\n" +
			"□ Clean floors and walls\n" +
			"□ Check/replace filters\n" +
			"□ Prepare for next cycle",
		Category: "maintenance", Phase: PhaseFinish, Priority: PriorityCritical, DurationHours: 8,
	},
}

// bulkMaintenance builds the recurring every-3-days bulk checklist with a
// day-specific focus line.
func bulkMaintenance(focus string) string {
	return "BULK PHASE - MAINTENANCE DAY (Every 3 Days)\n\n" +
		"FOCUS:\n• " + focus + "\n\n" +
		"CANOPY MANAGEMENT:\n" +
		"□ Remove leaves blocking light to bud sites\n" +
		"□ Remove any dead or yellowing leaves\n\n" +
		"AIRFLOW CHECK:\n" +
		"□ Air movement through entire canopy\n" +
		"□ No stagnant air pockets (mold risk)\n\n" +
		"CURRENT TARGETS:\n" +
		"• EC Input: 3.0 | Dryback: 30-40% | VPD: 1.2-1.4 kPa"
}

// finishMaintenance builds the recurring finish-phase checklist with a
// day-specific status line.
func finishMaintenance(status string) string {
	return "FINISH PHASE - MAINTENANCE (Every 3 Days)\n\n" +
		"STATUS:\n• " + status + "\n\n" +
		"AIRFLOW CHECK:\n" +
		"□ CRITICAL - bud rot risk highest now\n" +
		"□ Humidity must stay below 50%\n" +
		"□ Check dense buds for rot daily\n\n" +
		"CURRENT TARGETS:\n" +
		"• EC Input: 1.5 | Dryback: 40-50% | VPD: 1.4-1.6 kPa"
}
