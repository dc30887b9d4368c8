package protocol

import "fmt"

// FeedMix is the Athena Pro Line recipe for one flower phase, in grams per
// liter (the handbook's 3g/gal rate converts to 0.79g/L).
type FeedMix struct {
	CoreGPerL    float64
	BloomGPerL   float64
	CleanseGPerL float64
	FadeGPerL    float64
	TargetEC     float64
	TargetPH     string
}

// FeedChart maps each flower phase to its recipe.
var FeedChart = map[string]FeedMix{
	PhaseStretch: {
		CoreGPerL:  0.79,
		BloomGPerL: 0.79,
		TargetEC:   ECStretch,
		TargetPH:   "5.8-6.0",
	},
	PhaseBulk: {
		CoreGPerL:  0.79,
		BloomGPerL: 0.79,
		// Cleanse optional weekly in bulk.
		TargetEC: ECBulk,
		TargetPH: "5.8-6.0",
	},
	PhaseFinish: {
		CleanseGPerL: 0.26, // optional flush
		FadeGPerL:    0.79,
		TargetEC:     ECFinish,
		TargetPH:     "5.8-6.0",
	},
}

// MixForTank scales a phase's recipe to a tank size and renders it as an
// operator-readable block. Unknown phases return an empty string.
func MixForTank(phase string, liters int) string {
	mix, ok := FeedChart[phase]
	if !ok || liters <= 0 {
		return ""
	}
	out := fmt.Sprintf("Feed mix for %dL tank (%s):\n", liters, phase)
	l := float64(liters)
	if mix.CoreGPerL > 0 {
		out += fmt.Sprintf("  Athena Core:    %.0fg\n", mix.CoreGPerL*l)
	}
	if mix.BloomGPerL > 0 {
		out += fmt.Sprintf("  Athena Bloom:   %.0fg\n", mix.BloomGPerL*l)
	}
	if mix.CleanseGPerL > 0 {
		out += fmt.Sprintf("  Athena Cleanse: %.0fg\n", mix.CleanseGPerL*l)
	}
	if mix.FadeGPerL > 0 {
		out += fmt.Sprintf("  Athena Fade:    %.0fg\n", mix.FadeGPerL*l)
	}
	out += fmt.Sprintf("  Target EC %.1f | pH %s", mix.TargetEC, mix.TargetPH)
	return out
}
