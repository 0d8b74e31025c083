package personastate

import "math"

// ──────────────────────────────────────────────
// Interaction Signals — normalized engine inputs
// ──────────────────────────────────────────────

// InteractionSignals are the per-interaction scalars produced by the
// upstream message analysis layer. The engine never sees raw messages; it
// consumes only these derived signals.
type InteractionSignals struct {
	Quality         float64  `json:"quality"`          // -1..1 overall interaction quality
	SharedInterests []string `json:"shared_interests"` // topics both sides engaged with
	EmotionalDepth  float64  `json:"emotional_depth"`  // 0..1
	DisclosureLevel float64  `json:"disclosure_level"` // 0..1
	Sentiment       float64  `json:"sentiment"`        // -1..1, drives the emotional state
	Intensity       float64  `json:"intensity"`        // 0..1, drives the emotional state
}

// ClampObserver is notified when an out-of-range or NaN input had to be
// clamped. Clamping keeps the engine fail-soft, but a clamp usually means
// the upstream analysis produced a bad value, so it is worth surfacing.
type ClampObserver func(field string, raw, clamped float64)

// Normalize clamps every signal into its documented range and reports each
// adjustment to the observer. NaN collapses to 0 (the neutral value for
// every signal), not to a range bound.
func (s InteractionSignals) Normalize(onClamp ClampObserver) InteractionSignals {
	s.Quality = clampSignal("quality", s.Quality, -1, 1, onClamp)
	s.EmotionalDepth = clampSignal("emotional_depth", s.EmotionalDepth, 0, 1, onClamp)
	s.DisclosureLevel = clampSignal("disclosure_level", s.DisclosureLevel, 0, 1, onClamp)
	s.Sentiment = clampSignal("sentiment", s.Sentiment, -1, 1, onClamp)
	s.Intensity = clampSignal("intensity", s.Intensity, 0, 1, onClamp)
	return s
}

func clampSignal(field string, v, min, max float64, onClamp ClampObserver) float64 {
	if math.IsNaN(v) {
		if onClamp != nil {
			onClamp(field, v, 0)
		}
		return 0
	}
	clamped := v
	if v < min {
		clamped = min
	} else if v > max {
		clamped = max
	}
	if clamped != v && onClamp != nil {
		onClamp(field, v, clamped)
	}
	return clamped
}
