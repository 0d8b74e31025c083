package personastate

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ──────────────────────────────────────────────
// Personality Traits — Big Five profile
// ──────────────────────────────────────────────

// PersonalityTraits is a Big Five profile, each trait in [0,1]. Attaching a
// profile to an engine modulates trust growth and emotional reactivity;
// without one the engine uses neutral factors.
type PersonalityTraits struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

// DefaultTraits returns the base persona profile: high openness and
// agreeableness for rapport, low neuroticism for stability.
func DefaultTraits() PersonalityTraits {
	return PersonalityTraits{
		Openness:          0.75,
		Conscientiousness: 0.8,
		Extraversion:      0.6,
		Agreeableness:     0.7,
		Neuroticism:       0.3,
	}
}

// TrustFactor is the multiplier applied to trust deltas: agreeable, open
// personas warm up faster.
func (t PersonalityTraits) TrustFactor() float64 {
	return t.Agreeableness*0.7 + t.Openness*0.3
}

// Normalize clamps every trait into [0,1].
func (t PersonalityTraits) Normalize() PersonalityTraits {
	return PersonalityTraits{
		Openness:          clamp(t.Openness, 0, 1),
		Conscientiousness: clamp(t.Conscientiousness, 0, 1),
		Extraversion:      clamp(t.Extraversion, 0, 1),
		Agreeableness:     clamp(t.Agreeableness, 0, 1),
		Neuroticism:       clamp(t.Neuroticism, 0, 1),
	}
}

// ProfileHash returns a stable hash of the trait profile, used to detect
// config drift between a restored snapshot and the current engine config.
func (t PersonalityTraits) ProfileHash() string {
	data, _ := json.Marshal(t)
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}
