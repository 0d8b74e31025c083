package personastate

import (
	"fmt"
	"math"
	"time"
)

// ──────────────────────────────────────────────
// Psychological Variables — bounded, time-decaying scalars
// ──────────────────────────────────────────────

// VarName identifies one of the fixed psychological variables.
type VarName string

const (
	VarTrust               VarName = "trust"
	VarEmotionalConnection VarName = "emotional_connection"
	VarSelfDisclosure      VarName = "self_disclosure"
	VarInterestAlignment   VarName = "interest_alignment"
	VarUncertainty         VarName = "uncertainty"
)

// varOrder is the canonical iteration order. Declaration order matters for
// deterministic snapshots and matches dependency direction (trust first).
var varOrder = []VarName{
	VarTrust,
	VarEmotionalConnection,
	VarSelfDisclosure,
	VarInterestAlignment,
	VarUncertainty,
}

// PsychologicalVariable is a named bounded scalar with per-hour decay and
// declared dependency edges. The variable set is fixed at engine creation;
// variables are never added or removed afterwards.
type PsychologicalVariable struct {
	Name         VarName   `json:"name"`
	Value        float64   `json:"value"`
	MinValue     float64   `json:"min_value"`
	MaxValue     float64   `json:"max_value"`
	DecayRate    float64   `json:"decay_rate"`    // fractional loss per hour
	RecoveryRate float64   `json:"recovery_rate"` // nominal per-interaction gain, informational
	Dependencies []VarName `json:"dependencies,omitempty"`
	LastUpdate   time.Time `json:"last_update"`
}

// applyUpdate applies time decay followed by the computed delta, clamped to
// the variable's bounds: value*(1 - decayRate*hours) + delta.
func (v *PsychologicalVariable) applyUpdate(delta float64, elapsed time.Duration, now time.Time) {
	decay := v.DecayRate * elapsed.Hours()
	v.Value = clamp(v.Value*(1-decay)+delta, v.MinValue, v.MaxValue)
	v.LastUpdate = now
}

// defaultVariables returns the fixed variable set with initial values.
func defaultVariables(now time.Time) map[VarName]*PsychologicalVariable {
	return map[VarName]*PsychologicalVariable{
		VarTrust: {
			Name:         VarTrust,
			Value:        0.0,
			MinValue:     0.0,
			MaxValue:     100.0,
			DecayRate:    0.01, // 1% per hour
			RecoveryRate: 2.0,
			LastUpdate:   now,
		},
		VarEmotionalConnection: {
			Name:         VarEmotionalConnection,
			Value:        0.0,
			MinValue:     0.0,
			MaxValue:     100.0,
			DecayRate:    0.005,
			RecoveryRate: 1.5,
			Dependencies: []VarName{VarTrust},
			LastUpdate:   now,
		},
		VarSelfDisclosure: {
			Name:         VarSelfDisclosure,
			Value:        0.0,
			MinValue:     0.0,
			MaxValue:     100.0,
			DecayRate:    0.008,
			RecoveryRate: 2.0,
			Dependencies: []VarName{VarTrust, VarEmotionalConnection},
			LastUpdate:   now,
		},
		VarInterestAlignment: {
			Name:         VarInterestAlignment,
			Value:        0.0,
			MinValue:     0.0,
			MaxValue:     100.0,
			DecayRate:    0.002,
			RecoveryRate: 1.0,
			LastUpdate:   now,
		},
		VarUncertainty: {
			Name:         VarUncertainty,
			Value:        100.0,
			MinValue:     0.0,
			MaxValue:     100.0,
			DecayRate:    0.0, // uncertainty does not decay with time
			RecoveryRate: -5.0,
			Dependencies: []VarName{VarTrust},
			LastUpdate:   now,
		},
	}
}

// validateVariables checks that every dependency edge points at an existing
// variable. Dependency edges are fixed data, so a bad edge is a programming
// error worth failing loudly on at construction time.
func validateVariables(vars map[VarName]*PsychologicalVariable) error {
	for name, v := range vars {
		for _, dep := range v.Dependencies {
			if _, ok := vars[dep]; !ok {
				return fmt.Errorf("variable %s depends on unknown variable %s", name, dep)
			}
			if dep == name {
				return fmt.Errorf("variable %s depends on itself", name)
			}
		}
	}
	return nil
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
