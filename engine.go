package personastate

import (
	"log"
	"math"
	"time"
)

// ──────────────────────────────────────────────
// Relationship State Engine — deterministic, time-aware state machine
// ──────────────────────────────────────────────

// EngineConfig configures a RelationshipStateEngine. The zero value is a
// valid config: no trait profile (neutral trust factor), default mood
// stability, clamp reports to the standard logger.
type EngineConfig struct {
	// Traits, when set, modulates trust growth and emotional reactivity.
	Traits *PersonalityTraits

	// MoodStability (0-100) dampens emotional swings. Default 85.
	MoodStability float64

	// OnClamp receives input-clamp reports. Default logs via the standard
	// logger. Set to a no-op func to silence.
	OnClamp ClampObserver

	// Now overrides the clock, for deterministic tests and replays.
	Now func() time.Time
}

// RelationshipStateEngine owns the five psychological variables and the
// stage/layer classification derived from them. It is a pure synchronous
// data structure: no I/O, no goroutines, no locks. Callers that share one
// engine across goroutines must serialize access (see Session).
type RelationshipStateEngine struct {
	vars             map[VarName]*PsychologicalVariable
	stage            RelationshipStage
	layer            SocialPenetrationLayer
	emotion          EmotionalState
	interactionCount int
	lastInteraction  time.Time

	traits        *PersonalityTraits
	moodStability float64
	onClamp       ClampObserver
	now           func() time.Time
}

// defaultMoodStability matches the base persona's mood stability.
const defaultMoodStability = 85.0

// NewRelationshipStateEngine creates an engine at the initial state: all
// variables at their starting values, stage INITIAL, layer PERIPHERAL.
func NewRelationshipStateEngine(config ...EngineConfig) *RelationshipStateEngine {
	cfg := EngineConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}

	e := &RelationshipStateEngine{
		stage:         StageInitial,
		layer:         LayerPeripheral,
		emotion:       EmotionNeutral,
		moodStability: cfg.MoodStability,
		onClamp:       cfg.OnClamp,
		now:           cfg.Now,
	}
	if cfg.Traits != nil {
		t := cfg.Traits.Normalize()
		e.traits = &t
	}
	if e.moodStability <= 0 {
		e.moodStability = defaultMoodStability
	}
	e.moodStability = clamp(e.moodStability, 0, 100)
	if e.onClamp == nil {
		e.onClamp = func(field string, raw, clamped float64) {
			log.Printf("[StateEngine] Clamped input %s: %v -> %v (upstream analysis bug?)", field, raw, clamped)
		}
	}
	if e.now == nil {
		e.now = time.Now
	}

	now := e.now()
	e.vars = defaultVariables(now)
	if err := validateVariables(e.vars); err != nil {
		// The variable set is compiled in; a bad edge cannot happen outside
		// of a build of this package itself.
		panic(err)
	}
	e.lastInteraction = now
	return e
}

// NewEngineFromSnapshot restores an engine from a previously taken
// snapshot. Unknown variable names in the snapshot are ignored; missing
// ones keep their initial values. Stage monotonicity carries over.
func NewEngineFromSnapshot(snap *EngineSnapshot, config ...EngineConfig) *RelationshipStateEngine {
	e := NewRelationshipStateEngine(config...)
	if snap == nil {
		return e
	}
	for name, value := range snap.Variables {
		if v, ok := e.vars[name]; ok {
			v.Value = clamp(value, v.MinValue, v.MaxValue)
		}
	}
	if _, ok := stageRank[snap.Stage]; ok {
		e.stage = snap.Stage
	}
	if _, ok := layerRank[snap.Layer]; ok {
		e.layer = snap.Layer
	}
	if snap.Emotion != "" {
		e.emotion = snap.Emotion
	}
	e.interactionCount = snap.InteractionCount
	if !snap.LastInteraction.IsZero() {
		e.lastInteraction = snap.LastInteraction
	}
	return e
}

// ProcessInteraction consumes one interaction's scalar signals and updates
// all variables, the stage, and the layer. Inputs outside their documented
// ranges are clamped, never rejected: the engine always produces a valid
// snapshot. Sentiment for the emotional state defaults to the interaction
// quality; use ProcessSignals to pass it separately.
func (e *RelationshipStateEngine) ProcessInteraction(
	interactionQuality float64,
	sharedInterests []string,
	emotionalDepth float64,
	selfDisclosureLevel float64,
) *EngineSnapshot {
	return e.ProcessSignals(InteractionSignals{
		Quality:         interactionQuality,
		SharedInterests: sharedInterests,
		EmotionalDepth:  emotionalDepth,
		DisclosureLevel: selfDisclosureLevel,
		Sentiment:       interactionQuality,
		Intensity:       emotionalDepth,
	})
}

// ProcessSignals is ProcessInteraction with the full signal set, including
// separate sentiment/intensity for the emotional state model.
func (e *RelationshipStateEngine) ProcessSignals(signals InteractionSignals) *EngineSnapshot {
	sig := signals.Normalize(e.onClamp)
	now := e.now()
	elapsed := now.Sub(e.lastInteraction)
	if elapsed < 0 {
		elapsed = 0
	}

	deltas := e.calculateDeltas(sig)
	e.applyDependencyEffects(deltas)

	for _, name := range varOrder {
		e.vars[name].applyUpdate(deltas[name], elapsed, now)
	}

	e.checkStageTransition()
	e.layer = classifyLayer(e.vars[VarSelfDisclosure].Value)
	e.updateEmotion(sig)

	e.interactionCount++
	e.lastInteraction = now

	return e.currentSnapshot()
}

// calculateDeltas computes the raw per-variable deltas from the normalized
// signals, before dependency propagation.
func (e *RelationshipStateEngine) calculateDeltas(sig InteractionSignals) map[VarName]float64 {
	positiveQuality := math.Max(0, sig.Quality)

	// Trust is harder to gain at higher levels.
	trustResistance := math.Sqrt(e.vars[VarTrust].Value / 100)
	trustDelta := sig.Quality * 5 * (1 + sig.EmotionalDepth*0.5) * (1 - trustResistance)
	if e.traits != nil {
		trustDelta *= e.traits.TrustFactor()
	}

	return map[VarName]float64{
		VarTrust:               trustDelta,
		VarEmotionalConnection: sig.EmotionalDepth * 3 * (1 + sig.DisclosureLevel*0.5),
		VarSelfDisclosure:      sig.DisclosureLevel * 4 * positiveQuality,
		VarInterestAlignment:   float64(len(sig.SharedInterests)) * 2 * positiveQuality,
		VarUncertainty:         -5 * (1 + positiveQuality) * (1 + sig.DisclosureLevel),
	}
}

// applyDependencyEffects adds 20% of each dependency's raw delta to the
// dependent variable. Propagation is single-pass over the raw deltas — it
// is not iterated to a fixpoint.
func (e *RelationshipStateEngine) applyDependencyEffects(deltas map[VarName]float64) {
	raw := make(map[VarName]float64, len(deltas))
	for name, d := range deltas {
		raw[name] = d
	}
	for _, name := range varOrder {
		for _, dep := range e.vars[name].Dependencies {
			deltas[name] += raw[dep] * 0.2
		}
	}
}

// checkStageTransition reclassifies the relationship stage. The stage only
// advances: a classification below the current stage is ignored.
func (e *RelationshipStateEngine) checkStageTransition() {
	next := classifyStage(e.vars[VarTrust].Value, e.vars[VarEmotionalConnection].Value)
	if next.Rank() > e.stage.Rank() {
		e.stage = next
	}
}

func (e *RelationshipStateEngine) updateEmotion(sig InteractionSignals) {
	neuroticism := DefaultTraits().Neuroticism
	if e.traits != nil {
		neuroticism = e.traits.Neuroticism
	}
	e.emotion = classifyEmotion(sig.Sentiment, sig.Intensity, neuroticism, e.moodStability)
}

// weeklyDecaySeconds is the time constant for idle trust decay: after one
// week without interaction trust drops to 1/e of its value's decayed share.
const weeklyDecaySeconds = 7 * 24 * 3600

// ApplyTimeDecay applies idle decay for the given elapsed duration: trust
// decays exponentially toward zero, uncertainty grows back toward 100 by up
// to 20% of the factor lost, and the ephemeral emotional state resets to
// neutral. Stage and layer are never changed here — decay may pull trust
// below a stage's threshold, but an already-reached stage stays reached.
func (e *RelationshipStateEngine) ApplyTimeDecay(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	now := e.now()
	decayFactor := math.Exp(-elapsed.Seconds() / weeklyDecaySeconds)

	trust := e.vars[VarTrust]
	trust.Value = clamp(trust.Value*decayFactor, trust.MinValue, trust.MaxValue)
	trust.LastUpdate = now

	uncertainty := e.vars[VarUncertainty]
	uncertainty.Value = clamp(uncertainty.Value+(1-decayFactor)*20, uncertainty.MinValue, uncertainty.MaxValue)
	uncertainty.LastUpdate = now

	e.emotion = EmotionNeutral
	e.lastInteraction = now
}

// Snapshot returns the current state. Read-only; never mutates.
func (e *RelationshipStateEngine) Snapshot() *EngineSnapshot {
	return e.currentSnapshot()
}

func (e *RelationshipStateEngine) currentSnapshot() *EngineSnapshot {
	values := make(map[VarName]float64, len(e.vars))
	for name, v := range e.vars {
		values[name] = v.Value
	}
	return &EngineSnapshot{
		Variables:        values,
		Stage:            e.stage,
		Layer:            e.layer,
		Emotion:          e.emotion,
		InteractionCount: e.interactionCount,
		LastInteraction:  e.lastInteraction,
		AvailableTopics:  e.layer.Topics(),
	}
}

// Stage returns the current relationship stage.
func (e *RelationshipStateEngine) Stage() RelationshipStage {
	return e.stage
}

// Layer returns the current social penetration layer.
func (e *RelationshipStateEngine) Layer() SocialPenetrationLayer {
	return e.layer
}

// Value returns the current value of a variable, or 0 for unknown names.
func (e *RelationshipStateEngine) Value(name VarName) float64 {
	if v, ok := e.vars[name]; ok {
		return v.Value
	}
	return 0
}
