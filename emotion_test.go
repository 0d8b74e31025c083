package personastate

import (
	"testing"
	"time"
)

// ══════════════════════════════════════════════
// Emotional state classification tests
// ══════════════════════════════════════════════

func TestClassifyEmotion_Thresholds(t *testing.T) {
	// Zero stability, zero neuroticism: adjusted = sentiment * intensity.
	cases := []struct {
		sentiment, intensity float64
		want                 EmotionalState
	}{
		{0.9, 1, EmotionHappy},
		{-0.9, 1, EmotionSad},
		{0.45, 1, EmotionContent},
		{-0.45, 1, EmotionAnxious},
		{0.1, 1, EmotionNeutral},
		{1, 0, EmotionNeutral}, // no intensity, no reaction
	}
	for _, c := range cases {
		got := classifyEmotion(c.sentiment, c.intensity, 0, 0)
		if got != c.want {
			t.Fatalf("classifyEmotion(%v, %v) = %s, want %s", c.sentiment, c.intensity, got, c.want)
		}
	}
}

func TestClassifyEmotion_StabilityDampens(t *testing.T) {
	// A highly stable persona shrugs off a strong positive interaction.
	if got := classifyEmotion(1, 1, 0, 85); got != EmotionNeutral {
		t.Fatalf("stable persona should stay neutral, got %s", got)
	}
	if got := classifyEmotion(1, 1, 0, 0); got != EmotionHappy {
		t.Fatalf("unstable persona should react, got %s", got)
	}
}

func TestClassifyEmotion_NeuroticismAmplifies(t *testing.T) {
	// sentiment -0.5, intensity 0.7, stability 20:
	// calm:     -0.5*0.7*1.0*0.8 = -0.28  → neutral
	// neurotic: -0.5*0.7*1.9*0.8 = -0.532 → sad
	if got := classifyEmotion(-0.5, 0.7, 0, 20); got != EmotionNeutral {
		t.Fatalf("calm persona should stay neutral, got %s", got)
	}
	if got := classifyEmotion(-0.5, 0.7, 0.9, 20); got != EmotionSad {
		t.Fatalf("neurotic persona should swing to sad, got %s", got)
	}
}

func TestEngine_EmotionResetsOnDecay(t *testing.T) {
	e := NewRelationshipStateEngine(EngineConfig{
		Now:           newFakeClock().Now,
		MoodStability: 1, // near-zero stability so emotions actually move
	})

	snap := e.ProcessSignals(InteractionSignals{
		Quality:   0.8,
		Sentiment: 0.9,
		Intensity: 0.9,
	})
	if snap.Emotion != EmotionHappy {
		t.Fatalf("expected happy, got %s", snap.Emotion)
	}

	e.ApplyTimeDecay(24 * time.Hour)
	if e.Snapshot().Emotion != EmotionNeutral {
		t.Fatalf("expected neutral after decay, got %s", e.Snapshot().Emotion)
	}
}
