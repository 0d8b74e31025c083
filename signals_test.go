package personastate

import (
	"math"
	"testing"
)

// ══════════════════════════════════════════════
// InteractionSignals normalization tests
// ══════════════════════════════════════════════

func TestSignals_NormalizeClampsToRange(t *testing.T) {
	sig := InteractionSignals{
		Quality:         2.5,
		EmotionalDepth:  -1,
		DisclosureLevel: 1.5,
		Sentiment:       -3,
		Intensity:       7,
	}.Normalize(nil)

	if sig.Quality != 1 {
		t.Fatalf("quality: want 1, got %v", sig.Quality)
	}
	if sig.EmotionalDepth != 0 {
		t.Fatalf("emotional_depth: want 0, got %v", sig.EmotionalDepth)
	}
	if sig.DisclosureLevel != 1 {
		t.Fatalf("disclosure_level: want 1, got %v", sig.DisclosureLevel)
	}
	if sig.Sentiment != -1 {
		t.Fatalf("sentiment: want -1, got %v", sig.Sentiment)
	}
	if sig.Intensity != 1 {
		t.Fatalf("intensity: want 1, got %v", sig.Intensity)
	}
}

func TestSignals_NaNCollapsesToZero(t *testing.T) {
	sig := InteractionSignals{
		Quality:   math.NaN(),
		Sentiment: math.NaN(),
	}.Normalize(nil)

	if sig.Quality != 0 || sig.Sentiment != 0 {
		t.Fatalf("NaN should collapse to 0, got %v / %v", sig.Quality, sig.Sentiment)
	}
}

func TestSignals_ObserverReceivesRawAndClamped(t *testing.T) {
	type report struct {
		field        string
		raw, clamped float64
	}
	var reports []report

	InteractionSignals{Quality: 2}.Normalize(func(field string, raw, clamped float64) {
		reports = append(reports, report{field, raw, clamped})
	})

	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0].field != "quality" || reports[0].raw != 2 || reports[0].clamped != 1 {
		t.Fatalf("unexpected report: %+v", reports[0])
	}
}

func TestSignals_InRangeUntouched(t *testing.T) {
	in := InteractionSignals{
		Quality:         -0.3,
		SharedInterests: []string{"music"},
		EmotionalDepth:  0.4,
		DisclosureLevel: 0.9,
		Sentiment:       0.2,
		Intensity:       0.6,
	}
	out := in.Normalize(func(field string, raw, clamped float64) {
		t.Fatalf("unexpected clamp of %s", field)
	})
	if out.Quality != in.Quality || out.EmotionalDepth != in.EmotionalDepth ||
		out.DisclosureLevel != in.DisclosureLevel || out.Sentiment != in.Sentiment ||
		out.Intensity != in.Intensity {
		t.Fatalf("in-range signals should pass through unchanged: %+v", out)
	}
}
