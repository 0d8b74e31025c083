package personastate

// ──────────────────────────────────────────────
// Emotional State — ephemeral, resets toward neutral over time
// ──────────────────────────────────────────────

// EmotionalState is the persona's current ephemeral emotion. It is derived
// per interaction and, unlike the psychological variables, is reset to
// neutral by time decay.
type EmotionalState string

const (
	EmotionNeutral EmotionalState = "neutral"
	EmotionHappy   EmotionalState = "happy"
	EmotionContent EmotionalState = "content"
	EmotionAnxious EmotionalState = "anxious"
	EmotionSad     EmotionalState = "sad"
)

// classifyEmotion maps interaction sentiment and intensity to an emotional
// state. Neuroticism amplifies the response; mood stability (0-100) dampens
// it, so a stable persona stays neutral through most interactions.
func classifyEmotion(sentiment, intensity, neuroticism, moodStability float64) EmotionalState {
	magnitude := intensity * (1 + neuroticism)
	adjusted := sentiment * magnitude * (1 - moodStability/100)

	switch {
	case adjusted > 0.5:
		return EmotionHappy
	case adjusted < -0.5:
		return EmotionSad
	case adjusted > 0.3:
		return EmotionContent
	case adjusted < -0.3:
		return EmotionAnxious
	default:
		return EmotionNeutral
	}
}
