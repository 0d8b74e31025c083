package personastate

import (
	"fmt"
	"strings"
	"time"
)

// ──────────────────────────────────────────────
// Engine Snapshot — read-only state projection
// ──────────────────────────────────────────────

// EngineSnapshot is a read-only projection of the engine's full state,
// produced on demand. It carries everything needed to restore an engine via
// NewEngineFromSnapshot, so it doubles as the persistence format.
type EngineSnapshot struct {
	Variables        map[VarName]float64    `json:"variables"`
	Stage            RelationshipStage      `json:"relationship_stage"`
	Layer            SocialPenetrationLayer `json:"social_penetration_layer"`
	Emotion          EmotionalState         `json:"emotional_state"`
	InteractionCount int                    `json:"interaction_count"`
	LastInteraction  time.Time              `json:"last_interaction"`
	AvailableTopics  []string               `json:"available_topics"`
}

// Trust is a convenience accessor for the trust value.
func (s *EngineSnapshot) Trust() float64 {
	return s.Variables[VarTrust]
}

var stageLabels = map[RelationshipStage]string{
	StageInitial:      "初识",
	StageAcquaintance: "认识",
	StageFriend:       "朋友",
	StageCloseFriend:  "好友",
	StageConfidant:    "知己",
}

// FormatForPrompt renders the relationship state as a prompt segment for
// LLM injection. Only facts the model should act on are included; raw
// numeric values stay internal.
func (s *EngineSnapshot) FormatForPrompt() string {
	var lines []string
	lines = append(lines, "[关系状态]")
	lines = append(lines, fmt.Sprintf("- 你们的关系：%s（第%d次互动）", stageLabels[s.Stage], s.InteractionCount))

	switch s.Layer {
	case LayerCore:
		lines = append(lines, "- 可以聊很深入的话题：价值观、人生感悟")
	case LayerPersonal:
		lines = append(lines, "- 可以聊比较私人的话题：情绪、烦恼、关系")
	case LayerIntermediate:
		lines = append(lines, "- 可以聊个人偏好、目标和经历")
	default:
		lines = append(lines, "- 保持轻松的日常话题：兴趣、近况")
	}

	if s.Variables[VarUncertainty] > 70 {
		lines = append(lines, "- 彼此还不太熟悉，不要自来熟")
	}

	switch s.Emotion {
	case EmotionHappy, EmotionContent:
		lines = append(lines, "- 你现在心情不错")
	case EmotionSad:
		lines = append(lines, "- 你现在情绪有点低落")
	case EmotionAnxious:
		lines = append(lines, "- 你现在有些不安")
	}

	return strings.Join(lines, "\n")
}

// ToKV returns structured key-value pairs with sdk.* namespace, for
// channels that consume state as metadata rather than prompt text.
func (s *EngineSnapshot) ToKV() map[string]interface{} {
	kv := map[string]interface{}{
		"sdk.relationship.stage":             string(s.Stage),
		"sdk.relationship.layer":             string(s.Layer),
		"sdk.relationship.emotion":           string(s.Emotion),
		"sdk.relationship.interaction_count": s.InteractionCount,
		"sdk.relationship.last_interaction":  s.LastInteraction.Format(time.RFC3339),
	}
	for name, value := range s.Variables {
		kv["sdk.relationship.var."+string(name)] = value
	}
	return kv
}

// Clone returns a deep copy of the snapshot.
func (s *EngineSnapshot) Clone() *EngineSnapshot {
	out := *s
	out.Variables = make(map[VarName]float64, len(s.Variables))
	for k, v := range s.Variables {
		out.Variables[k] = v
	}
	out.AvailableTopics = make([]string, len(s.AvailableTopics))
	copy(out.AvailableTopics, s.AvailableTopics)
	return &out
}
