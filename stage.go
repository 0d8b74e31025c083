package personastate

// ──────────────────────────────────────────────
// Relationship Stage & Social Penetration Layer
// ──────────────────────────────────────────────

// RelationshipStage classifies overall relationship maturity. It only ever
// advances: once a stage is reached the engine never regresses below it,
// even when decay later pulls trust under the stage's threshold.
type RelationshipStage string

const (
	StageInitial      RelationshipStage = "initial"
	StageAcquaintance RelationshipStage = "acquaintance"
	StageFriend       RelationshipStage = "friend"
	StageCloseFriend  RelationshipStage = "close_friend"
	StageConfidant    RelationshipStage = "confidant"
)

// stageRank gives each stage an ordinal position. All stage comparisons go
// through Rank: comparing the string values would order "friend" before
// "initial" and break monotonicity.
var stageRank = map[RelationshipStage]int{
	StageInitial:      0,
	StageAcquaintance: 1,
	StageFriend:       2,
	StageCloseFriend:  3,
	StageConfidant:    4,
}

// Rank returns the ordinal position of the stage (0 = initial).
func (s RelationshipStage) Rank() int {
	return stageRank[s]
}

// stageThreshold holds the minimum trust and emotional connection required
// to reach a stage.
type stageThreshold struct {
	stage      RelationshipStage
	trust      float64
	connection float64
}

// stageThresholds is ordered highest first so classification can return the
// first stage whose thresholds are met.
var stageThresholds = []stageThreshold{
	{StageConfidant, 80, 70},
	{StageCloseFriend, 60, 50},
	{StageFriend, 40, 30},
	{StageAcquaintance, 20, 10},
}

// classifyStage returns the highest stage whose trust AND emotional
// connection thresholds are both met.
func classifyStage(trust, connection float64) RelationshipStage {
	for _, th := range stageThresholds {
		if trust >= th.trust && connection >= th.connection {
			return th.stage
		}
	}
	return StageInitial
}

// SocialPenetrationLayer classifies the current conversational intimacy
// depth, per Social Penetration Theory. Unlike RelationshipStage it is not
// sticky: it follows self_disclosure both up and down.
type SocialPenetrationLayer string

const (
	LayerPeripheral   SocialPenetrationLayer = "peripheral"
	LayerIntermediate SocialPenetrationLayer = "intermediate"
	LayerPersonal     SocialPenetrationLayer = "personal"
	LayerCore         SocialPenetrationLayer = "core"
)

var layerRank = map[SocialPenetrationLayer]int{
	LayerPeripheral:   0,
	LayerIntermediate: 1,
	LayerPersonal:     2,
	LayerCore:         3,
}

// Rank returns the ordinal depth of the layer (0 = peripheral).
func (l SocialPenetrationLayer) Rank() int {
	return layerRank[l]
}

// classifyLayer maps the current self_disclosure value to a layer.
func classifyLayer(selfDisclosure float64) SocialPenetrationLayer {
	switch {
	case selfDisclosure >= 80:
		return LayerCore
	case selfDisclosure >= 60:
		return LayerPersonal
	case selfDisclosure >= 30:
		return LayerIntermediate
	default:
		return LayerPeripheral
	}
}

// layerTopics lists the conversation topics appropriate at each depth.
var layerTopics = map[SocialPenetrationLayer][]string{
	LayerPeripheral:   {"weather", "hobbies", "general interests", "occupation"},
	LayerIntermediate: {"personal preferences", "goals", "aspirations", "past experiences"},
	LayerPersonal:     {"fears", "relationships", "emotions", "personal struggles"},
	LayerCore:         {"deep fears", "core values", "life philosophy", "intimate experiences"},
}

// Topics returns the conversation topics available at this layer.
func (l SocialPenetrationLayer) Topics() []string {
	topics := layerTopics[l]
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}
