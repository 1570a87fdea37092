package resolver

import "github.com/caseboard/caseboard/api/schemas"

// Weights holds the tuning constants for edge strength and node importance.
// The values were arrived at by eyeballing rendered boards, not derived from
// anything principled; they are exposed as configuration so hosts can retune
// without a rebuild.
type Weights struct {
	// TierMultipliers scale ownership edge strength by the owner's tier.
	TierMultipliers map[schemas.CharacterTier]float64 `mapstructure:"tier_multipliers"`

	// Base strength per relationship type, before tier scaling.
	OwnershipStrength   float64 `mapstructure:"ownership_strength"`
	RequirementStrength float64 `mapstructure:"requirement_strength"`
	RewardStrength      float64 `mapstructure:"reward_strength"`
	TimelineStrength    float64 `mapstructure:"timeline_strength"`
	ContainerStrength   float64 `mapstructure:"container_strength"`
	ChainStrength       float64 `mapstructure:"chain_strength"`

	// Importance scoring: a kind-specific base plus points per connection,
	// clamped to MaxImportance.
	CharacterBase    float64 `mapstructure:"character_base"`
	PuzzleBase       float64 `mapstructure:"puzzle_base"`
	ElementBase      float64 `mapstructure:"element_base"`
	TimelineBase     float64 `mapstructure:"timeline_base"`
	ConnectionPoints float64 `mapstructure:"connection_points"`
	MaxImportance    float64 `mapstructure:"max_importance"`
}

// DefaultWeights returns the stock tuning.
func DefaultWeights() Weights {
	return Weights{
		TierMultipliers: map[schemas.CharacterTier]float64{
			schemas.TierCore:      1.5,
			schemas.TierSecondary: 1.0,
			schemas.TierTertiary:  0.7,
		},
		OwnershipStrength:   1.0,
		RequirementStrength: 0.8,
		RewardStrength:      0.9,
		TimelineStrength:    0.6,
		ContainerStrength:   0.5,
		ChainStrength:       0.8,
		CharacterBase:       30,
		PuzzleBase:          25,
		ElementBase:         15,
		TimelineBase:        10,
		ConnectionPoints:    5,
		MaxImportance:       100,
	}
}

// MergeOverrides returns a copy of w with any non-zero overrides applied.
// Tier keys match CharacterTier values; strength keys match RelationshipType
// values plus the kind bases ("character_base", ...).
func (w Weights) MergeOverrides(tiers map[string]float64, strengths map[string]float64, connectionPoints, maxImportance float64) Weights {
	out := w
	if len(tiers) > 0 {
		merged := make(map[schemas.CharacterTier]float64, len(w.TierMultipliers))
		for k, v := range w.TierMultipliers {
			merged[k] = v
		}
		for k, v := range tiers {
			merged[schemas.CharacterTier(k)] = v
		}
		out.TierMultipliers = merged
	}
	for k, v := range strengths {
		switch k {
		case string(schemas.RelOwnership):
			out.OwnershipStrength = v
		case string(schemas.RelRequirement):
			out.RequirementStrength = v
		case string(schemas.RelReward):
			out.RewardStrength = v
		case string(schemas.RelTimeline):
			out.TimelineStrength = v
		case string(schemas.RelContainer):
			out.ContainerStrength = v
		case string(schemas.RelChain):
			out.ChainStrength = v
		case "character_base":
			out.CharacterBase = v
		case "puzzle_base":
			out.PuzzleBase = v
		case "element_base":
			out.ElementBase = v
		case "timeline_base":
			out.TimelineBase = v
		}
	}
	if connectionPoints > 0 {
		out.ConnectionPoints = connectionPoints
	}
	if maxImportance > 0 {
		out.MaxImportance = maxImportance
	}
	return out
}

// tierMultiplier looks up the multiplier for a tier, defaulting to the
// Secondary weighting for unknown or empty tiers.
func (w Weights) tierMultiplier(tier schemas.CharacterTier) float64 {
	if m, ok := w.TierMultipliers[tier]; ok {
		return m
	}
	if m, ok := w.TierMultipliers[schemas.TierSecondary]; ok {
		return m
	}
	return 1.0
}

// kindBase returns the importance base for an entity kind.
func (w Weights) kindBase(kind schemas.EntityKind) float64 {
	switch kind {
	case schemas.KindCharacter:
		return w.CharacterBase
	case schemas.KindPuzzle:
		return w.PuzzleBase
	case schemas.KindElement:
		return w.ElementBase
	case schemas.KindTimelineEvent:
		return w.TimelineBase
	}
	return 0
}
