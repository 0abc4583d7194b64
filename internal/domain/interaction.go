package domain

import "time"

// EntityKind is the kind of entity an interaction targets or a match
// score describes.
type EntityKind string

const (
	KindProduct    EntityKind = "product"
	KindRoutine    EntityKind = "routine"
	KindIngredient EntityKind = "ingredient"
)

// InteractionType is the closed set of interaction event types.
type InteractionType string

const (
	InteractionLike       InteractionType = "like"
	InteractionDislike    InteractionType = "dislike"
	InteractionSave       InteractionType = "save"
	InteractionView       InteractionType = "view"
	InteractionRoutineAdd InteractionType = "routine_add"
	InteractionReroll     InteractionType = "reroll"
	InteractionAdapt      InteractionType = "adapt"
)

// interactionTypesByKind maps each entity kind to its permitted types.
// The writer deduplicates everything except views and keeps like/dislike
// mutually exclusive; the engine only counts what it is given.
var interactionTypesByKind = map[EntityKind][]InteractionType{
	KindProduct: {
		InteractionLike, InteractionDislike, InteractionSave,
		InteractionView, InteractionRoutineAdd, InteractionReroll,
	},
	KindRoutine: {
		InteractionLike, InteractionDislike, InteractionSave,
		InteractionView, InteractionAdapt,
	},
	KindIngredient: {
		InteractionLike, InteractionDislike,
	},
}

// ValidInteraction reports whether typ is permitted for kind.
func ValidInteraction(kind EntityKind, typ InteractionType) bool {
	for _, t := range interactionTypesByKind[kind] {
		if t == typ {
			return true
		}
	}
	return false
}

// Signed engagement weights per interaction type. Applied to
// per-type rates (weightedCount / weightedViews); the weighted sum is
// recentred on 0.5.
var (
	productEngagementWeights = map[InteractionType]float64{
		InteractionRoutineAdd: 0.35,
		InteractionSave:       0.25,
		InteractionLike:       0.25,
		InteractionDislike:    -0.25,
		InteractionReroll:     -0.15,
	}
	routineEngagementWeights = map[InteractionType]float64{
		InteractionAdapt:   0.4,
		InteractionSave:    0.3,
		InteractionLike:    0.2,
		InteractionDislike: -0.3,
	}
)

// EngagementWeights returns the signed rate weights for kind.
func EngagementWeights(kind EntityKind) map[InteractionType]float64 {
	if kind == KindRoutine {
		return routineEngagementWeights
	}
	return productEngagementWeights
}

// meaningfulTypes are the interaction types surfaced in tier counts and
// reasons: positive, deliberate signals only. Views, dislikes and rerolls
// stay out of the display path.
var meaningfulTypes = map[EntityKind][]InteractionType{
	KindProduct: {InteractionRoutineAdd, InteractionSave, InteractionLike},
	KindRoutine: {InteractionAdapt, InteractionSave, InteractionLike},
}

// MeaningfulTypes returns the displayable interaction types for kind, in
// reason order.
func MeaningfulTypes(kind EntityKind) []InteractionType {
	return meaningfulTypes[kind]
}

// reasonVerbs phrase each meaningful type in engagement reasons.
var reasonVerbs = map[InteractionType]string{
	InteractionRoutineAdd: "added this to their routine",
	InteractionSave:       "saved this",
	InteractionLike:       "liked this",
	InteractionAdapt:      "adapted this routine",
}

// InteractionEvent is an immutable, append-only record of one user
// interaction. ProfileCode is the actor's code at interaction time; it is
// the only profile information similarity weighting needs.
type InteractionEvent struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ProfileCode string          `json:"profile_code"`
	EntityID    string          `json:"entity_id"`
	EntityKind  EntityKind      `json:"entity_kind"`
	Type        InteractionType `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
}
