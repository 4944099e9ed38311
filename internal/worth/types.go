// internal/worth/types.go
//
// Worth categories and recalculation triggers.
package worth

// Type is a category of valuable content inside a claimed area whose value
// contributes to a faction's total worth.
type Type int

const (
	Blocks Type = iota
	Chests
	Spawners
	PlayerBalance
	FactionBalance
	numTypes
)

var typeNames = [...]string{
	Blocks:         "BLOCKS",
	Chests:         "CHESTS",
	Spawners:       "SPAWNERS",
	PlayerBalance:  "PLAYER_BALANCE",
	FactionBalance: "FACTION_BALANCE",
}

var _ = [1]struct{}{}[len(typeNames)-int(numTypes)]

// Types is the WorthType vocabulary.
var Types = newVocabulary[Type]("WorthType", typeNames[:])

func (t Type) String() string { return Types.String(t) }

// RecalculateReason is an event that may trigger a worth recomputation for
// a chunk.
type RecalculateReason int

const (
	ReasonCommand RecalculateReason = iota
	ReasonUnload
	ReasonClaim
	ReasonUnclaim
	ReasonBreak
	ReasonPlace
	ReasonExplode
	ReasonChest
	numReasons
)

var reasonNames = [...]string{
	ReasonCommand: "COMMAND",
	ReasonUnload:  "UNLOAD",
	ReasonClaim:   "CLAIM",
	ReasonUnclaim: "UNCLAIM",
	ReasonBreak:   "BREAK",
	ReasonPlace:   "PLACE",
	ReasonExplode: "EXPLODE",
	ReasonChest:   "CHEST",
}

var _ = [1]struct{}{}[len(reasonNames)-int(numReasons)]

// Reasons is the RecalculateReason vocabulary.
var Reasons = newVocabulary[RecalculateReason]("RecalculateReason", reasonNames[:])

func (r RecalculateReason) String() string { return Reasons.String(r) }
