package tier

// Payouts maps a tier level to its flat monthly payout. Tier 4 is an
// extension tier that can only be reached by manual assignment.
var Payouts = map[int]int{
	0: 0,
	1: 600,
	2: 1200,
	3: 1800,
	4: 2800,
}

const (
	// MinTier and MaxAssignableTier bound what an admin may set directly.
	MinTier           = 0
	MaxAssignableTier = 3

	// MaxDefinedTier is the highest tier with a payout entry.
	MaxDefinedTier = 4

	// DefaultTier is assumed when no tier status exists for a moderator.
	// The read paths in the incumbent system mostly treated a missing
	// record as full payout; that choice is kept here.
	DefaultTier = 3
)

// Clamp forces a tier value into [MinTier, MaxDefinedTier].
func Clamp(tier int) int {
	if tier < MinTier {
		return MinTier
	}
	if tier > MaxDefinedTier {
		return MaxDefinedTier
	}
	return tier
}

// PayoutFor returns the flat payout for a tier, clamping unknown values
// into the defined range first.
func PayoutFor(tier int) int {
	return Payouts[Clamp(tier)]
}

// ValidAssignment reports whether an admin may set this tier directly.
func ValidAssignment(tier int) bool {
	return tier >= MinTier && tier <= MaxAssignableTier
}
