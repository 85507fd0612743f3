package tier

// AdjustmentPolicy is the optional automatic tier promotion/demotion rule.
// It is never run by the weekly pipeline itself; a deployment that wants
// automatic tiers invokes it explicitly after weekly processing.
//
// Rule: a week with at least ActiveWeekThreshold finalized points promotes
// by one (capped at MaxAssignableTier); two consecutive inactive weeks
// demote by one (floored at MinTier). A single inactive week leaves the
// tier unchanged.
type AdjustmentPolicy struct {
	ActiveWeekThreshold float64
}

// NewAdjustmentPolicy creates a policy with the default activity threshold.
func NewAdjustmentPolicy() *AdjustmentPolicy {
	return &AdjustmentPolicy{ActiveWeekThreshold: DefaultActiveWeekThreshold}
}

// DefaultActiveWeekThreshold is the finalized-points floor for an "active"
// week under the adjustment policy.
const DefaultActiveWeekThreshold = 10

// Adjustment describes the outcome of evaluating one moderator.
type Adjustment struct {
	NewTier int
	Changed bool
	Reason  string
}

// Evaluate applies the rule to a moderator's current tier given this week's
// and the previous week's effective finalized points. A nil pointer means
// no record exists for that week (treated as inactive).
func (p *AdjustmentPolicy) Evaluate(currentTier int, currentPoints, previousPoints *float64) Adjustment {
	tier := Clamp(currentTier)

	currentActive := currentPoints != nil && *currentPoints >= p.ActiveWeekThreshold
	previousActive := previousPoints != nil && *previousPoints >= p.ActiveWeekThreshold

	switch {
	case currentActive && tier < MaxAssignableTier:
		return Adjustment{NewTier: tier + 1, Changed: true, Reason: "active week (+1)"}
	case !currentActive && !previousActive && tier > MinTier:
		return Adjustment{NewTier: tier - 1, Changed: true, Reason: "2+ weeks inactivity (-1)"}
	default:
		return Adjustment{NewTier: tier}
	}
}
