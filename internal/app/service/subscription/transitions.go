package subscription

import (
	"slices"

	"github.com/clapboard/membership/pkg/types"
)

// Transition represents a valid state transition.
type Transition struct {
	From types.SubscriptionStatus
	To   types.SubscriptionStatus
}

// validTransitions defines all allowed state transitions. Expired, cancelled
// and rejected are terminal: nothing leaves them automatically.
var validTransitions = map[Transition]bool{
	{types.SubscriptionStatusPending, types.SubscriptionStatusActive}:    true, // admin approval
	{types.SubscriptionStatusPending, types.SubscriptionStatusRejected}:  true, // admin rejection
	{types.SubscriptionStatusPending, types.SubscriptionStatusCancelled}: true, // user cancels before approval (hard delete)
	{types.SubscriptionStatusActive, types.SubscriptionStatusExpired}:    true, // sweeper or lazy read check
}

// CanTransition checks if a transition from one state to another is valid.
func CanTransition(from, to types.SubscriptionStatus) bool {
	return validTransitions[Transition{from, to}]
}

// ValidTransitionsFrom returns all valid target states from the given state.
func ValidTransitionsFrom(from types.SubscriptionStatus) []types.SubscriptionStatus {
	targets := make([]types.SubscriptionStatus, 0)
	for t := range validTransitions {
		if t.From == from {
			targets = append(targets, t.To)
		}
	}

	// Stabilize ordering for deterministic callers/tests.
	slices.Sort(targets)
	return targets
}
