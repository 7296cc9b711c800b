package subscription

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clapboard/membership/pkg/types"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to types.SubscriptionStatus
		want     bool
	}{
		{types.SubscriptionStatusPending, types.SubscriptionStatusActive, true},
		{types.SubscriptionStatusPending, types.SubscriptionStatusRejected, true},
		{types.SubscriptionStatusPending, types.SubscriptionStatusCancelled, true},
		{types.SubscriptionStatusActive, types.SubscriptionStatusExpired, true},

		{types.SubscriptionStatusActive, types.SubscriptionStatusPending, false},
		{types.SubscriptionStatusExpired, types.SubscriptionStatusActive, false},
		// re-expiring an expired row is rejected, which is what keeps the
		// expiry cascade idempotent when the sweeper races the lazy check
		{types.SubscriptionStatusExpired, types.SubscriptionStatusExpired, false},
		{types.SubscriptionStatusActive, types.SubscriptionStatusActive, false},
		{types.SubscriptionStatusPending, types.SubscriptionStatusPending, false},
		{types.SubscriptionStatusRejected, types.SubscriptionStatusActive, false},
		{types.SubscriptionStatusCancelled, types.SubscriptionStatusActive, false},
		{types.SubscriptionStatusPending, types.SubscriptionStatusExpired, false},
		{types.SubscriptionStatusActive, types.SubscriptionStatusRejected, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	require.ElementsMatch(t,
		[]types.SubscriptionStatus{
			types.SubscriptionStatusActive,
			types.SubscriptionStatusRejected,
			types.SubscriptionStatusCancelled,
		},
		ValidTransitionsFrom(types.SubscriptionStatusPending))

	require.Equal(t,
		[]types.SubscriptionStatus{types.SubscriptionStatusExpired},
		ValidTransitionsFrom(types.SubscriptionStatusActive))

	// terminal states go nowhere
	require.Empty(t, ValidTransitionsFrom(types.SubscriptionStatusExpired))
	require.Empty(t, ValidTransitionsFrom(types.SubscriptionStatusCancelled))
	require.Empty(t, ValidTransitionsFrom(types.SubscriptionStatusRejected))
}
