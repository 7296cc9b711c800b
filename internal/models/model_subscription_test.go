package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clapboard/membership/pkg/types"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestUserSubscriptionCurrentlyActive(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	base := func() *UserSubscription {
		return &UserSubscription{
			IsActive:  true,
			Status:    types.SubscriptionStatusActive,
			StartDate: ptrTime(now.AddDate(0, -1, 0)),
			EndDate:   ptrTime(now.AddDate(0, 1, 0)),
		}
	}

	t.Run("inside window", func(t *testing.T) {
		require.True(t, base().CurrentlyActive(now))
	})

	t.Run("end date boundary is inclusive", func(t *testing.T) {
		s := base()
		s.EndDate = ptrTime(now)
		require.True(t, s.CurrentlyActive(now))
	})

	t.Run("start date boundary is inclusive", func(t *testing.T) {
		s := base()
		s.StartDate = ptrTime(now)
		require.True(t, s.CurrentlyActive(now))
	})

	t.Run("past end date", func(t *testing.T) {
		s := base()
		s.EndDate = ptrTime(now.Add(-time.Second))
		require.False(t, s.CurrentlyActive(now))
	})

	t.Run("not yet started", func(t *testing.T) {
		s := base()
		s.StartDate = ptrTime(now.Add(time.Hour))
		require.False(t, s.CurrentlyActive(now))
	})

	t.Run("pending status never active", func(t *testing.T) {
		s := base()
		s.Status = types.SubscriptionStatusPending
		require.False(t, s.CurrentlyActive(now))
	})

	t.Run("inactive flag wins over window", func(t *testing.T) {
		s := base()
		s.IsActive = false
		require.False(t, s.CurrentlyActive(now))
	})

	t.Run("nil dates", func(t *testing.T) {
		s := base()
		s.StartDate = nil
		require.False(t, s.CurrentlyActive(now))
		s = base()
		s.EndDate = nil
		require.False(t, s.CurrentlyActive(now))
	})

	t.Run("nil receiver", func(t *testing.T) {
		var s *UserSubscription
		require.False(t, s.CurrentlyActive(now))
	})
}

func TestUserSubscriptionPastEndDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	require.True(t, (&UserSubscription{EndDate: ptrTime(now.Add(-time.Minute))}).PastEndDate(now))
	require.False(t, (&UserSubscription{EndDate: ptrTime(now)}).PastEndDate(now))
	require.False(t, (&UserSubscription{EndDate: ptrTime(now.Add(time.Minute))}).PastEndDate(now))
	require.False(t, (&UserSubscription{}).PastEndDate(now))
}

func TestTableNames(t *testing.T) {
	require.Equal(t, "user_subscription", UserSubscription{}.TableName())
	require.Equal(t, "subscription_package", SubscriptionPackage{}.TableName())
	require.Equal(t, "payment", Payment{}.TableName())
	require.Equal(t, "app_user", User{}.TableName())
}
