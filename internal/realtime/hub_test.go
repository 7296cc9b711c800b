package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/types"
)

func TestSubscriptionPayload(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sub := &models.UserSubscription{
		ID:        "sub-1",
		UserID:    "user-1",
		PackageID: "pkg-1",
		Package:   &models.SubscriptionPackage{ID: "pkg-1", Name: "Premium Monthly"},
		Status:    types.SubscriptionStatusActive,
		StartDate: &start,
		EndDate:   &end,
	}

	data := subscriptionPayload(sub)
	require.Equal(t, "sub-1", data["subscription_id"])
	require.Equal(t, "user-1", data["user_id"])
	require.Equal(t, "pkg-1", data["package_id"])
	require.Equal(t, "Premium Monthly", data["package_name"])
	require.Equal(t, types.SubscriptionStatusActive, data["status"])
}

func TestSubscriptionPayload_SparseRow(t *testing.T) {
	data := subscriptionPayload(&models.UserSubscription{ID: "sub-2", UserID: "user-2"})
	require.NotContains(t, data, "package_id")
	require.NotContains(t, data, "package_name")
	require.Equal(t, "sub-2", data["subscription_id"])
}
