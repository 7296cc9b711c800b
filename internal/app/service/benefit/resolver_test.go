package benefit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/types"
)

func TestClassify_TierWinsOverName(t *testing.T) {
	// An operator-assigned tier overrides whatever the name suggests.
	pkg := &models.SubscriptionPackage{Name: "Gói Premium", BenefitTier: types.BenefitTierStandard}
	got := Classify(pkg)
	require.True(t, got.HasActiveSubscription)
	require.True(t, got.HideHomepageAds)
	require.False(t, got.HideVideoAds)
}

func TestClassify_NameFallback(t *testing.T) {
	cases := []struct {
		name         string
		wantVideoAds bool // true = video ads hidden
	}{
		{"Premium Monthly", true},
		{"VIP Yearly", true},
		{"Gold", true},
		{"Gói Cao Cấp", true},
		{"Basic", false},
		{"Standard Monthly", false},
		{"Gói Cơ bản", false},
		{"Gói Tiêu chuẩn", false},
		// unmatched names resolve to the permissive standard default
		{"Mystery Bundle", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(&models.SubscriptionPackage{Name: tc.name})
			require.True(t, got.HasActiveSubscription)
			require.True(t, got.HideHomepageAds, "homepage ads are hidden for every active subscription")
			require.Equal(t, tc.wantVideoAds, got.HideVideoAds)
		})
	}
}

func TestClassify_PremiumTier(t *testing.T) {
	got := Classify(&models.SubscriptionPackage{Name: "whatever", BenefitTier: types.BenefitTierPremium})
	require.Equal(t, types.AdBenefits{HideHomepageAds: true, HideVideoAds: true, HasActiveSubscription: true}, got)
}

func TestClassifyByName_CaseInsensitive(t *testing.T) {
	require.Equal(t, types.BenefitTierPremium, classifyByName("PREMIUM plus"))
	require.Equal(t, types.BenefitTierPremium, classifyByName("platinum"))
	require.Equal(t, types.BenefitTierStandard, classifyByName("BASIC"))
	require.Equal(t, types.BenefitTierStandard, classifyByName(""))
}
