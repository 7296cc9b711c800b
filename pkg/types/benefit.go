package types

// BenefitTier is the catalog-owned classification of a package into an
// ad-benefit class. The empty tier means the catalog has not classified the
// package and the resolver falls back to name matching.
type BenefitTier string

const (
	BenefitTierNone     BenefitTier = ""
	BenefitTierStandard BenefitTier = "standard"
	BenefitTierPremium  BenefitTier = "premium"
)

func (t BenefitTier) Valid() bool {
	switch t {
	case BenefitTierNone, BenefitTierStandard, BenefitTierPremium:
		return true
	}
	return false
}

// AdBenefits is the feature-flag tuple consumed by the client to decide which
// ad placements to suppress.
type AdBenefits struct {
	HideHomepageAds       bool `json:"hide_homepage_ads"`
	HideVideoAds          bool `json:"hide_video_ads"`
	HasActiveSubscription bool `json:"has_active_subscription"`
}
