package benefit

import (
	"context"
	"strings"

	"go.uber.org/zap"

	subsvc "github.com/clapboard/membership/internal/app/service/subscription"
	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/types"
)

// Name fragments used when a package carries no catalog-owned benefit tier.
// The fallback tolerates catalog drift: newly created packages resolve to a
// sensible class before an operator classifies them.
var (
	premiumNameFragments  = []string{"premium", "gold", "platinum", "vip", "cao cấp"}
	standardNameFragments = []string{"basic", "standard", "cơ bản", "tiêu chuẩn"}
)

// Classify derives the ad-visibility flags for an active package. The
// catalog-owned benefit tier wins; name matching is only the fallback for
// unclassified packages. Unmatched packages get the permissive standard
// default (homepage ads hidden, video ads shown), not a denial.
func Classify(pkg *models.SubscriptionPackage) types.AdBenefits {
	out := types.AdBenefits{HasActiveSubscription: true}

	tier := pkg.BenefitTier
	if tier == types.BenefitTierNone {
		tier = classifyByName(pkg.Name)
	}

	switch tier {
	case types.BenefitTierPremium:
		out.HideHomepageAds = true
		out.HideVideoAds = true
	default:
		// standard and anything unmatched
		out.HideHomepageAds = true
		out.HideVideoAds = false
	}
	return out
}

func classifyByName(name string) types.BenefitTier {
	lowered := strings.ToLower(name)
	for _, frag := range premiumNameFragments {
		if strings.Contains(lowered, frag) {
			return types.BenefitTierPremium
		}
	}
	for _, frag := range standardNameFragments {
		if strings.Contains(lowered, frag) {
			return types.BenefitTierStandard
		}
	}
	return types.BenefitTierStandard
}

// Service answers the ad-benefit query for a user. Resolution itself is a
// pure derivation; the only storage touched is the current-subscription read,
// which runs the shared lazy expiry check first.
type Service struct {
	subs *subsvc.Service
	log  *zap.SugaredLogger
}

func NewService(subs *subsvc.Service, log *zap.SugaredLogger) *Service {
	return &Service{subs: subs, log: log}
}

func (s *Service) Resolve(ctx context.Context, userID string) (types.AdBenefits, error) {
	sub, err := s.subs.Current(ctx, userID)
	if err != nil {
		return types.AdBenefits{}, err
	}
	if sub == nil || sub.Package == nil {
		return types.AdBenefits{}, nil
	}
	return Classify(sub.Package), nil
}
