package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clapboard/membership/pkg/apperr"
	"github.com/clapboard/membership/pkg/types"
)

func TestValidatePackage(t *testing.T) {
	cases := []struct {
		name     string
		pkgName  string
		price    int64
		duration int
		discount int
		tier     types.BenefitTier
		wantErr  bool
	}{
		{"valid", "Premium Monthly", 99000, 30, 0, types.BenefitTierPremium, false},
		{"valid free package", "Trial", 0, 7, 0, types.BenefitTierNone, false},
		{"valid full discount", "Promo", 50000, 30, 100, types.BenefitTierStandard, false},
		{"empty name", "", 99000, 30, 0, types.BenefitTierNone, true},
		{"negative price", "X", -1, 30, 0, types.BenefitTierNone, true},
		{"zero duration", "X", 1000, 0, 0, types.BenefitTierNone, true},
		{"negative duration", "X", 1000, -5, 0, types.BenefitTierNone, true},
		{"discount over 100", "X", 1000, 30, 101, types.BenefitTierNone, true},
		{"negative discount", "X", 1000, 30, -1, types.BenefitTierNone, true},
		{"unknown tier", "X", 1000, 30, 0, types.BenefitTier("deluxe"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePackage(tc.pkgName, tc.price, tc.duration, tc.discount, tc.tier)
			if tc.wantErr {
				require.ErrorIs(t, err, apperr.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
