package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountedAmount(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		discount int
		want     int64
	}{
		{"no discount", 99000, 0, 99000},
		{"negative discount ignored", 99000, -5, 99000},
		{"ten percent", 100000, 10, 90000},
		{"rounds down", 99999, 10, 89999},
		{"full discount", 50000, 100, 0},
		{"over full discount clamps to zero", 50000, 150, 0},
		{"zero price", 0, 30, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DiscountedAmount(tc.price, tc.discount))
		})
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodBankTransfer, PaymentMethodMomo, PaymentMethodZaloPay, PaymentMethodCreditCard} {
		require.True(t, m.Valid(), "method=%q", m)
	}
	require.False(t, PaymentMethod("paypal").Valid())
	require.False(t, PaymentMethod("").Valid())
}
