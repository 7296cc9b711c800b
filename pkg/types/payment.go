package types

// PaymentStatus tracks the monetary side of a subscription request. It
// evolves independently of the approval status: a completed payment is not by
// itself proof of an active subscription.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentApprovalStatus string

const (
	PaymentApprovalPending  PaymentApprovalStatus = "pending"
	PaymentApprovalApproved PaymentApprovalStatus = "approved"
	PaymentApprovalRejected PaymentApprovalStatus = "rejected"
)

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMomo         PaymentMethod = "momo"
	PaymentMethodZaloPay      PaymentMethod = "zalopay"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodMomo, PaymentMethodZaloPay, PaymentMethodCreditCard:
		return true
	}
	return false
}

// DiscountedAmount applies a percentage discount to a package price. The
// result is fixed on the payment row at creation time and never recomputed.
func DiscountedAmount(price int64, discountPercent int) int64 {
	if discountPercent <= 0 {
		return price
	}
	if discountPercent >= 100 {
		return 0
	}
	return price * int64(100-discountPercent) / 100
}
