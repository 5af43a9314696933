package ledger

import (
	"fmt"

	"github.com/rentmanager/backend/internal/domain/shared"
)

// FlowDirection indicates whether an entry moves money into or out of the
// landlord's books. It is always derived from the payment type, never
// supplied by the caller.
type FlowDirection string

const (
	FlowIncome   FlowDirection = "income"
	FlowOutgoing FlowDirection = "outgoing"
)

// IsValid checks if the flow direction is valid
func (d FlowDirection) IsValid() bool {
	return d == FlowIncome || d == FlowOutgoing
}

// PaymentType classifies a ledger entry
type PaymentType string

const (
	PaymentTypeRent               PaymentType = "rent"
	PaymentTypeLateFee            PaymentType = "late_fee"
	PaymentTypeSecurityDeposit    PaymentType = "security_deposit"
	PaymentTypeDepositRefund      PaymentType = "deposit_refund"
	PaymentTypeUtilityCharge      PaymentType = "utility_charge"
	PaymentTypeMaintenanceExpense PaymentType = "maintenance_expense"
	PaymentTypeOtherIncome        PaymentType = "other_income"
	PaymentTypeOtherExpense       PaymentType = "other_expense"
)

// PaymentTypeDefinition describes how entries of a payment type behave
type PaymentTypeDefinition struct {
	Direction          FlowDirection
	RequiresTenantUnit bool
	DefaultStatus      EntryStatus
}

// paymentTypeRegistry is the static table mapping every known payment type
// to its flow direction, tenant/unit requirement and default status.
var paymentTypeRegistry = map[PaymentType]PaymentTypeDefinition{
	PaymentTypeRent:               {FlowIncome, true, StatusPending},
	PaymentTypeLateFee:            {FlowIncome, true, StatusPending},
	PaymentTypeSecurityDeposit:    {FlowIncome, true, StatusPending},
	PaymentTypeDepositRefund:      {FlowOutgoing, true, StatusCompleted},
	PaymentTypeUtilityCharge:      {FlowIncome, true, StatusPending},
	PaymentTypeMaintenanceExpense: {FlowOutgoing, false, StatusCompleted},
	PaymentTypeOtherIncome:        {FlowIncome, false, StatusCompleted},
	PaymentTypeOtherExpense:       {FlowOutgoing, false, StatusCompleted},
}

// DefinitionFor looks up the registry definition for a payment type.
// Unknown types yield a field-tagged validation error.
func DefinitionFor(pt PaymentType) (PaymentTypeDefinition, error) {
	def, ok := paymentTypeRegistry[pt]
	if !ok {
		return PaymentTypeDefinition{}, shared.NewValidationError("payment_type",
			fmt.Sprintf("Unknown payment type %q", pt))
	}
	return def, nil
}

// KnownPaymentTypes returns every registered payment type
func KnownPaymentTypes() []PaymentType {
	types := make([]PaymentType, 0, len(paymentTypeRegistry))
	for pt := range paymentTypeRegistry {
		types = append(types, pt)
	}
	return types
}
