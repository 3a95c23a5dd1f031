package validation

import (
	"errors"
	"testing"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func validDetails() *models.PaymentDetails {
	return &models.PaymentDetails{
		SenderAccountNumber:      "1234567890",
		SenderRoutingCode:        "HDFC0001234",
		SenderAccountType:        "CURRENT",
		SenderName:               "Acme Industries",
		BeneficiaryAccountNumber: "0987654321",
		BeneficiaryRoutingCode:   "ICIC0004567",
		BeneficiaryAccountType:   "CURRENT",
		BeneficiaryName:          "Globex Corp",
		Amount:                   500_000,
		PaymentReference:         "INV-2024-001",
		Priority:                 models.PriorityNormal,
	}
}

func TestValidate(t *testing.T) {
	v := New(DefaultConfig())

	t.Run("Valid Details", func(t *testing.T) {
		assert.NoError(t, v.Validate(validDetails()))
	})

	t.Run("Nil Details", func(t *testing.T) {
		err := v.Validate(nil)
		require.Error(t, err)

		// Nil input is a programming fault, not a business-rule violation.
		var verr *Error
		assert.False(t, errors.As(err, &verr))
	})

	tests := []struct {
		name     string
		mutate   func(*models.PaymentDetails)
		wantRule string
	}{
		{"Short Sender Account", func(d *models.PaymentDetails) { d.SenderAccountNumber = "1234" }, "sender_account_number"},
		{"Bad Sender Routing Code", func(d *models.PaymentDetails) { d.SenderRoutingCode = "HDFC1001234" }, "sender_routing_code"},
		{"Routing Code Too Short", func(d *models.PaymentDetails) { d.SenderRoutingCode = "HDFC000123" }, "sender_routing_code"},
		{"Short Beneficiary Account", func(d *models.PaymentDetails) { d.BeneficiaryAccountNumber = "98" }, "beneficiary_account_number"},
		{"Bad Beneficiary Routing Code", func(d *models.PaymentDetails) { d.BeneficiaryRoutingCode = "icic0004567" }, "beneficiary_routing_code"},
		{"Amount Below Minimum", func(d *models.PaymentDetails) { d.Amount = 50_000 }, "amount_minimum"},
		{"Amount Above Limit", func(d *models.PaymentDetails) { d.Amount = 100_000_001 }, "amount_maximum"},
		{"Empty Sender Name", func(d *models.PaymentDetails) { d.SenderName = "" }, "sender_name"},
		{"Empty Beneficiary Name", func(d *models.PaymentDetails) { d.BeneficiaryName = "" }, "beneficiary_name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDetails()
			tc.mutate(d)

			err := v.Validate(d)
			require.Error(t, err)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantRule, verr.Rule)
		})
	}
}

func TestValidateAmountBoundary(t *testing.T) {
	v := New(Config{MinAmount: 200_000, MaxAmount: 100_000_000})

	t.Run("One Below Minimum Rejected", func(t *testing.T) {
		d := validDetails()
		d.Amount = 199_999

		err := v.Validate(d)
		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "amount_minimum", verr.Rule)
	})

	t.Run("One Above Minimum Accepted", func(t *testing.T) {
		d := validDetails()
		d.Amount = 200_001
		assert.NoError(t, v.Validate(d))
	})

	t.Run("Checks Short-Circuit In Order", func(t *testing.T) {
		d := validDetails()
		d.SenderAccountNumber = "12"
		d.Amount = 1 // also invalid, but the account check fires first

		err := v.Validate(d)
		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "sender_account_number", verr.Rule)
	})
}
