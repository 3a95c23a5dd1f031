package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// routingCodePattern is the IFSC-style bank-and-branch identifier: four
// uppercase letters, a literal zero, six alphanumerics.
var routingCodePattern = regexp.MustCompile(`^[A-Z]{4}0[A-Za-z0-9]{6}$`)

const minAccountNumberLength = 5

// Error describes a business-rule violation in a payment instruction. The Rule
// field is stable and machine-readable; Message is for humans.
type Error struct {
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Config bounds the accepted amount range, in currency minor units. MinAmount
// defaults to the regulatory RTGS floor, MaxAmount to the configured per
// transaction ceiling.
type Config struct {
	MinAmount int64
	MaxAmount int64
}

func DefaultConfig() Config {
	return Config{
		MinAmount: 200_000,
		MaxAmount: 100_000_000,
	}
}

// Validator checks structural and business-rule correctness of payment
// instructions before they may enter the settlement pipeline.
type Validator struct {
	cfg Config
}

func New(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs the rule checks in order and short-circuits on the first
// failure, returning a *Error identifying the rule. A nil details pointer is a
// programming error, not a business-rule violation.
func (v *Validator) Validate(details *models.PaymentDetails) error {
	if details == nil {
		return errors.New("payment details must not be nil")
	}

	if len(details.SenderAccountNumber) < minAccountNumberLength {
		return &Error{
			Rule:    "sender_account_number",
			Message: fmt.Sprintf("sender account number must be at least %d characters", minAccountNumberLength),
		}
	}
	if !routingCodePattern.MatchString(details.SenderRoutingCode) {
		return &Error{
			Rule:    "sender_routing_code",
			Message: "sender routing code must be 11 characters in bank-branch format",
		}
	}
	if len(details.BeneficiaryAccountNumber) < minAccountNumberLength {
		return &Error{
			Rule:    "beneficiary_account_number",
			Message: fmt.Sprintf("beneficiary account number must be at least %d characters", minAccountNumberLength),
		}
	}
	if !routingCodePattern.MatchString(details.BeneficiaryRoutingCode) {
		return &Error{
			Rule:    "beneficiary_routing_code",
			Message: "beneficiary routing code must be 11 characters in bank-branch format",
		}
	}
	if details.Amount < v.cfg.MinAmount {
		return &Error{
			Rule:    "amount_minimum",
			Message: fmt.Sprintf("amount %d is below the minimum of %d minor units", details.Amount, v.cfg.MinAmount),
		}
	}
	if details.Amount > v.cfg.MaxAmount {
		return &Error{
			Rule:    "amount_maximum",
			Message: fmt.Sprintf("amount %d exceeds the per-transaction limit of %d minor units", details.Amount, v.cfg.MaxAmount),
		}
	}
	if details.SenderName == "" {
		return &Error{Rule: "sender_name", Message: "sender name must not be empty"}
	}
	if details.BeneficiaryName == "" {
		return &Error{Rule: "beneficiary_name", Message: "beneficiary name must not be empty"}
	}

	return nil
}
