package application

import (
	"math"

	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// ComputeEMI calculates the equated monthly installment for a principal in
// minor currency units, an annual interest rate in percent, and a tenure in
// months, rounded to the nearest unit:
//
//	monthlyRate = rate / (12 * 100)
//	EMI = P * monthlyRate * (1+monthlyRate)^n / ((1+monthlyRate)^n - 1)
//
// Degenerate inputs are rejected rather than risking a division by zero.
func ComputeEMI(principal int64, annualRate float64, tenureMonths int) (int64, error) {
	if principal <= 0 {
		return 0, shared.ValidationError{Field: "approved_amount", Reason: "approved amount must be positive"}
	}
	if annualRate <= 0 {
		return 0, shared.ValidationError{Field: "interest_rate", Reason: "interest rate must be positive"}
	}
	if tenureMonths <= 0 {
		return 0, shared.ValidationError{Field: "tenure_months", Reason: "tenure must be positive"}
	}

	monthlyRate := annualRate / (12 * 100)
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := float64(principal) * monthlyRate * factor / (factor - 1)

	return int64(math.Round(emi)), nil
}
