package types

import "time"

// PaymentStatus is the state of a rent payment transaction as reported by
// the payment store. Only completed or success transactions count as income.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsSettled reports whether the transaction represents money actually received
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusSuccess
}

// ExpenseStatus is the state of a property expense as reported by the
// expense store. Paid and pending expenses are deductible.
type ExpenseStatus string

const (
	ExpenseStatusPaid      ExpenseStatus = "paid"
	ExpenseStatusPending   ExpenseStatus = "pending"
	ExpenseStatusCancelled ExpenseStatus = "cancelled"
)

// IsDeductible reports whether the expense counts toward deductions
func (s ExpenseStatus) IsDeductible() bool {
	return s == ExpenseStatusPaid || s == ExpenseStatusPending
}

// ExpenseCategoryPropertyTax is tracked as its own tax line item rather than
// as a deduction against taxable income.
const ExpenseCategoryPropertyTax = "property tax"

// TaxYearStart returns the first instant of the tax year in UTC
func TaxYearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// TaxYearEnd returns the last instant of the tax year in UTC
func TaxYearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)
}

// InTaxYear reports whether t falls within the given calendar tax year
func InTaxYear(t time.Time, year int) bool {
	return t.UTC().Year() == year
}
