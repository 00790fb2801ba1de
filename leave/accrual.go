/*
accrual.go - Entitlement and consumption arithmetic

PURPOSE:
  Pure functions mapping a contract's duration and free-day policy to an
  accrued entitlement, and a date range to a consumed-day count. No
  state, no errors; inputs are validated upstream.

PRECISION:
  Entitlement is (duration/12) * freeDaysPerYear in rational arithmetic.
  A 7-month contract at 20 days/year accrues 11.666... days and that
  fraction is applied to the balance as-is. Rounding here would break
  additive cancellation: the delta credited on create must be exactly
  the delta debited on delete.

SEE ALSO:
  - contracts.go: credits/debits entitlements through the ledger
  - vacations.go: consumes days through the ledger
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Entitlement returns the vacation days accrued by a contract of
// durationMonths at freeDaysPerYear. Never rounds; callers decide any
// display rounding.
func Entitlement(durationMonths, freeDaysPerYear int) decimal.Decimal {
	return decimal.NewFromInt(int64(durationMonths)).
		Div(monthsPerYear).
		Mul(decimal.NewFromInt(int64(freeDaysPerYear)))
}

// Consumption returns the absolute calendar-day difference between two
// dates. Commutative in sign, zero when the dates are equal.
func Consumption(startDay, stopDay time.Time) int {
	a := truncateToDay(startDay)
	b := truncateToDay(stopDay)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// DefaultStopDay derives the stop day used when a contract omits it:
// startDay + duration months - 1 day.
func DefaultStopDay(startDay time.Time, durationMonths int) time.Time {
	return truncateToDay(startDay).AddDate(0, durationMonths, 0).AddDate(0, 0, -1)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
