/*
Package leave contains the leave-balance accounting engine.

PURPOSE:
  This package owns the rules that keep a per-employee "available
  vacation days" counter consistent while contracts and vacation-day
  requests are created, edited, approved, and removed.

KEY CONCEPTS IN THIS FILE (types.go):
  - User: an employee; carries the availableDays counter
  - Contract: an employment contract contributing an entitlement accrual
  - VacationRequest: a request for days off, consuming the accrual once approved
  - Actor: the authenticated caller (identity + administrator flag)

DESIGN PRINCIPLES:
  1. Single mutation path: availableDays only ever changes through the
     Ledger, as a signed relative delta
  2. Precision: decimal.Decimal for entitlements; fractional accruals
     are kept fractional so that deltas cancel additively
  3. Explicit capability: "is the caller an admin" is a parameter on
     every lifecycle call, never ambient state

SEE ALSO:
  - accrual.go: entitlement and consumption arithmetic
  - ledger.go: the availableDays mutation primitive
  - contracts.go, vacations.go: lifecycle orchestration
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ACTOR - The authenticated caller
// =============================================================================

// Actor identifies the caller of a lifecycle operation. It is supplied
// by the auth boundary; the engine never authenticates, it only
// branches on the identity and flag handed to it.
type Actor struct {
	ID    int64
	Admin bool
}

// CanAccess reports whether the actor may read entities owned by userID.
func (a Actor) CanAccess(userID int64) bool {
	return a.Admin || a.ID == userID
}

// =============================================================================
// USER
// =============================================================================

// User is an employee record. AvailableDays is the running signed
// counter of vacation days the employee may still take; it may go
// negative when approvals overrun entitlement.
type User struct {
	ID            int64
	Email         string
	FirstName     string
	LastName      string
	DayOfBirth    time.Time
	PasswordHash  string
	Admin         bool
	AvailableDays decimal.Decimal
	CreatedAt     time.Time
}

// =============================================================================
// CONTRACT
// =============================================================================

// Free-day policies an employment contract can carry.
const (
	FreeDaysStandard = 20
	FreeDaysExtended = 26
)

// ValidFreeDays reports whether n is one of the supported policies.
func ValidFreeDays(n int) bool {
	return n == FreeDaysStandard || n == FreeDaysExtended
}

// Contract is an employment contract. It contributes
// (Duration/12) * FreeDaysPerYear entitlement days to its owner's
// balance for as long as it lives.
type Contract struct {
	ID              int64
	UserID          int64
	StartDay        time.Time
	StopDay         time.Time
	Duration        int // months, > 0
	FreeDaysPerYear int
	CreatedAt       time.Time
}

// Entitlement returns the accrual this contract contributes, evaluated
// on its current duration and policy.
func (c Contract) Entitlement() decimal.Decimal {
	return Entitlement(c.Duration, c.FreeDaysPerYear)
}

// =============================================================================
// VACATION REQUEST
// =============================================================================

// VacationRequest is a request for days off. Days holds the consumed-day
// count recorded against the balance; it is non-zero only while the
// request is approved. ContractID references the owner's most recent
// contract at creation time.
type VacationRequest struct {
	ID         int64
	UserID     int64
	ContractID int64
	StartDay   time.Time
	StopDay    time.Time
	Days       int
	Approved   bool
	CreatedAt  time.Time
}
