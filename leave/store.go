/*
store.go - Persistence interfaces consumed by the engine

PURPOSE:
  Defines the boundary between the lifecycles and the database. The
  engine only ever sees these interfaces; store/sqlite provides the
  production implementation and leave/store an in-memory one for tests.

ATOMIC INCREMENT CONTRACT:
  AdjustAvailableDays is the one write that touches the balance counter.
  Implementations MUST execute it as a single relative update
  ("current value + delta" committed in one indivisible step), never as
  load-into-memory, compute, store-back. Two concurrent adjustments for
  the same user must both land.

TRANSACTIONS:
  Lifecycle operations combine "read entity, compute delta, persist,
  adjust balance". WithTx scopes those steps so the entity write and the
  balance write either both commit or both roll back.

SEE ALSO:
  - store/sqlite/sqlite.go: production implementation
  - leave/store/memory.go: in-memory implementation for tests
*/
package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STORE INTERFACES
// =============================================================================

// UserStore persists users and owns the availableDays counter.
type UserStore interface {
	CreateUser(ctx context.Context, u User) (int64, error)

	// GetUser returns (nil, nil) when the id does not exist.
	GetUser(ctx context.Context, id int64) (*User, error)

	// GetUserByEmail returns (nil, nil) when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u User) error
	DeleteUser(ctx context.Context, id int64) error
	CountUsers(ctx context.Context) (int, error)

	// AdjustAvailableDays atomically adds delta to the user's
	// availableDays. Returns false when the user no longer exists;
	// that outcome is a ledger no-op, not an error.
	AdjustAvailableDays(ctx context.Context, userID int64, delta decimal.Decimal) (bool, error)
}

// ContractStore persists employment contracts.
type ContractStore interface {
	CreateContract(ctx context.Context, c Contract) (int64, error)

	// GetContract returns (nil, nil) when the id does not exist.
	GetContract(ctx context.Context, id int64) (*Contract, error)

	// ListContracts returns contracts newest-first. userID == 0 lists
	// all users' contracts.
	ListContracts(ctx context.Context, userID int64) ([]Contract, error)

	UpdateContract(ctx context.Context, c Contract) error
	DeleteContract(ctx context.Context, id int64) error

	// LatestContract returns the user's most recently created contract,
	// or (nil, nil) when the user has none.
	LatestContract(ctx context.Context, userID int64) (*Contract, error)
}

// VacationStore persists vacation-day requests.
type VacationStore interface {
	CreateVacation(ctx context.Context, v VacationRequest) (int64, error)

	// GetVacation returns (nil, nil) when the id does not exist.
	GetVacation(ctx context.Context, id int64) (*VacationRequest, error)

	// ListVacations returns requests newest-first. userID == 0 lists all.
	ListVacations(ctx context.Context, userID int64) ([]VacationRequest, error)

	UpdateVacation(ctx context.Context, v VacationRequest) error
	DeleteVacation(ctx context.Context, id int64) error

	// SumVacationDays returns the sum of Days over ALL of the user's
	// requests, approved or not. An empty set sums to zero.
	SumVacationDays(ctx context.Context, userID int64) (int, error)
}

// Store is the full persistence surface the lifecycles operate on.
type Store interface {
	UserStore
	ContractStore
	VacationStore
}

// TxStore adds transaction scoping.
type TxStore interface {
	Store

	// WithTx executes fn against a transactional view of the store.
	// fn returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
