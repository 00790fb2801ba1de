/*
contracts.go - Contract lifecycle orchestration

PURPOSE:
  Create/update/delete of employment contracts, with the matching
  entitlement credits and debits pushed through the Ledger. Every
  mutation runs inside one store transaction so the contract row and
  the balance counter cannot drift apart on a crash.

DELTA RULES:
  create: +entitlement(duration, freeDays)
  update: -entitlement(old) then +entitlement(new), both against the
          userID carried by the update payload. Reassigning the owner
          therefore moves the whole entitlement without reconciling
          requests already taken under the old owner; this is the
          documented business rule, not an accident.
  delete: -(entitlement - usedDays) where usedDays sums days over ALL
          of the owner's vacation requests, approved or not. The
          aggregation is deliberately per-user, not per-contract.
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ContractInput carries the mutable fields of a contract. A zero
// StopDay means "derive from StartDay + Duration months - 1 day".
type ContractInput struct {
	UserID          int64
	StartDay        time.Time
	StopDay         time.Time
	Duration        int
	FreeDaysPerYear int
}

// ContractLifecycle orchestrates contract mutations.
type ContractLifecycle struct {
	store TxStore
	log   *logrus.Logger
}

// NewContractLifecycle creates the lifecycle over the given store.
func NewContractLifecycle(store TxStore, log *logrus.Logger) *ContractLifecycle {
	return &ContractLifecycle{store: store, log: log}
}

// Create persists a new contract and credits its entitlement to the
// owner. Administrator-only.
func (cl *ContractLifecycle) Create(ctx context.Context, actor Actor, in ContractInput) (*Contract, error) {
	if !actor.Admin {
		return nil, &ForbiddenError{ActorID: actor.ID, Action: "create contracts"}
	}

	stopDay := in.StopDay
	if stopDay.IsZero() {
		stopDay = DefaultStopDay(in.StartDay, in.Duration)
	}

	contract := Contract{
		UserID:          in.UserID,
		StartDay:        in.StartDay,
		StopDay:         stopDay,
		Duration:        in.Duration,
		FreeDaysPerYear: in.FreeDaysPerYear,
	}

	err := cl.store.WithTx(ctx, func(tx Store) error {
		ledger := NewLedger(tx, cl.log)
		if err := ledger.Apply(ctx, in.UserID, contract.Entitlement()); err != nil {
			return err
		}
		id, err := tx.CreateContract(ctx, contract)
		if err != nil {
			return fmt.Errorf("create contract: %w", err)
		}
		contract.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// Update rewrites a contract's fields, debiting the old entitlement and
// crediting the new one. Both deltas target the userID in the payload;
// stopDay is always recomputed from the new startDay and duration.
// Administrator-only; missing contract is NotFound.
func (cl *ContractLifecycle) Update(ctx context.Context, actor Actor, contractID int64, in ContractInput) (*Contract, error) {
	if !actor.Admin {
		return nil, &ForbiddenError{ActorID: actor.ID, Action: "update contracts"}
	}

	existing, err := cl.store.GetContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Kind: "contract", ID: contractID}
	}

	updated := Contract{
		ID:              contractID,
		UserID:          in.UserID,
		StartDay:        in.StartDay,
		StopDay:         DefaultStopDay(in.StartDay, in.Duration),
		Duration:        in.Duration,
		FreeDaysPerYear: in.FreeDaysPerYear,
		CreatedAt:       existing.CreatedAt,
	}

	err = cl.store.WithTx(ctx, func(tx Store) error {
		ledger := NewLedger(tx, cl.log)
		if err := ledger.Apply(ctx, in.UserID, existing.Entitlement().Neg()); err != nil {
			return err
		}
		if err := tx.UpdateContract(ctx, updated); err != nil {
			return fmt.Errorf("update contract: %w", err)
		}
		return ledger.Apply(ctx, in.UserID, updated.Entitlement())
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a contract and debits the entitlement not yet consumed
// by the owner's vacation requests. Deleting a missing contract is a
// no-effect success. Administrator-only.
func (cl *ContractLifecycle) Delete(ctx context.Context, actor Actor, contractID int64) error {
	if !actor.Admin {
		return &ForbiddenError{ActorID: actor.ID, Action: "delete contracts"}
	}

	existing, err := cl.store.GetContract(ctx, contractID)
	if err != nil {
		return fmt.Errorf("load contract: %w", err)
	}
	if existing == nil {
		return nil // already gone, idempotent
	}

	return cl.store.WithTx(ctx, func(tx Store) error {
		usedDays, err := tx.SumVacationDays(ctx, existing.UserID)
		if err != nil {
			return fmt.Errorf("sum used days: %w", err)
		}

		remaining := existing.Entitlement().Sub(decimal.NewFromInt(int64(usedDays)))

		ledger := NewLedger(tx, cl.log)
		if err := ledger.Apply(ctx, existing.UserID, remaining.Neg()); err != nil {
			return err
		}
		if err := tx.DeleteContract(ctx, contractID); err != nil {
			return fmt.Errorf("delete contract: %w", err)
		}
		return nil
	})
}

// Get returns a contract. Non-admins may only read their own.
func (cl *ContractLifecycle) Get(ctx context.Context, actor Actor, contractID int64) (*Contract, error) {
	contract, err := cl.store.GetContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if contract == nil {
		return nil, &NotFoundError{Kind: "contract", ID: contractID}
	}
	if !actor.CanAccess(contract.UserID) {
		return nil, &ForbiddenError{ActorID: actor.ID, Action: "read this contract"}
	}
	return contract, nil
}

// List returns contracts visible to the actor: all of them for admins,
// only their own otherwise.
func (cl *ContractLifecycle) List(ctx context.Context, actor Actor) ([]Contract, error) {
	scope := actor.ID
	if actor.Admin {
		scope = 0
	}
	contracts, err := cl.store.ListContracts(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}
