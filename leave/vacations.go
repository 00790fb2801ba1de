/*
vacations.go - Vacation-request lifecycle orchestration

PURPOSE:
  Create/update/delete of vacation-day requests, with consumption
  deltas pushed through the Ledger. Which delta applies depends on the
  approval transition, so the rules live here in one place.

APPROVAL MODEL:
  Only administrators approve. A non-admin creating a request gets an
  unapproved one with zero recorded days; an admin creating one gets a
  pre-approved request consuming the full span. On update the approved
  flag is forced to false for non-admin callers.

TRANSITION DELTAS (exactly one applies, last match wins):
  approved -> approved, span changed:  -(days - daysBefore)
  unapproved -> approved:              -days
  approved -> unapproved:              +consumption(effective dates)
  anything else:                       no ledger call

  Un-approval credits the freshly recomputed span, NOT the stored
  daysBefore. Deletion credits the stored days unconditionally. Both
  asymmetries are the documented reference behavior; changing them would
  silently alter balances users rely on.
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// VacationInput carries the fields for creating a request.
type VacationInput struct {
	UserID   int64
	StartDay time.Time
	StopDay  time.Time
}

// VacationUpdateInput carries the fields for updating a request. Zero
// dates default to the stored values.
type VacationUpdateInput struct {
	StartDay time.Time
	StopDay  time.Time
	Approved bool
}

// VacationLifecycle orchestrates vacation-request mutations.
type VacationLifecycle struct {
	store TxStore
	log   *logrus.Logger
}

// NewVacationLifecycle creates the lifecycle over the given store.
func NewVacationLifecycle(store TxStore, log *logrus.Logger) *VacationLifecycle {
	return &VacationLifecycle{store: store, log: log}
}

// Create files a request against the user's most recent contract.
// Non-admin callers are self-assigned regardless of the payload; admin
// callers create pre-approved requests that consume days immediately.
// A user without any contract is NotFound.
func (vl *VacationLifecycle) Create(ctx context.Context, actor Actor, in VacationInput) (*VacationRequest, error) {
	userID := in.UserID
	if !actor.Admin {
		userID = actor.ID
	}

	lastContract, err := vl.store.LatestContract(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load latest contract: %w", err)
	}
	if lastContract == nil {
		return nil, &NotFoundError{Kind: "contract", ID: userID}
	}

	days := 0
	if actor.Admin {
		days = Consumption(in.StartDay, in.StopDay)
	}

	request := VacationRequest{
		UserID:     userID,
		ContractID: lastContract.ID,
		StartDay:   in.StartDay,
		StopDay:    in.StopDay,
		Days:       days,
		Approved:   actor.Admin,
	}

	err = vl.store.WithTx(ctx, func(tx Store) error {
		id, err := tx.CreateVacation(ctx, request)
		if err != nil {
			return fmt.Errorf("create vacation request: %w", err)
		}
		request.ID = id

		if request.Approved {
			ledger := NewLedger(tx, vl.log)
			return ledger.Apply(ctx, userID, decimal.NewFromInt(int64(days)).Neg())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Update rewrites a request's span and approval state and applies the
// matching transition delta to the owner's balance. Approved requests
// are immutable to non-admins (EditConflict); non-admins also cannot
// touch other users' requests.
func (vl *VacationLifecycle) Update(ctx context.Context, actor Actor, requestID int64, in VacationUpdateInput) (*VacationRequest, error) {
	existing, err := vl.store.GetVacation(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load vacation request: %w", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Kind: "vacation request", ID: requestID}
	}
	if !actor.CanAccess(existing.UserID) {
		return nil, &ForbiddenError{ActorID: actor.ID, Action: "update this vacation request"}
	}
	if !actor.Admin && existing.Approved {
		return nil, ErrEditConflict
	}

	// Only admins can flip the approval flag.
	approved := in.Approved
	if !actor.Admin {
		approved = false
	}

	startDay := existing.StartDay
	if !in.StartDay.IsZero() {
		startDay = in.StartDay
	}
	stopDay := existing.StopDay
	if !in.StopDay.IsZero() {
		stopDay = in.StopDay
	}

	approvedBefore := existing.Approved
	daysBefore := existing.Days

	days := 0
	if approved {
		days = Consumption(startDay, stopDay)
	}

	updated := *existing
	updated.StartDay = startDay
	updated.StopDay = stopDay
	updated.Days = days
	updated.Approved = approved

	// Transition delta; later rules override earlier ones so that
	// un-approval wins over the span-change adjustment.
	delta := decimal.Zero
	if approvedBefore && days != daysBefore {
		delta = decimal.NewFromInt(int64(days - daysBefore)).Neg()
	}
	if !approvedBefore && approved {
		delta = decimal.NewFromInt(int64(days)).Neg()
	}
	if approvedBefore && !approved {
		delta = decimal.NewFromInt(int64(Consumption(startDay, stopDay)))
	}

	err = vl.store.WithTx(ctx, func(tx Store) error {
		if err := tx.UpdateVacation(ctx, updated); err != nil {
			return fmt.Errorf("update vacation request: %w", err)
		}
		ledger := NewLedger(tx, vl.log)
		return ledger.Apply(ctx, existing.UserID, delta)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a request and credits its stored days back to the
// owner, approved or not. Deleting a missing request is a no-effect
// success.
func (vl *VacationLifecycle) Delete(ctx context.Context, actor Actor, requestID int64) error {
	existing, err := vl.store.GetVacation(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load vacation request: %w", err)
	}
	if existing == nil {
		return nil // already gone, idempotent
	}
	if !actor.CanAccess(existing.UserID) {
		return &ForbiddenError{ActorID: actor.ID, Action: "delete this vacation request"}
	}

	return vl.store.WithTx(ctx, func(tx Store) error {
		ledger := NewLedger(tx, vl.log)
		if err := ledger.Apply(ctx, existing.UserID, decimal.NewFromInt(int64(existing.Days))); err != nil {
			return err
		}
		if err := tx.DeleteVacation(ctx, requestID); err != nil {
			return fmt.Errorf("delete vacation request: %w", err)
		}
		return nil
	})
}

// Get returns a request. Non-admins may only read their own.
func (vl *VacationLifecycle) Get(ctx context.Context, actor Actor, requestID int64) (*VacationRequest, error) {
	request, err := vl.store.GetVacation(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load vacation request: %w", err)
	}
	if request == nil {
		return nil, &NotFoundError{Kind: "vacation request", ID: requestID}
	}
	if !actor.CanAccess(request.UserID) {
		return nil, &ForbiddenError{ActorID: actor.ID, Action: "read this vacation request"}
	}
	return request, nil
}

// List returns requests visible to the actor.
func (vl *VacationLifecycle) List(ctx context.Context, actor Actor) ([]VacationRequest, error) {
	scope := actor.ID
	if actor.Admin {
		scope = 0
	}
	requests, err := vl.store.ListVacations(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list vacation requests: %w", err)
	}
	return requests, nil
}
