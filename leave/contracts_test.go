package leave_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leavedesk/leave"
	"github.com/warp/leavedesk/leave/store"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func createUser(t *testing.T, mem *store.Memory) int64 {
	t.Helper()
	id, err := mem.CreateUser(context.Background(), leave.User{
		Email:     "employee@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	return id
}

func balanceOf(t *testing.T, mem *store.Memory, userID int64) decimal.Decimal {
	t.Helper()
	u, err := mem.GetUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.AvailableDays
}

func assertBalance(t *testing.T, mem *store.Memory, userID int64, want string) {
	t.Helper()
	got := balanceOf(t, mem, userID)
	expected := decimal.RequireFromString(want)
	assert.Truef(t, got.Equal(expected), "balance = %s, want %s", got, want)
}

var admin = leave.Actor{ID: 1000, Admin: true}

func TestContractCreateCreditsEntitlement(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	userID := createUser(t, mem)

	contract, err := cl.Create(context.Background(), admin, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 26,
	})
	require.NoError(t, err)
	require.NotZero(t, contract.ID)

	assertBalance(t, mem, userID, "26")
}

func TestContractCreateDerivesStopDay(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	userID := createUser(t, mem)

	contract, err := cl.Create(context.Background(), admin, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-15"),
		Duration:        6,
		FreeDaysPerYear: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, day("2026-07-14"), contract.StopDay)
}

func TestContractCreateForbiddenForNonAdmin(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	userID := createUser(t, mem)

	_, err := cl.Create(context.Background(), leave.Actor{ID: userID}, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 20,
	})
	assert.ErrorIs(t, err, leave.ErrForbidden)
	assertBalance(t, mem, userID, "0")
}

func TestContractUpdateSwapsEntitlement(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	userID := createUser(t, mem)

	contract, err := cl.Create(context.Background(), admin, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        6,
		FreeDaysPerYear: 20,
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "10")

	// Extending 6mo/20 to 12mo/26 replaces the 10-day credit with 26.
	_, err = cl.Update(context.Background(), admin, contract.ID, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 26,
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "26")
}

func TestContractUpdateTargetsPayloadOwner(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	ctx := context.Background()

	ownerA := createUser(t, mem)
	ownerB, err := mem.CreateUser(ctx, leave.User{Email: "b@example.com"})
	require.NoError(t, err)

	contract, err := cl.Create(ctx, admin, leave.ContractInput{
		UserID:          ownerA,
		StartDay:        day("2026-01-01"),
		Duration:        6,
		FreeDaysPerYear: 20,
	})
	require.NoError(t, err)
	assertBalance(t, mem, ownerA, "10")

	// Reassigning the contract applies both the debit and the credit
	// to the new owner. The old owner keeps the original credit.
	_, err = cl.Update(ctx, admin, contract.ID, leave.ContractInput{
		UserID:          ownerB,
		StartDay:        day("2026-01-01"),
		Duration:        6,
		FreeDaysPerYear: 20,
	})
	require.NoError(t, err)
	assertBalance(t, mem, ownerA, "10")
	assertBalance(t, mem, ownerB, "0")
}

func TestContractUpdateMissingIsNotFound(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())

	_, err := cl.Update(context.Background(), admin, 9999, leave.ContractInput{
		UserID:          1,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 20,
	})
	assert.True(t, leave.IsNotFound(err))
}

func TestContractDeleteDebitsRemainingEntitlement(t *testing.T) {
	mem := store.NewMemory()
	log := testLogger()
	cl := leave.NewContractLifecycle(mem, log)
	vl := leave.NewVacationLifecycle(mem, log)
	ctx := context.Background()
	userID := createUser(t, mem)

	contract, err := cl.Create(ctx, admin, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 26,
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "26")

	// Admin-filed requests are pre-approved and consume immediately.
	_, err = vl.Create(ctx, admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "22")

	// Deleting the contract removes only what is still unconsumed:
	// 26 - 4 used = 22 debited, landing back on zero.
	require.NoError(t, cl.Delete(ctx, admin, contract.ID))
	assertBalance(t, mem, userID, "0")
}

func TestContractCreateDeleteNetsZero(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	ctx := context.Background()
	userID := createUser(t, mem)

	// Fractional entitlement must also cancel exactly.
	contract, err := cl.Create(ctx, admin, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        7,
		FreeDaysPerYear: 26,
	})
	require.NoError(t, err)
	require.NoError(t, cl.Delete(ctx, admin, contract.ID))
	assertBalance(t, mem, userID, "0")
}

func TestContractDeleteIdempotent(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	userID := createUser(t, mem)

	require.NoError(t, cl.Delete(context.Background(), admin, 9999))
	assertBalance(t, mem, userID, "0")
}

func TestContractListScoping(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	ctx := context.Background()

	ownerA := createUser(t, mem)
	ownerB, err := mem.CreateUser(ctx, leave.User{Email: "b@example.com"})
	require.NoError(t, err)

	for _, owner := range []int64{ownerA, ownerA, ownerB} {
		_, err := cl.Create(ctx, admin, leave.ContractInput{
			UserID:          owner,
			StartDay:        day("2026-01-01"),
			Duration:        12,
			FreeDaysPerYear: 20,
		})
		require.NoError(t, err)
	}

	own, err := cl.List(ctx, leave.Actor{ID: ownerA})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := cl.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestContractGetForbiddenForForeignOwner(t *testing.T) {
	mem := store.NewMemory()
	cl := leave.NewContractLifecycle(mem, testLogger())
	ctx := context.Background()

	owner := createUser(t, mem)
	contract, err := cl.Create(ctx, admin, leave.ContractInput{
		UserID:          owner,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 20,
	})
	require.NoError(t, err)

	_, err = cl.Get(ctx, leave.Actor{ID: owner + 1}, contract.ID)
	assert.ErrorIs(t, err, leave.ErrForbidden)
}
