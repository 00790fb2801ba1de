package leave_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leavedesk/leave"
	"github.com/warp/leavedesk/leave/store"
)

// vacationEnv seeds a user with one 12mo/26 contract, leaving a balance
// of 26 days to consume.
func vacationEnv(t *testing.T) (*store.Memory, *leave.VacationLifecycle, int64) {
	t.Helper()
	mem := store.NewMemory()
	log := testLogger()
	cl := leave.NewContractLifecycle(mem, log)
	vl := leave.NewVacationLifecycle(mem, log)

	userID := createUser(t, mem)
	_, err := cl.Create(context.Background(), admin, leave.ContractInput{
		UserID:          userID,
		StartDay:        day("2026-01-01"),
		Duration:        12,
		FreeDaysPerYear: 26,
	})
	require.NoError(t, err)
	return mem, vl, userID
}

func TestVacationCreateSelfAssigned(t *testing.T) {
	mem, vl, userID := vacationEnv(t)

	// Non-admin callers are always self-assigned; the payload's user id
	// is ignored. The request starts unapproved with zero recorded days.
	request, err := vl.Create(context.Background(), leave.Actor{ID: userID}, leave.VacationInput{
		UserID:   userID + 500,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, request.UserID)
	assert.False(t, request.Approved)
	assert.Equal(t, 0, request.Days)
	assertBalance(t, mem, userID, "26")
}

func TestVacationCreateByAdminPreApproved(t *testing.T) {
	mem, vl, userID := vacationEnv(t)

	request, err := vl.Create(context.Background(), admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assert.True(t, request.Approved)
	assert.Equal(t, 4, request.Days)
	assertBalance(t, mem, userID, "22")
}

func TestVacationCreateWithoutContract(t *testing.T) {
	mem := store.NewMemory()
	vl := leave.NewVacationLifecycle(mem, testLogger())
	userID := createUser(t, mem)

	_, err := vl.Create(context.Background(), leave.Actor{ID: userID}, leave.VacationInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	assert.True(t, leave.IsNotFound(err))
}

func TestVacationApprovalDebitsBalance(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, leave.Actor{ID: userID}, leave.VacationInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "26")

	updated, err := vl.Update(ctx, admin, request.ID, leave.VacationUpdateInput{
		Approved: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Approved)
	assert.Equal(t, 4, updated.Days)
	assertBalance(t, mem, userID, "22")
}

func TestVacationApprovedSpanChangeAdjustsDelta(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "22")

	// Stretching an approved 4-day request to 6 days debits only the
	// 2-day difference.
	updated, err := vl.Update(ctx, admin, request.ID, leave.VacationUpdateInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-07"),
		Approved: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Days)
	assertBalance(t, mem, userID, "20")
}

func TestVacationUnapprovalCreditsRecomputedSpan(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "22")

	// Un-approving credits the span recomputed from the effective
	// dates, not the stored days. With shifted dates the two differ:
	// stored 4, recomputed span 6, so the balance lands on 28.
	updated, err := vl.Update(ctx, admin, request.ID, leave.VacationUpdateInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-07"),
		Approved: false,
	})
	require.NoError(t, err)
	assert.False(t, updated.Approved)
	assert.Equal(t, 0, updated.Days)
	assertBalance(t, mem, userID, "28")
}

func TestVacationUnapprovalSameSpanRestoresBalance(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)

	// Approve then un-approve with untouched dates nets to zero.
	_, err = vl.Update(ctx, admin, request.ID, leave.VacationUpdateInput{
		Approved: false,
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "26")
}

func TestVacationEditConflict(t *testing.T) {
	_, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)

	_, err = vl.Update(ctx, leave.Actor{ID: userID}, request.ID, leave.VacationUpdateInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-10"),
	})
	assert.ErrorIs(t, err, leave.ErrEditConflict)
}

func TestVacationUpdateForeignForbidden(t *testing.T) {
	_, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, leave.Actor{ID: userID}, leave.VacationInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)

	_, err = vl.Update(ctx, leave.Actor{ID: userID + 1}, request.ID, leave.VacationUpdateInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	assert.ErrorIs(t, err, leave.ErrForbidden)
}

func TestVacationNonAdminCannotApprove(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, leave.Actor{ID: userID}, leave.VacationInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)

	updated, err := vl.Update(ctx, leave.Actor{ID: userID}, request.ID, leave.VacationUpdateInput{
		Approved: true,
	})
	require.NoError(t, err)
	assert.False(t, updated.Approved)
	assertBalance(t, mem, userID, "26")
}

func TestVacationDeleteCreditsStoredDays(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, admin, leave.VacationInput{
		UserID:   userID,
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)
	assertBalance(t, mem, userID, "22")

	require.NoError(t, vl.Delete(ctx, admin, request.ID))
	assertBalance(t, mem, userID, "26")

	gone, err := mem.GetVacation(ctx, request.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestVacationDeleteUnapprovedLeavesBalance(t *testing.T) {
	mem, vl, userID := vacationEnv(t)
	ctx := context.Background()

	request, err := vl.Create(ctx, leave.Actor{ID: userID}, leave.VacationInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)

	require.NoError(t, vl.Delete(ctx, leave.Actor{ID: userID}, request.ID))
	assertBalance(t, mem, userID, "26")
}

func TestVacationDeleteIdempotent(t *testing.T) {
	mem, vl, userID := vacationEnv(t)

	require.NoError(t, vl.Delete(context.Background(), admin, 9999))
	assertBalance(t, mem, userID, "26")
}

func TestVacationListScoping(t *testing.T) {
	_, vl, userID := vacationEnv(t)
	ctx := context.Background()

	_, err := vl.Create(ctx, leave.Actor{ID: userID}, leave.VacationInput{
		StartDay: day("2026-07-01"),
		StopDay:  day("2026-07-05"),
	})
	require.NoError(t, err)

	own, err := vl.List(ctx, leave.Actor{ID: userID})
	require.NoError(t, err)
	assert.Len(t, own, 1)

	foreign, err := vl.List(ctx, leave.Actor{ID: userID + 1})
	require.NoError(t, err)
	assert.Empty(t, foreign)

	all, err := vl.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
