package leave_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/warp/leavedesk/leave"
	"github.com/warp/leavedesk/leave/store"
)

func TestLedgerApply(t *testing.T) {
	mem := store.NewMemory()
	ledger := leave.NewLedger(mem, testLogger())
	userID := createUser(t, mem)

	require.NoError(t, ledger.Apply(context.Background(), userID, decimal.NewFromInt(10)))
	require.NoError(t, ledger.Apply(context.Background(), userID, decimal.NewFromInt(-4)))
	assertBalance(t, mem, userID, "6")
}

func TestLedgerMissingUserIsNoop(t *testing.T) {
	mem := store.NewMemory()
	ledger := leave.NewLedger(mem, testLogger())

	// A vanished balance target is logged, never an error.
	require.NoError(t, ledger.Apply(context.Background(), 9999, decimal.NewFromInt(5)))
}

func TestLedgerZeroDeltaSkipped(t *testing.T) {
	mem := store.NewMemory()
	ledger := leave.NewLedger(mem, testLogger())
	userID := createUser(t, mem)

	require.NoError(t, ledger.Apply(context.Background(), userID, decimal.Zero))
	assertBalance(t, mem, userID, "0")
}

func TestLedgerConcurrentAppliesAllLand(t *testing.T) {
	mem := store.NewMemory()
	ledger := leave.NewLedger(mem, testLogger())
	userID := createUser(t, mem)

	// Two interleaved writers: if either side read-modified-wrote, some
	// deltas would be lost and the final sum would drift.
	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = ledger.Apply(context.Background(), userID, decimal.NewFromInt(-4))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = ledger.Apply(context.Background(), userID, decimal.NewFromInt(2))
		}
	}()
	wg.Wait()

	assertBalance(t, mem, userID, "-400") // 200*(-4) + 200*2
}

func TestLedgerFractionalDeltasCancel(t *testing.T) {
	mem := store.NewMemory()
	ledger := leave.NewLedger(mem, testLogger())
	userID := createUser(t, mem)

	quantum := leave.Entitlement(7, 26)
	require.NoError(t, ledger.Apply(context.Background(), userID, quantum))
	require.NoError(t, ledger.Apply(context.Background(), userID, quantum.Neg()))
	assertBalance(t, mem, userID, "0")
}
