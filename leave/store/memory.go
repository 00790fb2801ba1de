// Package store provides an in-memory leave.Store implementation for
// tests and development.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/leavedesk/leave"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

// Memory implements leave.TxStore with maps. Balance adjustments are
// exact decimal additions under a single mutex, so concurrent Apply
// calls never lose updates.
type Memory struct {
	mu        sync.RWMutex
	users     map[int64]leave.User
	contracts map[int64]leave.Contract
	vacations map[int64]leave.VacationRequest
	nextID    int64
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		users:     make(map[int64]leave.User),
		contracts: make(map[int64]leave.Contract),
		vacations: make(map[int64]leave.VacationRequest),
	}
}

func (m *Memory) allocateID() int64 {
	m.nextID++
	return m.nextID
}

// =============================================================================
// USERS
// =============================================================================

func (m *Memory) CreateUser(_ context.Context, u leave.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = m.allocateID()
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (*leave.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*leave.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]leave.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]leave.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (m *Memory) UpdateUser(_ context.Context, u leave.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[u.ID]
	if !ok {
		return nil
	}
	u.CreatedAt = existing.CreatedAt
	m.users[u.ID] = u
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, id)
	return nil
}

func (m *Memory) CountUsers(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// AdjustAvailableDays adds delta to the stored counter under the lock.
// The read and write are one critical section; there is no window for
// a concurrent adjustment to be lost.
func (m *Memory) AdjustAvailableDays(_ context.Context, userID int64, delta decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return false, nil
	}
	u.AvailableDays = u.AvailableDays.Add(delta)
	m.users[userID] = u
	return true, nil
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (m *Memory) CreateContract(_ context.Context, c leave.Contract) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.allocateID()
	c.CreatedAt = time.Now().UTC()
	m.contracts[c.ID] = c
	return c.ID, nil
}

func (m *Memory) GetContract(_ context.Context, id int64) (*leave.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.contracts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) ListContracts(_ context.Context, userID int64) ([]leave.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var contracts []leave.Contract
	for _, c := range m.contracts {
		if userID == 0 || c.UserID == userID {
			contracts = append(contracts, c)
		}
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].ID > contracts[j].ID })
	return contracts, nil
}

func (m *Memory) UpdateContract(_ context.Context, c leave.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.contracts[c.ID]
	if !ok {
		return nil
	}
	c.CreatedAt = existing.CreatedAt
	m.contracts[c.ID] = c
	return nil
}

func (m *Memory) DeleteContract(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contracts, id)
	return nil
}

func (m *Memory) LatestContract(_ context.Context, userID int64) (*leave.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *leave.Contract
	for _, c := range m.contracts {
		c := c
		if c.UserID != userID {
			continue
		}
		if latest == nil || c.ID > latest.ID {
			latest = &c
		}
	}
	return latest, nil
}

// =============================================================================
// VACATION REQUESTS
// =============================================================================

func (m *Memory) CreateVacation(_ context.Context, v leave.VacationRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v.ID = m.allocateID()
	v.CreatedAt = time.Now().UTC()
	m.vacations[v.ID] = v
	return v.ID, nil
}

func (m *Memory) GetVacation(_ context.Context, id int64) (*leave.VacationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vacations[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *Memory) ListVacations(_ context.Context, userID int64) ([]leave.VacationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var requests []leave.VacationRequest
	for _, v := range m.vacations {
		if userID == 0 || v.UserID == userID {
			requests = append(requests, v)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return requests, nil
}

func (m *Memory) UpdateVacation(_ context.Context, v leave.VacationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.vacations[v.ID]
	if !ok {
		return nil
	}
	v.CreatedAt = existing.CreatedAt
	m.vacations[v.ID] = v
	return nil
}

func (m *Memory) DeleteVacation(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.vacations, id)
	return nil
}

func (m *Memory) SumVacationDays(_ context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sum := 0
	for _, v := range m.vacations {
		if v.UserID == userID {
			sum += v.Days
		}
	}
	return sum, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx runs fn against the store directly. The memory store offers no
// rollback; it exists for tests where each step either succeeds or the
// test fails anyway.
func (m *Memory) WithTx(_ context.Context, fn func(leave.Store) error) error {
	return fn(m)
}

var _ leave.TxStore = (*Memory)(nil)
