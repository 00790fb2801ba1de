/*
Package sqlite provides the SQLite-backed implementation of the leave
storage interfaces.

PURPOSE:
  Implements leave.Store and leave.TxStore over database/sql. The same
  patterns apply to PostgreSQL; only minor SQL dialect differences.

BALANCE COLUMN:
  users.available_days is mutated exclusively through
  AdjustAvailableDays, a single relative UPDATE:

      UPDATE users SET available_days = available_days + ?

  The increment is computed inside the database, never in application
  memory, so concurrent adjustments for the same user cannot lose
  updates. Fractional entitlements are stored as-is.

KEY TABLES:
  users:          employees, including the available_days counter
  contracts:      employment contracts (entitlement source)
  vacation_days:  vacation requests (consumption source)

CONCURRENCY:
  A sync.RWMutex serializes writers on top of SQLite's own locking.
  WAL mode keeps readers unblocked. With PostgreSQL the database-level
  concurrency control would replace the mutex.

MIGRATION:
  Schema is auto-created on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - leave/store.go: interface definitions
  - leave/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/leavedesk/leave"
)

const dayFormat = "2006-01-02"

// Store implements leave.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: writers are serialized by the mutex anyway, and
	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		day_of_birth TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		available_days REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_day TEXT NOT NULL,
		stop_day TEXT NOT NULL,
		duration INTEGER NOT NULL,
		free_days_per_year INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Hot path: "most recent contract for user"
	CREATE INDEX IF NOT EXISTS idx_contracts_user_created
		ON contracts(user_id, created_at DESC, id DESC);

	CREATE TABLE IF NOT EXISTS vacation_days (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		contract_id INTEGER NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		start_day TEXT NOT NULL,
		stop_day TEXT NOT NULL,
		days INTEGER NOT NULL DEFAULT 0,
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	-- Used-days aggregation on contract delete
	CREATE INDEX IF NOT EXISTS idx_vacation_days_user
		ON vacation_days(user_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx. The unexported query
// helpers below take it so the plain store and the transactional view
// share one implementation.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// USERS
// =============================================================================

const userColumns = `id, email, first_name, last_name, day_of_birth,
	password_hash, is_admin, available_days, created_at`

func (s *Store) CreateUser(ctx context.Context, u leave.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createUser(ctx, s.db, u)
}

func createUser(ctx context.Context, db dbtx, u leave.User) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO users (email, first_name, last_name, day_of_birth,
		                   password_hash, is_admin, available_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.FirstName, u.LastName, u.DayOfBirth.Format(dayFormat),
		u.PasswordHash, u.Admin, u.AvailableDays.InexactFloat64(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetUser(ctx context.Context, id int64) (*leave.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getUser(ctx, s.db, id)
}

func getUser(ctx context.Context, db dbtx, id int64) (*leave.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*leave.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getUserByEmail(ctx, s.db, email)
}

func getUserByEmail(ctx context.Context, db dbtx, email string) (*leave.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context) ([]leave.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listUsers(ctx, s.db)
}

func listUsers(ctx context.Context, db dbtx) ([]leave.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []leave.User
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u leave.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateUser(ctx, s.db, u)
}

func updateUser(ctx context.Context, db dbtx, u leave.User) error {
	_, err := db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, day_of_birth = ?,
		    password_hash = ?, is_admin = ?
		WHERE id = ?`,
		u.Email, u.FirstName, u.LastName, u.DayOfBirth.Format(dayFormat),
		u.PasswordHash, u.Admin, u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteUser(ctx, s.db, id)
}

func deleteUser(ctx context.Context, db dbtx, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countUsers(ctx, s.db)
}

func countUsers(ctx context.Context, db dbtx) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// AdjustAvailableDays applies delta as a single relative UPDATE. The
// database computes the new value; application memory never holds a
// stale balance it could write back.
func (s *Store) AdjustAvailableDays(ctx context.Context, userID int64, delta decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return adjustAvailableDays(ctx, s.db, userID, delta)
}

func adjustAvailableDays(ctx context.Context, db dbtx, userID int64, delta decimal.Decimal) (bool, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE users SET available_days = available_days + ? WHERE id = ?`,
		delta.InexactFloat64(), userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to adjust available days: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// =============================================================================
// CONTRACTS
// =============================================================================

const contractColumns = `id, user_id, start_day, stop_day, duration,
	free_days_per_year, created_at`

func (s *Store) CreateContract(ctx context.Context, c leave.Contract) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createContract(ctx, s.db, c)
}

func createContract(ctx context.Context, db dbtx, c leave.Contract) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO contracts (user_id, start_day, stop_day, duration,
		                       free_days_per_year, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, c.StartDay.Format(dayFormat), c.StopDay.Format(dayFormat),
		c.Duration, c.FreeDaysPerYear, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create contract: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetContract(ctx context.Context, id int64) (*leave.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getContract(ctx, s.db, id)
}

func getContract(ctx context.Context, db dbtx, id int64) (*leave.Contract, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	return scanContract(row)
}

func (s *Store) ListContracts(ctx context.Context, userID int64) ([]leave.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listContracts(ctx, s.db, userID)
}

func listContracts(ctx context.Context, db dbtx, userID int64) ([]leave.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if userID != 0 {
		query = `SELECT ` + contractColumns + ` FROM contracts
			WHERE user_id = ? ORDER BY created_at DESC, id DESC`
		args = append(args, userID)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []leave.Contract
	for rows.Next() {
		c, err := scanContractFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (s *Store) UpdateContract(ctx context.Context, c leave.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateContract(ctx, s.db, c)
}

func updateContract(ctx context.Context, db dbtx, c leave.Contract) error {
	_, err := db.ExecContext(ctx, `
		UPDATE contracts
		SET user_id = ?, start_day = ?, stop_day = ?, duration = ?,
		    free_days_per_year = ?
		WHERE id = ?`,
		c.UserID, c.StartDay.Format(dayFormat), c.StopDay.Format(dayFormat),
		c.Duration, c.FreeDaysPerYear, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	return nil
}

func (s *Store) DeleteContract(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteContract(ctx, s.db, id)
}

func deleteContract(ctx context.Context, db dbtx, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}

func (s *Store) LatestContract(ctx context.Context, userID int64) (*leave.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return latestContract(ctx, s.db, userID)
}

func latestContract(ctx context.Context, db dbtx, userID int64) (*leave.Contract, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+contractColumns+` FROM contracts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID)
	return scanContract(row)
}

// =============================================================================
// VACATION REQUESTS
// =============================================================================

const vacationColumns = `id, user_id, contract_id, start_day, stop_day,
	days, is_approved, created_at`

func (s *Store) CreateVacation(ctx context.Context, v leave.VacationRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createVacation(ctx, s.db, v)
}

func createVacation(ctx context.Context, db dbtx, v leave.VacationRequest) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO vacation_days (user_id, contract_id, start_day, stop_day,
		                           days, is_approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.UserID, v.ContractID, v.StartDay.Format(dayFormat),
		v.StopDay.Format(dayFormat), v.Days, v.Approved,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create vacation request: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetVacation(ctx context.Context, id int64) (*leave.VacationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getVacation(ctx, s.db, id)
}

func getVacation(ctx context.Context, db dbtx, id int64) (*leave.VacationRequest, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+vacationColumns+` FROM vacation_days WHERE id = ?`, id)
	return scanVacation(row)
}

func (s *Store) ListVacations(ctx context.Context, userID int64) ([]leave.VacationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listVacations(ctx, s.db, userID)
}

func listVacations(ctx context.Context, db dbtx, userID int64) ([]leave.VacationRequest, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacation_days
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if userID != 0 {
		query = `SELECT ` + vacationColumns + ` FROM vacation_days
			WHERE user_id = ? ORDER BY created_at DESC, id DESC`
		args = append(args, userID)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.VacationRequest
	for rows.Next() {
		v, err := scanVacationFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, v)
	}
	return requests, rows.Err()
}

func (s *Store) UpdateVacation(ctx context.Context, v leave.VacationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateVacation(ctx, s.db, v)
}

func updateVacation(ctx context.Context, db dbtx, v leave.VacationRequest) error {
	_, err := db.ExecContext(ctx, `
		UPDATE vacation_days
		SET start_day = ?, stop_day = ?, days = ?, is_approved = ?
		WHERE id = ?`,
		v.StartDay.Format(dayFormat), v.StopDay.Format(dayFormat),
		v.Days, v.Approved, v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vacation request: %w", err)
	}
	return nil
}

func (s *Store) DeleteVacation(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteVacation(ctx, s.db, id)
}

func deleteVacation(ctx context.Context, db dbtx, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM vacation_days WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vacation request: %w", err)
	}
	return nil
}

func (s *Store) SumVacationDays(ctx context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sumVacationDays(ctx, s.db, userID)
}

func sumVacationDays(ctx context.Context, db dbtx, userID int64) (int, error) {
	// COALESCE: a user with no requests has used zero days.
	var sum int
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(days), 0) FROM vacation_days WHERE user_id = ?`,
		userID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum vacation days: %w", err)
	}
	return sum, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn within a database transaction. The store mutex is
// held for the whole transaction; the txView passed to fn calls the
// lock-free helpers directly to avoid self-deadlock.
func (s *Store) WithTx(ctx context.Context, fn func(leave.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txView{tx: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txView exposes the leave.Store surface bound to a single *sql.Tx.
type txView struct {
	tx *sql.Tx
}

func (v *txView) CreateUser(ctx context.Context, u leave.User) (int64, error) {
	return createUser(ctx, v.tx, u)
}

func (v *txView) GetUser(ctx context.Context, id int64) (*leave.User, error) {
	return getUser(ctx, v.tx, id)
}

func (v *txView) GetUserByEmail(ctx context.Context, email string) (*leave.User, error) {
	return getUserByEmail(ctx, v.tx, email)
}

func (v *txView) ListUsers(ctx context.Context) ([]leave.User, error) {
	return listUsers(ctx, v.tx)
}

func (v *txView) UpdateUser(ctx context.Context, u leave.User) error {
	return updateUser(ctx, v.tx, u)
}

func (v *txView) DeleteUser(ctx context.Context, id int64) error {
	return deleteUser(ctx, v.tx, id)
}

func (v *txView) CountUsers(ctx context.Context) (int, error) {
	return countUsers(ctx, v.tx)
}

func (v *txView) AdjustAvailableDays(ctx context.Context, userID int64, delta decimal.Decimal) (bool, error) {
	return adjustAvailableDays(ctx, v.tx, userID, delta)
}

func (v *txView) CreateContract(ctx context.Context, c leave.Contract) (int64, error) {
	return createContract(ctx, v.tx, c)
}

func (v *txView) GetContract(ctx context.Context, id int64) (*leave.Contract, error) {
	return getContract(ctx, v.tx, id)
}

func (v *txView) ListContracts(ctx context.Context, userID int64) ([]leave.Contract, error) {
	return listContracts(ctx, v.tx, userID)
}

func (v *txView) UpdateContract(ctx context.Context, c leave.Contract) error {
	return updateContract(ctx, v.tx, c)
}

func (v *txView) DeleteContract(ctx context.Context, id int64) error {
	return deleteContract(ctx, v.tx, id)
}

func (v *txView) LatestContract(ctx context.Context, userID int64) (*leave.Contract, error) {
	return latestContract(ctx, v.tx, userID)
}

func (v *txView) CreateVacation(ctx context.Context, vr leave.VacationRequest) (int64, error) {
	return createVacation(ctx, v.tx, vr)
}

func (v *txView) GetVacation(ctx context.Context, id int64) (*leave.VacationRequest, error) {
	return getVacation(ctx, v.tx, id)
}

func (v *txView) ListVacations(ctx context.Context, userID int64) ([]leave.VacationRequest, error) {
	return listVacations(ctx, v.tx, userID)
}

func (v *txView) UpdateVacation(ctx context.Context, vr leave.VacationRequest) error {
	return updateVacation(ctx, v.tx, vr)
}

func (v *txView) DeleteVacation(ctx context.Context, id int64) error {
	return deleteVacation(ctx, v.tx, id)
}

func (v *txView) SumVacationDays(ctx context.Context, userID int64) (int, error) {
	return sumVacationDays(ctx, v.tx, userID)
}

var (
	_ leave.TxStore = (*Store)(nil)
	_ leave.Store   = (*txView)(nil)
)

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserFrom(sc rowScanner) (leave.User, error) {
	var (
		u             leave.User
		dayOfBirth    string
		availableDays float64
		createdAt     string
	)
	err := sc.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &dayOfBirth,
		&u.PasswordHash, &u.Admin, &availableDays, &createdAt)
	if err != nil {
		return u, err
	}
	u.DayOfBirth, _ = time.Parse(dayFormat, dayOfBirth)
	u.AvailableDays = decimal.NewFromFloat(availableDays)
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return u, nil
}

func scanUser(row *sql.Row) (*leave.User, error) {
	u, err := scanUserFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func scanContractFrom(sc rowScanner) (leave.Contract, error) {
	var (
		c         leave.Contract
		startDay  string
		stopDay   string
		createdAt string
	)
	err := sc.Scan(&c.ID, &c.UserID, &startDay, &stopDay, &c.Duration,
		&c.FreeDaysPerYear, &createdAt)
	if err != nil {
		return c, err
	}
	c.StartDay, _ = time.Parse(dayFormat, startDay)
	c.StopDay, _ = time.Parse(dayFormat, stopDay)
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return c, nil
}

func scanContract(row *sql.Row) (*leave.Contract, error) {
	c, err := scanContractFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan contract: %w", err)
	}
	return &c, nil
}

func scanVacationFrom(sc rowScanner) (leave.VacationRequest, error) {
	var (
		v         leave.VacationRequest
		startDay  string
		stopDay   string
		createdAt string
	)
	err := sc.Scan(&v.ID, &v.UserID, &v.ContractID, &startDay, &stopDay,
		&v.Days, &v.Approved, &createdAt)
	if err != nil {
		return v, err
	}
	v.StartDay, _ = time.Parse(dayFormat, startDay)
	v.StopDay, _ = time.Parse(dayFormat, stopDay)
	v.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return v, nil
}

func scanVacation(row *sql.Row) (*leave.VacationRequest, error) {
	v, err := scanVacationFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vacation request: %w", err)
	}
	return &v, nil
}
