/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  Day-granularity fields travel as "YYYY-MM-DD" strings. Balances
  travel as decimal strings so fractional entitlements survive
  serialization untouched.

VALIDATION:
  Request types carry go-playground/validator tags; handlers run
  validate.Struct before touching domain logic.

SEE ALSO:
  - handlers.go: uses these types
*/
package api

import (
	"time"

	"github.com/warp/leavedesk/leave"
)

const dayFormat = "2006-01-02"

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest is the credentials payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// UserDTO represents an employee in API responses. The password hash
// never leaves the server.
type UserDTO struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DayOfBirth    string `json:"day_of_birth"`
	Admin         bool   `json:"is_admin"`
	AvailableDays string `json:"available_days"`
	CreatedAt     string `json:"created_at,omitempty"`
}

func toUserDTO(u leave.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		DayOfBirth:    u.DayOfBirth.Format(dayFormat),
		Admin:         u.Admin,
		AvailableDays: u.AvailableDays.String(),
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	DayOfBirth string `json:"day_of_birth" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Admin      bool   `json:"is_admin"`
}

// UpdateEmployeeRequest is the request to update an employee. An empty
// password keeps the stored one.
type UpdateEmployeeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	DayOfBirth string `json:"day_of_birth" validate:"required"`
	Password   string `json:"password" validate:"omitempty,min=8"`
	Admin      bool   `json:"is_admin"`
}

// =============================================================================
// CONTRACTS
// =============================================================================

// ContractDTO represents a contract in API responses.
type ContractDTO struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	StartDay        string `json:"start_day"`
	StopDay         string `json:"stop_day"`
	Duration        int    `json:"duration"`
	FreeDaysPerYear int    `json:"free_days_per_year"`
	CreatedAt       string `json:"created_at,omitempty"`
}

func toContractDTO(c leave.Contract) ContractDTO {
	return ContractDTO{
		ID:              c.ID,
		UserID:          c.UserID,
		StartDay:        c.StartDay.Format(dayFormat),
		StopDay:         c.StopDay.Format(dayFormat),
		Duration:        c.Duration,
		FreeDaysPerYear: c.FreeDaysPerYear,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}

// ContractRequest is the request to create or update a contract. An
// empty stop_day is derived from start_day plus duration.
type ContractRequest struct {
	UserID          int64  `json:"user_id" validate:"required"`
	StartDay        string `json:"start_day" validate:"required"`
	StopDay         string `json:"stop_day"`
	Duration        int    `json:"duration" validate:"required,min=1"`
	FreeDaysPerYear int    `json:"free_days_per_year" validate:"required,oneof=20 26"`
}

// =============================================================================
// VACATION REQUESTS
// =============================================================================

// VacationDTO represents a vacation request in API responses.
type VacationDTO struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	ContractID int64  `json:"contract_id"`
	StartDay   string `json:"start_day"`
	StopDay    string `json:"stop_day"`
	Days       int    `json:"days"`
	Approved   bool   `json:"is_approved"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func toVacationDTO(v leave.VacationRequest) VacationDTO {
	return VacationDTO{
		ID:         v.ID,
		UserID:     v.UserID,
		ContractID: v.ContractID,
		StartDay:   v.StartDay.Format(dayFormat),
		StopDay:    v.StopDay.Format(dayFormat),
		Days:       v.Days,
		Approved:   v.Approved,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
}

// CreateVacationRequest files a new vacation request. user_id is only
// honored for admin callers; everyone else is self-assigned.
type CreateVacationRequest struct {
	UserID   int64  `json:"user_id"`
	StartDay string `json:"start_day" validate:"required"`
	StopDay  string `json:"stop_day" validate:"required"`
}

// UpdateVacationRequest rewrites a request's span and approval state.
// Omitted dates keep the stored values.
type UpdateVacationRequest struct {
	StartDay string `json:"start_day"`
	StopDay  string `json:"stop_day"`
	Approved bool   `json:"is_approved"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
