/*
handlers.go - HTTP API handlers for the leave management service

PURPOSE:
  Exposes the leave engine via REST API. Handles HTTP request/response,
  JSON serialization and validation, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/login                Exchange credentials for a token
    GET    /api/me                   Authenticated user's own record

  Employees (admin only):
    GET    /api/employees            List employees
    POST   /api/employees            Create employee
    GET    /api/employees/{id}       Get employee
    PUT    /api/employees/{id}       Update employee
    DELETE /api/employees/{id}       Delete employee

  Contracts:
    GET    /api/contracts            List visible contracts
    POST   /api/contracts            Create contract (admin)
    GET    /api/contracts/{id}       Get contract
    PUT    /api/contracts/{id}       Update contract (admin)
    DELETE /api/contracts/{id}       Delete contract (admin)

  Vacation requests:
    GET    /api/vacations            List visible requests
    POST   /api/vacations            File request
    GET    /api/vacations/{id}       Get request
    PUT    /api/vacations/{id}       Update request
    DELETE /api/vacations/{id}       Cancel request

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (go-playground/validator)
  3. Call domain logic (lifecycles, ledger)
  4. Serialize response
  5. Map domain errors to HTTP status

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing or invalid token
  - 403: Forbidden (non-admin or foreign resource)
  - 404: Resource not found
  - 422: Approved request edited by its owner
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator"
	"github.com/sirupsen/logrus"

	"github.com/warp/leavedesk/auth"
	"github.com/warp/leavedesk/leave"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     leave.TxStore
	Contracts *leave.ContractLifecycle
	Vacations *leave.VacationLifecycle
	Tokens    *auth.TokenManager
	Log       *logrus.Logger

	validate *validator.Validate
}

// NewHandler creates a handler over the given store.
func NewHandler(store leave.TxStore, tokens *auth.TokenManager, log *logrus.Logger) *Handler {
	return &Handler{
		Store:     store,
		Contracts: leave.NewContractLifecycle(store, log),
		Vacations: leave.NewVacationLifecycle(store, log),
		Tokens:    tokens,
		Log:       log,
		validate:  validator.New(),
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login exchanges email/password for a signed token.
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user", err)
		return
	}
	if user == nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, err := h.Tokens.Issue(*user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserDTO(*user)})
}

// Me returns the authenticated user's own record, including the
// current availableDays balance.
// GET /api/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.Store.GetUser(r.Context(), actor.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates an employee with a hashed password.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	dayOfBirth, err := parseDay(req.DayOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day_of_birth", err)
		return
	}

	existing, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check email", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Email already in use", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	user := leave.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DayOfBirth:   dayOfBirth,
		PasswordHash: hash,
		Admin:        req.Admin,
	}

	id, err := h.Store.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	user.ID = id

	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// GetEmployee returns a single employee. Admin-or-self: non-admins may
// only read their own record.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !actor.CanAccess(id) {
		writeError(w, http.StatusForbidden, "Forbidden", nil)
		return
	}

	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// UpdateEmployee rewrites an employee's profile. The availableDays
// balance is never writable through this endpoint; only the ledger
// moves it.
// PUT /api/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	dayOfBirth, err := parseDay(req.DayOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day_of_birth", err)
		return
	}

	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.DayOfBirth = dayOfBirth
	user.Admin = req.Admin
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.Store.UpdateUser(r.Context(), *user); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// DeleteEmployee removes an employee. Contracts and vacation requests
// go with it via foreign keys.
// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteUser(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// ListContracts returns contracts visible to the caller.
// GET /api/contracts
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	contracts, err := h.Contracts.List(r.Context(), actor)
	if err != nil {
		h.writeDomainError(w, "Failed to list contracts", err)
		return
	}

	dtos := make([]ContractDTO, len(contracts))
	for i, c := range contracts {
		dtos[i] = toContractDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateContract creates a contract and credits its entitlement.
// POST /api/contracts
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	in, ok := h.contractInput(w, r)
	if !ok {
		return
	}

	// The owner must exist before any entitlement is credited. Only
	// checked for admins; everyone else is rejected by the lifecycle
	// without learning whether the user exists.
	if actor.Admin {
		owner, err := h.Store.GetUser(r.Context(), in.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load user", err)
			return
		}
		if owner == nil {
			writeError(w, http.StatusNotFound, "User not found", nil)
			return
		}
	}

	contract, err := h.Contracts.Create(r.Context(), actor, in)
	if err != nil {
		h.writeDomainError(w, "Failed to create contract", err)
		return
	}
	writeJSON(w, http.StatusCreated, toContractDTO(*contract))
}

// GetContract returns a single contract.
// GET /api/contracts/{id}
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contract, err := h.Contracts.Get(r.Context(), actor, id)
	if err != nil {
		h.writeDomainError(w, "Failed to get contract", err)
		return
	}
	writeJSON(w, http.StatusOK, toContractDTO(*contract))
}

// UpdateContract rewrites a contract and swaps its entitlement.
// PUT /api/contracts/{id}
func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	in, ok := h.contractInput(w, r)
	if !ok {
		return
	}

	contract, err := h.Contracts.Update(r.Context(), actor, id, in)
	if err != nil {
		h.writeDomainError(w, "Failed to update contract", err)
		return
	}
	writeJSON(w, http.StatusOK, toContractDTO(*contract))
}

// DeleteContract removes a contract and debits the unconsumed
// entitlement.
// DELETE /api/contracts/{id}
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Contracts.Delete(r.Context(), actor, id); err != nil {
		h.writeDomainError(w, "Failed to delete contract", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) contractInput(w http.ResponseWriter, r *http.Request) (leave.ContractInput, bool) {
	var req ContractRequest
	if !h.decodeAndValidate(w, r, &req) {
		return leave.ContractInput{}, false
	}

	startDay, err := parseDay(req.StartDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_day", err)
		return leave.ContractInput{}, false
	}

	var stopDay time.Time
	if req.StopDay != "" {
		stopDay, err = parseDay(req.StopDay)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid stop_day", err)
			return leave.ContractInput{}, false
		}
	}

	return leave.ContractInput{
		UserID:          req.UserID,
		StartDay:        startDay,
		StopDay:         stopDay,
		Duration:        req.Duration,
		FreeDaysPerYear: req.FreeDaysPerYear,
	}, true
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// ListVacations returns vacation requests visible to the caller.
// GET /api/vacations
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	requests, err := h.Vacations.List(r.Context(), actor)
	if err != nil {
		h.writeDomainError(w, "Failed to list vacation requests", err)
		return
	}

	dtos := make([]VacationDTO, len(requests))
	for i, v := range requests {
		dtos[i] = toVacationDTO(v)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateVacation files a vacation request against the latest contract.
// POST /api/vacations
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateVacationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	startDay, err := parseDay(req.StartDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_day", err)
		return
	}
	stopDay, err := parseDay(req.StopDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid stop_day", err)
		return
	}

	request, err := h.Vacations.Create(r.Context(), actor, leave.VacationInput{
		UserID:   req.UserID,
		StartDay: startDay,
		StopDay:  stopDay,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to create vacation request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toVacationDTO(*request))
}

// GetVacation returns a single vacation request.
// GET /api/vacations/{id}
func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	request, err := h.Vacations.Get(r.Context(), actor, id)
	if err != nil {
		h.writeDomainError(w, "Failed to get vacation request", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*request))
}

// UpdateVacation rewrites a vacation request's span and approval.
// PUT /api/vacations/{id}
func (h *Handler) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateVacationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	in := leave.VacationUpdateInput{Approved: req.Approved}
	var err error
	if req.StartDay != "" {
		in.StartDay, err = parseDay(req.StartDay)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_day", err)
			return
		}
	}
	if req.StopDay != "" {
		in.StopDay, err = parseDay(req.StopDay)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid stop_day", err)
			return
		}
	}

	request, err := h.Vacations.Update(r.Context(), actor, id, in)
	if err != nil {
		h.writeDomainError(w, "Failed to update vacation request", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*request))
}

// DeleteVacation cancels a request and credits its days back.
// DELETE /api/vacations/{id}
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Vacations.Delete(r.Context(), actor, id); err != nil {
		h.writeDomainError(w, "Failed to delete vacation request", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// writeDomainError maps engine errors to HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, leave.ErrForbidden):
		writeError(w, http.StatusForbidden, message, err)
	case errors.Is(err, leave.ErrEditConflict):
		writeError(w, http.StatusUnprocessableEntity, message, err)
	default:
		h.Log.WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func parseDay(s string) (time.Time, error) {
	day, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	return day, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
