// Package dao provides data access objects for use in the shrdlite planning
// server: scenario storage, a plan audit log, and the single operator
// credential the server authenticates requests against.
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shrdlite/planner/internal/worldmodel"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories the server needs.
type Store interface {
	Scenarios() ScenarioRepository
	Plans() PlanLogRepository
	Operators() OperatorRepository
	Close() error
}

// Scenario is a named, persisted world snapshot an operator can plan
// against repeatedly without resending it on every request.
type Scenario struct {
	ID       uuid.UUID
	Name     string
	World    worldmodel.Snapshot
	Created  time.Time
	Modified time.Time
}

type ScenarioRepository interface {
	Create(ctx context.Context, s Scenario) (Scenario, error)
	GetByID(ctx context.Context, id uuid.UUID) (Scenario, error)
	GetAll(ctx context.Context) ([]Scenario, error)
	Update(ctx context.Context, id uuid.UUID, s Scenario) (Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) (Scenario, error)
	Close() error
}

// PlanLogEntry records one planning request and its outcome, for audit and
// debugging purposes.
type PlanLogEntry struct {
	ID         uuid.UUID
	ScenarioID uuid.UUID
	Command    string
	Actions    []string
	Cost       float64
	Error      string // empty on success
	Created    time.Time
}

type PlanLogRepository interface {
	Create(ctx context.Context, entry PlanLogEntry) (PlanLogEntry, error)
	GetAllByScenario(ctx context.Context, scenarioID uuid.UUID, notBefore, notAfter *time.Time) ([]PlanLogEntry, error)
	Close() error
}

// Operator is the single administrative credential the server authenticates
// API requests against. There is exactly one row of this in persistence;
// unlike the multi-tenant user model this is adapted from, a shrdlite server
// has one operator, not an open registration of accounts.
type Operator struct {
	ID             uuid.UUID
	Username       string
	PasswordHash   string // base64-encoded bcrypt hash
	LastLogoutTime time.Time
}

type OperatorRepository interface {
	Create(ctx context.Context, op Operator) (Operator, error)
	GetByID(ctx context.Context, id uuid.UUID) (Operator, error)
	GetByUsername(ctx context.Context, username string) (Operator, error)
	Update(ctx context.Context, id uuid.UUID, op Operator) (Operator, error)
	Close() error
}

// WrapDB is a convenience for repositories to report an unexpected storage
// error while still letting callers errors.Is against ErrNotFound etc. when
// applicable.
func WrapDB(context string, err error) error {
	if context == "" {
		return fmt.Errorf("%w", err)
	}
	return fmt.Errorf("%s: %w", context, err)
}
