// Package inmem provides in-memory dao.Store implementations, suitable for
// the CLI planner and for tests that don't need persistence across runs.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shrdlite/planner/server/dao"
)

type store struct {
	scenarios *scenarioRepo
	plans     *planLogRepo
	operators *operatorRepo
}

func NewDatastore() dao.Store {
	return &store{
		scenarios: newScenarioRepo(),
		plans:     newPlanLogRepo(),
		operators: newOperatorRepo(),
	}
}

func (s *store) Scenarios() dao.ScenarioRepository { return s.scenarios }
func (s *store) Plans() dao.PlanLogRepository      { return s.plans }
func (s *store) Operators() dao.OperatorRepository { return s.operators }
func (s *store) Close() error                      { return nil }

type scenarioRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]dao.Scenario
}

func newScenarioRepo() *scenarioRepo {
	return &scenarioRepo{data: make(map[uuid.UUID]dao.Scenario)}
}

func (r *scenarioRepo) Create(ctx context.Context, s dao.Scenario) (dao.Scenario, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Scenario{}, err
	}
	now := time.Now()
	s.ID = id
	s.Created = now
	s.Modified = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[id] = s
	return s, nil
}

func (r *scenarioRepo) GetByID(ctx context.Context, id uuid.UUID) (dao.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[id]
	if !ok {
		return dao.Scenario{}, dao.ErrNotFound
	}
	return s, nil
}

func (r *scenarioRepo) GetAll(ctx context.Context) ([]dao.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]dao.Scenario, 0, len(r.data))
	for _, s := range r.data {
		all = append(all, s)
	}
	return all, nil
}

func (r *scenarioRepo) Update(ctx context.Context, id uuid.UUID, s dao.Scenario) (dao.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[id]
	if !ok {
		return dao.Scenario{}, dao.ErrNotFound
	}
	s.ID = id
	s.Created = existing.Created
	s.Modified = time.Now()
	r.data[id] = s
	return s, nil
}

func (r *scenarioRepo) Delete(ctx context.Context, id uuid.UUID) (dao.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return dao.Scenario{}, dao.ErrNotFound
	}
	delete(r.data, id)
	return s, nil
}

func (r *scenarioRepo) Close() error { return nil }

type planLogRepo struct {
	mu      sync.RWMutex
	entries []dao.PlanLogEntry
}

func newPlanLogRepo() *planLogRepo {
	return &planLogRepo{}
}

func (r *planLogRepo) Create(ctx context.Context, entry dao.PlanLogEntry) (dao.PlanLogEntry, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.PlanLogEntry{}, err
	}
	entry.ID = id
	entry.Created = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *planLogRepo) GetAllByScenario(ctx context.Context, scenarioID uuid.UUID, notBefore, notAfter *time.Time) ([]dao.PlanLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []dao.PlanLogEntry
	for _, e := range r.entries {
		if e.ScenarioID != scenarioID {
			continue
		}
		if notBefore != nil && e.Created.Before(*notBefore) {
			continue
		}
		if notAfter != nil && e.Created.After(*notAfter) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *planLogRepo) Close() error { return nil }

type operatorRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]dao.Operator
}

func newOperatorRepo() *operatorRepo {
	return &operatorRepo{data: make(map[uuid.UUID]dao.Operator)}
}

func (r *operatorRepo) Create(ctx context.Context, op dao.Operator) (dao.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Username == op.Username {
			return dao.Operator{}, dao.ErrConstraintViolation
		}
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Operator{}, err
	}
	op.ID = id
	r.data[id] = op
	return op, nil
}

func (r *operatorRepo) GetByID(ctx context.Context, id uuid.UUID) (dao.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.data[id]
	if !ok {
		return dao.Operator{}, dao.ErrNotFound
	}
	return op, nil
}

func (r *operatorRepo) GetByUsername(ctx context.Context, username string) (dao.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, op := range r.data {
		if op.Username == username {
			return op, nil
		}
	}
	return dao.Operator{}, dao.ErrNotFound
}

func (r *operatorRepo) Update(ctx context.Context, id uuid.UUID, op dao.Operator) (dao.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return dao.Operator{}, dao.ErrNotFound
	}
	op.ID = id
	r.data[id] = op
	return op, nil
}

func (r *operatorRepo) Close() error { return nil }
