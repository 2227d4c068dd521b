package tunas

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shrdlite/planner/internal/worldmodel"
	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/serr"
)

// CreateScenario persists a new named world snapshot. Returns the created
// scenario as it exists after creation.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If world is invalid, it will
// match serr.ErrBadArgument. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (svc Service) CreateScenario(ctx context.Context, name string, world worldmodel.Snapshot) (dao.Scenario, error) {
	if name == "" {
		return dao.Scenario{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}
	if err := world.Validate(); err != nil {
		return dao.Scenario{}, serr.New("world is not valid", err, serr.ErrBadArgument)
	}

	s, err := svc.DB.Scenarios().Create(ctx, dao.Scenario{Name: name, World: world})
	if err != nil {
		return dao.Scenario{}, serr.WrapDB("could not create scenario", err)
	}
	return s, nil
}

// GetScenario returns the scenario with the given ID.
func (svc Service) GetScenario(ctx context.Context, id string) (dao.Scenario, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Scenario{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	s, err := svc.DB.Scenarios().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Scenario{}, serr.ErrNotFound
		}
		return dao.Scenario{}, serr.WrapDB("could not get scenario", err)
	}
	return s, nil
}

// GetAllScenarios returns every scenario currently in persistence.
func (svc Service) GetAllScenarios(ctx context.Context) ([]dao.Scenario, error) {
	all, err := svc.DB.Scenarios().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return all, nil
}

// UpdateScenario replaces the name and world of the scenario with the given
// ID. Returns the updated scenario.
func (svc Service) UpdateScenario(ctx context.Context, id, name string, world worldmodel.Snapshot) (dao.Scenario, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Scenario{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}
	if name == "" {
		return dao.Scenario{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}
	if err := world.Validate(); err != nil {
		return dao.Scenario{}, serr.New("world is not valid", err, serr.ErrBadArgument)
	}

	s, err := svc.DB.Scenarios().Update(ctx, uuidID, dao.Scenario{Name: name, World: world})
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Scenario{}, serr.ErrNotFound
		}
		return dao.Scenario{}, serr.WrapDB("could not update scenario", err)
	}
	return s, nil
}

// DeleteScenario deletes the scenario with the given ID, returning it as it
// existed just before deletion.
func (svc Service) DeleteScenario(ctx context.Context, id string) (dao.Scenario, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Scenario{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	s, err := svc.DB.Scenarios().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Scenario{}, serr.ErrNotFound
		}
		return dao.Scenario{}, serr.WrapDB("could not delete scenario", err)
	}
	return s, nil
}
