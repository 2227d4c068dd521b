package tunas

import (
	"context"
	"errors"

	"github.com/google/uuid"

	shrdlite "github.com/shrdlite/planner"
	"github.com/shrdlite/planner/internal/surface"
	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/serr"
)

// Plan parses command with the surface grammar, plans it against the world
// of the scenario identified by scenarioID, logs the attempt (success or
// failure) to the plan audit log, and returns the resulting plan.
//
// The returned error, if non-nil, will return true for errors.Is(err,
// serr.ErrNotFound) if the scenario does not exist, and errors.Is(err,
// serr.ErrBadArgument) if command cannot be parsed. Any other error
// indicates the planner itself could not find a solution or the DB failed;
// these are still recorded in the audit log before being returned.
func (svc Service) Plan(ctx context.Context, scenarioID, command string) (shrdlite.Plan, error) {
	uuidID, err := uuid.Parse(scenarioID)
	if err != nil {
		return shrdlite.Plan{}, serr.New("scenario ID is not valid", serr.ErrBadArgument)
	}

	scen, err := svc.DB.Scenarios().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return shrdlite.Plan{}, serr.ErrNotFound
		}
		return shrdlite.Plan{}, serr.WrapDB("could not get scenario", err)
	}

	cmd, err := surface.Parse(command)
	if err != nil {
		return shrdlite.Plan{}, serr.New("could not parse command", err, serr.ErrBadArgument)
	}

	engine, err := shrdlite.New(scen.World, 0)
	if err != nil {
		return shrdlite.Plan{}, serr.New("scenario world is not valid", err)
	}

	plan, planErr := engine.Plan(cmd)

	entry := dao.PlanLogEntry{
		ScenarioID: uuidID,
		Command:    command,
	}
	if planErr != nil {
		entry.Error = planErr.Error()
	} else {
		entry.Actions = plan.Actions
		entry.Cost = plan.Cost
	}
	if _, logErr := svc.DB.Plans().Create(ctx, entry); logErr != nil {
		// logging the attempt is best-effort; a failure here should not mask
		// the planning outcome itself.
		_ = logErr
	}

	if planErr != nil {
		return shrdlite.Plan{}, planErr
	}
	return plan, nil
}

// GetPlanLog returns the plan audit log entries for the given scenario.
func (svc Service) GetPlanLog(ctx context.Context, scenarioID string) ([]dao.PlanLogEntry, error) {
	uuidID, err := uuid.Parse(scenarioID)
	if err != nil {
		return nil, serr.New("scenario ID is not valid", serr.ErrBadArgument)
	}

	entries, err := svc.DB.Plans().GetAllByScenario(ctx, uuidID, nil, nil)
	if err != nil {
		return nil, serr.WrapDB("could not get plan log", err)
	}
	return entries, nil
}
