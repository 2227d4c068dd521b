package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/result"
	"github.com/shrdlite/planner/server/serr"
)

func planLogToModel(e dao.PlanLogEntry) PlanLogModel {
	return PlanLogModel{
		ID:      e.ID.String(),
		Command: e.Command,
		Actions: e.Actions,
		Cost:    e.Cost,
		Error:   e.Error,
		Created: e.Created.Format(time.RFC3339),
	}
}

// HTTPCreatePlan returns a HandlerFunc that plans a command against the
// scenario named in the request's id URL parameter.
func (api API) HTTPCreatePlan() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreatePlan)
}

func (api API) epCreatePlan(req *http.Request) result.Result {
	id := requireIDParam(req)

	var body PlanRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Command == "" {
		return result.BadRequest("command: property is empty or missing from request", "empty command")
	}

	plan, err := api.Backend.Plan(req.Context(), id.String(), body.Command)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.BadRequest(err.Error(), "could not find a plan: %s", err.Error())
	}

	resp := PlanResponse{
		Actions:    plan.Actions,
		Utterances: plan.Utterances,
		Summary:    plan.Summary,
		Cost:       plan.Cost,
	}
	return result.Created(resp, "planned command %q against scenario %s", body.Command, id)
}

// HTTPGetPlanLog returns a HandlerFunc that retrieves the plan audit log for
// the scenario named in the request's id URL parameter.
func (api API) HTTPGetPlanLog() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetPlanLog)
}

func (api API) epGetPlanLog(req *http.Request) result.Result {
	id := requireIDParam(req)

	entries, err := api.Backend.GetPlanLog(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	models := make([]PlanLogModel, len(entries))
	for i, e := range entries {
		models[i] = planLogToModel(e)
	}
	return result.OK(models, "got plan log for scenario %s", id)
}
