package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/shrdlite/planner/internal/worldmodel"
	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/result"
	"github.com/shrdlite/planner/server/serr"
)

func scenarioToModel(s dao.Scenario) ScenarioModel {
	m := ScenarioModel{
		ID:       s.ID.String(),
		Name:     s.Name,
		Arm:      s.World.Arm,
		Holding:  s.World.Holding,
		Stacks:   s.World.Stacks,
		Created:  s.Created.Format(time.RFC3339),
		Modified: s.Modified.Format(time.RFC3339),
	}
	for id, obj := range s.World.Objects {
		m.Objects = append(m.Objects, ObjectModel{
			ID:    id,
			Form:  string(obj.Form),
			Size:  string(obj.Size),
			Color: obj.Color,
		})
	}
	return m
}

func modelToWorld(m ScenarioModel) worldmodel.Snapshot {
	snap := worldmodel.Snapshot{
		Arm:     m.Arm,
		Holding: m.Holding,
		Stacks:  m.Stacks,
		Objects: make(worldmodel.Objects, len(m.Objects)),
	}
	for _, o := range m.Objects {
		snap.Objects[o.ID] = worldmodel.Object{
			Form:  worldmodel.Form(o.Form),
			Size:  worldmodel.Size(o.Size),
			Color: o.Color,
		}
	}
	return snap
}

// HTTPCreateScenario returns a HandlerFunc that creates a new scenario from
// the request body.
func (api API) HTTPCreateScenario() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateScenario)
}

func (api API) epCreateScenario(req *http.Request) result.Result {
	var m ScenarioModel
	if err := parseJSON(req, &m); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	s, err := api.Backend.CreateScenario(req.Context(), m.Name, modelToWorld(m))
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(scenarioToModel(s), "scenario '%s' created", s.Name)
}

// HTTPGetScenario returns a HandlerFunc that retrieves the scenario named in
// the request's id URL parameter.
func (api API) HTTPGetScenario() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetScenario)
}

func (api API) epGetScenario(req *http.Request) result.Result {
	id := requireIDParam(req)

	s, err := api.Backend.GetScenario(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(scenarioToModel(s), "got scenario '%s'", s.Name)
}

// HTTPGetAllScenarios returns a HandlerFunc that retrieves every scenario in
// persistence.
func (api API) HTTPGetAllScenarios() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllScenarios)
}

func (api API) epGetAllScenarios(req *http.Request) result.Result {
	all, err := api.Backend.GetAllScenarios(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	models := make([]ScenarioModel, len(all))
	for i, s := range all {
		models[i] = scenarioToModel(s)
	}
	return result.OK(models, "got all scenarios")
}

// HTTPUpdateScenario returns a HandlerFunc that replaces the scenario named
// in the request's id URL parameter with the request body.
func (api API) HTTPUpdateScenario() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateScenario)
}

func (api API) epUpdateScenario(req *http.Request) result.Result {
	id := requireIDParam(req)

	var m ScenarioModel
	if err := parseJSON(req, &m); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	s, err := api.Backend.UpdateScenario(req.Context(), id.String(), m.Name, modelToWorld(m))
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(scenarioToModel(s), "scenario '%s' updated", s.Name)
}

// HTTPDeleteScenario returns a HandlerFunc that deletes the scenario named
// in the request's id URL parameter.
func (api API) HTTPDeleteScenario() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteScenario)
}

func (api API) epDeleteScenario(req *http.Request) result.Result {
	id := requireIDParam(req)

	s, err := api.Backend.DeleteScenario(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.NoContent("scenario '%s' deleted", s.Name)
}
