package api

import (
	"net/http"

	"github.com/shrdlite/planner/internal/version"
	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/middle"
	"github.com/shrdlite/planner/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.Current

	userStr := "unauthed client"
	if loggedIn {
		op := req.Context().Value(middle.AuthUser).(dao.Operator)
		userStr = "operator '" + op.Username + "'"
	}
	return result.OK(resp, "%s got API info", userStr)
}
