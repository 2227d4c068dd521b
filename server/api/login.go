package api

import (
	"errors"
	"net/http"

	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/middle"
	"github.com/shrdlite/planner/server/result"
	"github.com/shrdlite/planner/server/serr"
	"github.com/shrdlite/planner/server/token"
)

// HTTPCreateLogin returns a HandlerFunc that uses the API to log in the
// operator with a username and password and return an auth token.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	loginData := LoginRequest{}
	err := parseJSON(req, &loginData)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if loginData.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}
	if loginData.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	op, err := api.Backend.Login(req.Context(), loginData.Username, loginData.Password)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "operator '%s': %s", loginData.Username, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret, op)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:      tok,
		OperatorID: op.ID.String(),
	}
	return result.Created(resp, "operator '"+op.Username+"' successfully logged in")
}

// HTTPDeleteLogin returns a HandlerFunc that logs out the operator currently
// authenticated on the request.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in operator of the client making the request.
func (api API) HTTPDeleteLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteLogin)
}

func (api API) epDeleteLogin(req *http.Request) result.Result {
	op := req.Context().Value(middle.AuthUser).(dao.Operator)

	loggedOut, err := api.Backend.Logout(req.Context(), op.ID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not log out operator: " + err.Error())
	}

	return result.NoContent("operator '%s' successfully logged out", loggedOut.Username)
}
