package api

import (
	"net/http"

	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/middle"
	"github.com/shrdlite/planner/server/result"
	"github.com/shrdlite/planner/server/token"
)

// HTTPCreateToken returns a HandlerFunc that creates a new token for the
// operator the client is currently logged in as.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in operator of the client making the request.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	op := req.Context().Value(middle.AuthUser).(dao.Operator)

	tok, err := token.Generate(api.Secret, op)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:      tok,
		OperatorID: op.ID.String(),
	}
	return result.Created(resp, "operator '"+op.Username+"' successfully created new token")
}
