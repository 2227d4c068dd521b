// Package token issues and validates the bearer JWTs the shrdlite server
// uses to authenticate its single operator. The signing key for a given
// token is derived from the server secret plus the operator's password hash
// and last-logout time, so changing the password or logging out (which
// bumps LastLogoutTime) invalidates every token issued before that moment
// without needing a revocation list.
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shrdlite/planner/server/dao"
)

const issuer = "shrdlited"

// Get extracts the bearer token from req's Authorization header.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])
	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return tok, nil
}

func signKey(secret []byte, op dao.Operator) []byte {
	var key []byte
	key = append(key, secret...)
	key = append(key, []byte(op.PasswordHash)...)
	key = append(key, []byte(fmt.Sprintf("%d", op.LastLogoutTime.Unix()))...)
	return key
}

// Generate issues a bearer token for op, valid for one hour, signed with a
// key derived from secret and op's current credentials.
func Generate(secret []byte, op dao.Operator) (string, error) {
	claims := &jwt.MapClaims{
		"iss": issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": op.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(signKey(secret, op))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokStr, nil
}

// Validate parses and verifies tok, looking up the subject operator via
// repo to recover the signing key, and returns that operator on success.
func Validate(ctx context.Context, tok string, secret []byte, repo dao.OperatorRepository) (dao.Operator, error) {
	var op dao.Operator

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		op, err = repo.GetByID(ctx, id)
		if err != nil {
			if err == dao.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		return signKey(secret, op), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.Operator{}, err
	}
	return op, nil
}
