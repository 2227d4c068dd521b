package tunas

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrdlite/planner/server/dao"
	"github.com/shrdlite/planner/server/serr"
)

// Login verifies the provided username and password against the operator
// credential in persistence and returns that operator if they match.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the credentials do not
// match the operator or if the password is incorrect, it will match
// serr.ErrBadCredentials. If the error occured due to an unexpected problem
// with the DB, it will match serr.ErrDB.
func (svc Service) Login(ctx context.Context, username string, password string) (dao.Operator, error) {
	op, err := svc.DB.Operators().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Operator{}, serr.ErrBadCredentials
		}
		return dao.Operator{}, serr.WrapDB("", err)
	}

	bcryptHash, err := base64.StdEncoding.DecodeString(op.PasswordHash)
	if err != nil {
		return dao.Operator{}, err
	}

	err = bcrypt.CompareHashAndPassword(bcryptHash, []byte(password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return dao.Operator{}, serr.ErrBadCredentials
		}
		return dao.Operator{}, serr.WrapDB("", err)
	}

	return op, nil
}

// Logout marks the operator with the given ID as having logged out,
// invalidating any token issued before this moment.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the operator doesn't
// exist, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB.
func (svc Service) Logout(ctx context.Context, who uuid.UUID) (dao.Operator, error) {
	existing, err := svc.DB.Operators().GetByID(ctx, who)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Operator{}, serr.ErrNotFound
		}
		return dao.Operator{}, serr.WrapDB("could not retrieve operator", err)
	}

	existing.LastLogoutTime = time.Now()

	updated, err := svc.DB.Operators().Update(ctx, existing.ID, existing)
	if err != nil {
		return dao.Operator{}, serr.WrapDB("could not update operator", err)
	}

	return updated, nil
}
