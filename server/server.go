// Package server ties together persistence, the service layer, and the HTTP
// API into a single listener: the shrdlite planning server. It exposes
// scenario storage and a plan audit log behind a single-operator JWT
// credential.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrdlite/planner/server/api"
	"github.com/shrdlite/planner/server/dao"
	mw "github.com/shrdlite/planner/server/middle"
	"github.com/shrdlite/planner/server/tunas"
)

// Server is a shrdlite planning server ready to be handed to an http.Server
// (or served directly, since Server itself is an http.Handler).
type Server struct {
	router http.Handler
	db     dao.Store
}

// New builds a Server from cfg, connecting to the configured persistence
// layer and, if BootstrapUsername/BootstrapPassword are set and no operator
// yet exists, creating the initial operator credential.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	if cfg.BootstrapUsername != "" && cfg.BootstrapPassword != "" {
		if err := bootstrapOperator(db, cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
			return nil, fmt.Errorf("bootstrap operator: %w", err)
		}
	}

	backend := tunas.Service{DB: db}
	a := api.API{
		Backend:     backend,
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
	}

	s := &Server{db: db}
	s.router = buildRouter(a, db, cfg)
	return s, nil
}

func bootstrapOperator(db dao.Store, username, password string) error {
	_, err := db.Operators().GetByUsername(context.Background(), username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dao.ErrNotFound) {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = db.Operators().Create(context.Background(), dao.Operator{
		Username:     username,
		PasswordHash: base64.StdEncoding.EncodeToString(passHash),
	})
	return err
}

func buildRouter(a api.API, db dao.Store, cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	defaultOperator := dao.Operator{}
	requireAuth := mw.RequireAuth(db.Operators(), cfg.TokenSecret, cfg.UnauthDelay(), defaultOperator)
	optionalAuth := mw.OptionalAuth(db.Operators(), cfg.TokenSecret, cfg.UnauthDelay(), defaultOperator)

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(optionalAuth).Get("/info", a.HTTPGetInfo())

		r.Post("/login", a.HTTPCreateLogin())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Delete("/login", a.HTTPDeleteLogin())
			r.Post("/token", a.HTTPCreateToken())

			r.Route("/scenarios", func(r chi.Router) {
				r.Get("/", a.HTTPGetAllScenarios())
				r.Post("/", a.HTTPCreateScenario())

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", a.HTTPGetScenario())
					r.Put("/", a.HTTPUpdateScenario())
					r.Delete("/", a.HTTPDeleteScenario())

					r.Post("/plans", a.HTTPCreatePlan())
					r.Get("/plans", a.HTTPGetPlanLog())
				})
			})
		})
	})

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// Close releases the persistence layer backing the server.
func (s *Server) Close() error {
	return s.db.Close()
}
