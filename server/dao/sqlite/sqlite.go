// Package sqlite provides sqlite-backed dao.Store implementations for the
// shrdlite planning server: one on-disk database holding the scenario table,
// the plan audit log, and the single operator credential row.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/shrdlite/planner/internal/worldmodel"
	"github.com/shrdlite/planner/server/dao"
)

type store struct {
	dbFilename string
	db         *sql.DB

	scenarios *ScenariosDB
	plans     *PlanLogDB
	operators *OperatorsDB
}

// NewDatastore opens (creating if necessary) the sqlite database rooted at
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "shrdlite.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)
	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.scenarios = &ScenariosDB{db: st.db}
	if err := st.scenarios.init(); err != nil {
		return nil, err
	}

	st.plans = &PlanLogDB{db: st.db}
	if err := st.plans.init(); err != nil {
		return nil, err
	}

	st.operators = &OperatorsDB{db: st.db}
	if err := st.operators.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Scenarios() dao.ScenarioRepository { return s.scenarios }
func (s *store) Plans() dao.PlanLogRepository      { return s.plans }
func (s *store) Operators() dao.OperatorRepository { return s.operators }

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

// convertToDB_UUID converts a uuid.UUID to storage DB format on disk.
func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

// convertToDB_Time converts a time.Time to storage DB format on disk.
func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

// convertToDB_Snapshot REZI-encodes a worldmodel.Snapshot for storage in a
// TEXT column, the same way the original server stored its encoded game
// states: base64 over the raw REZI bytes.
func convertToDB_Snapshot(snap worldmodel.Snapshot) string {
	data := rezi.EncBinary(snap)
	return base64.StdEncoding.EncodeToString(data)
}

// convertToDB_StringSlice REZI-encodes a []string for storage in a TEXT
// column.
func convertToDB_StringSlice(ss []string) string {
	data := rezi.EncBinary(ss)
	return base64.StdEncoding.EncodeToString(data)
}

// convertFromDB_UUID converts a storage DB format value to a uuid.UUID and
// stores it at the address pointed to by target. If there is a problem with
// decoding, the returned error wraps dao.ErrDecodingFailure and target is
// left unmodified.
func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %w", dao.ErrDecodingFailure, err)
	}
	*target = u
	return nil
}

// convertFromDB_Time converts a storage DB format value to a time.Time and
// stores it at the address pointed to by target.
func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

// convertFromDB_Snapshot reverses convertToDB_Snapshot.
func convertFromDB_Snapshot(s string, target *worldmodel.Snapshot) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %w", dao.ErrDecodingFailure, err)
	}
	var snap worldmodel.Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return fmt.Errorf("%w: REZI decode: %w", dao.ErrDecodingFailure, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: REZI decoded byte count mismatch; only consumed %d/%d bytes", dao.ErrDecodingFailure, n, len(data))
	}
	*target = snap
	return nil
}

// convertFromDB_StringSlice reverses convertToDB_StringSlice.
func convertFromDB_StringSlice(s string, target *[]string) error {
	if s == "" {
		*target = nil
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %w", dao.ErrDecodingFailure, err)
	}
	var ss []string
	n, err := rezi.DecBinary(data, &ss)
	if err != nil {
		return fmt.Errorf("%w: REZI decode: %w", dao.ErrDecodingFailure, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: REZI decoded byte count mismatch; only consumed %d/%d bytes", dao.ErrDecodingFailure, n, len(data))
	}
	*target = ss
	return nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

// ScenariosDB is the sqlite-backed dao.ScenarioRepository.
type ScenariosDB struct {
	db *sql.DB
}

func (r *ScenariosDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT NOT NULL PRIMARY KEY,
			name TEXT NOT NULL,
			world TEXT NOT NULL,
			created INTEGER NOT NULL,
			modified INTEGER NOT NULL
		);
	`)
	return wrapDBError(err)
}

func (r *ScenariosDB) Create(ctx context.Context, s dao.Scenario) (dao.Scenario, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Scenario{}, err
	}
	now := time.Now()
	s.ID = id
	s.Created = now
	s.Modified = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, world, created, modified) VALUES (?, ?, ?, ?, ?);
	`, convertToDB_UUID(s.ID), s.Name, convertToDB_Snapshot(s.World), convertToDB_Time(s.Created), convertToDB_Time(s.Modified))
	if err != nil {
		return dao.Scenario{}, wrapDBError(err)
	}
	return s, nil
}

func (r *ScenariosDB) scan(row *sql.Row) (dao.Scenario, error) {
	var idStr, world string
	var created, modified int64
	var s dao.Scenario

	err := row.Scan(&idStr, &s.Name, &world, &created, &modified)
	if err != nil {
		return dao.Scenario{}, wrapDBError(err)
	}
	if err := convertFromDB_UUID(idStr, &s.ID); err != nil {
		return dao.Scenario{}, err
	}
	if err := convertFromDB_Snapshot(world, &s.World); err != nil {
		return dao.Scenario{}, err
	}
	if err := convertFromDB_Time(created, &s.Created); err != nil {
		return dao.Scenario{}, err
	}
	if err := convertFromDB_Time(modified, &s.Modified); err != nil {
		return dao.Scenario{}, err
	}
	return s, nil
}

func (r *ScenariosDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Scenario, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, world, created, modified FROM scenarios WHERE id = ?;
	`, convertToDB_UUID(id))
	return r.scan(row)
}

func (r *ScenariosDB) GetAll(ctx context.Context) ([]dao.Scenario, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, world, created, modified FROM scenarios ORDER BY created;
	`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Scenario
	for rows.Next() {
		var idStr, world string
		var created, modified int64
		var s dao.Scenario

		if err := rows.Scan(&idStr, &s.Name, &world, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}
		if err := convertFromDB_UUID(idStr, &s.ID); err != nil {
			return nil, err
		}
		if err := convertFromDB_Snapshot(world, &s.World); err != nil {
			return nil, err
		}
		if err := convertFromDB_Time(created, &s.Created); err != nil {
			return nil, err
		}
		if err := convertFromDB_Time(modified, &s.Modified); err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, rows.Err()
}

func (r *ScenariosDB) Update(ctx context.Context, id uuid.UUID, s dao.Scenario) (dao.Scenario, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return dao.Scenario{}, err
	}
	s.ID = id
	s.Created = existing.Created
	s.Modified = time.Now()

	res, err := r.db.ExecContext(ctx, `
		UPDATE scenarios SET name = ?, world = ?, modified = ? WHERE id = ?;
	`, s.Name, convertToDB_Snapshot(s.World), convertToDB_Time(s.Modified), convertToDB_UUID(id))
	if err != nil {
		return dao.Scenario{}, wrapDBError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return dao.Scenario{}, wrapDBError(err)
	} else if n == 0 {
		return dao.Scenario{}, dao.ErrNotFound
	}
	return s, nil
}

func (r *ScenariosDB) Delete(ctx context.Context, id uuid.UUID) (dao.Scenario, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return dao.Scenario{}, err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?;`, convertToDB_UUID(id))
	if err != nil {
		return dao.Scenario{}, wrapDBError(err)
	}
	return s, nil
}

func (r *ScenariosDB) Close() error { return nil }

// PlanLogDB is the sqlite-backed dao.PlanLogRepository.
type PlanLogDB struct {
	db *sql.DB
}

func (r *PlanLogDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS plan_log (
			id TEXT NOT NULL PRIMARY KEY,
			scenario_id TEXT NOT NULL,
			command TEXT NOT NULL,
			actions TEXT NOT NULL,
			cost REAL NOT NULL,
			error TEXT NOT NULL,
			created INTEGER NOT NULL
		);
	`)
	return wrapDBError(err)
}

func (r *PlanLogDB) Create(ctx context.Context, entry dao.PlanLogEntry) (dao.PlanLogEntry, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.PlanLogEntry{}, err
	}
	entry.ID = id
	entry.Created = time.Now()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plan_log (id, scenario_id, command, actions, cost, error, created) VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		convertToDB_UUID(entry.ID),
		convertToDB_UUID(entry.ScenarioID),
		entry.Command,
		convertToDB_StringSlice(entry.Actions),
		entry.Cost,
		entry.Error,
		convertToDB_Time(entry.Created),
	)
	if err != nil {
		return dao.PlanLogEntry{}, wrapDBError(err)
	}
	return entry, nil
}

func (r *PlanLogDB) GetAllByScenario(ctx context.Context, scenarioID uuid.UUID, notBefore, notAfter *time.Time) ([]dao.PlanLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, scenario_id, command, actions, cost, error, created
		FROM plan_log WHERE scenario_id = ? ORDER BY created;
	`, convertToDB_UUID(scenarioID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var out []dao.PlanLogEntry
	for rows.Next() {
		var idStr, scenIDStr, actions string
		var e dao.PlanLogEntry
		var created int64

		if err := rows.Scan(&idStr, &scenIDStr, &e.Command, &actions, &e.Cost, &e.Error, &created); err != nil {
			return nil, wrapDBError(err)
		}
		if err := convertFromDB_UUID(idStr, &e.ID); err != nil {
			return nil, err
		}
		if err := convertFromDB_UUID(scenIDStr, &e.ScenarioID); err != nil {
			return nil, err
		}
		if err := convertFromDB_StringSlice(actions, &e.Actions); err != nil {
			return nil, err
		}
		if err := convertFromDB_Time(created, &e.Created); err != nil {
			return nil, err
		}

		if notBefore != nil && e.Created.Before(*notBefore) {
			continue
		}
		if notAfter != nil && e.Created.After(*notAfter) {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PlanLogDB) Close() error { return nil }

// OperatorsDB is the sqlite-backed dao.OperatorRepository.
type OperatorsDB struct {
	db *sql.DB
}

func (r *OperatorsDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS operators (
			id TEXT NOT NULL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			last_logout_time INTEGER NOT NULL
		);
	`)
	return wrapDBError(err)
}

func (r *OperatorsDB) Create(ctx context.Context, op dao.Operator) (dao.Operator, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Operator{}, err
	}
	op.ID = id

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO operators (id, username, password_hash, last_logout_time) VALUES (?, ?, ?, ?);
	`, convertToDB_UUID(op.ID), op.Username, op.PasswordHash, convertToDB_Time(op.LastLogoutTime))
	if err != nil {
		return dao.Operator{}, wrapDBError(err)
	}
	return op, nil
}

func (r *OperatorsDB) scanRow(row *sql.Row) (dao.Operator, error) {
	var idStr string
	var lastLogout int64
	var op dao.Operator

	err := row.Scan(&idStr, &op.Username, &op.PasswordHash, &lastLogout)
	if err != nil {
		return dao.Operator{}, wrapDBError(err)
	}
	if err := convertFromDB_UUID(idStr, &op.ID); err != nil {
		return dao.Operator{}, err
	}
	if err := convertFromDB_Time(lastLogout, &op.LastLogoutTime); err != nil {
		return dao.Operator{}, err
	}
	return op, nil
}

func (r *OperatorsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Operator, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, last_logout_time FROM operators WHERE id = ?;
	`, convertToDB_UUID(id))
	return r.scanRow(row)
}

func (r *OperatorsDB) GetByUsername(ctx context.Context, username string) (dao.Operator, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, last_logout_time FROM operators WHERE username = ?;
	`, username)
	return r.scanRow(row)
}

func (r *OperatorsDB) Update(ctx context.Context, id uuid.UUID, op dao.Operator) (dao.Operator, error) {
	op.ID = id
	res, err := r.db.ExecContext(ctx, `
		UPDATE operators SET username = ?, password_hash = ?, last_logout_time = ? WHERE id = ?;
	`, op.Username, op.PasswordHash, convertToDB_Time(op.LastLogoutTime), convertToDB_UUID(id))
	if err != nil {
		return dao.Operator{}, wrapDBError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return dao.Operator{}, wrapDBError(err)
	} else if n == 0 {
		return dao.Operator{}, dao.ErrNotFound
	}
	return op, nil
}

func (r *OperatorsDB) Close() error { return nil }
