package platform

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/types"
)

// SQLiteStore implements types.Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL for concurrent reads under the HTTP server.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func ts(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTS(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

// ---------- users ----------

func (s *SQLiteStore) CreateUser(ctx context.Context, u *types.User) error {
	s.logger.Debug("sql", "op", "insert", "table", "users", "username", u.Username)

	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, username_lc, email, password_hash, role, account_status, rejection_reason, club_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, strings.ToLower(u.Username), u.Email, u.PasswordHash,
		string(u.Role), string(u.AccountStatus), u.RejectionReason, u.ClubID,
		ts(u.CreatedAt), ts(u.UpdatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return types.ErrUsernameTaken
	}
	return err
}

const userCols = `id, username, email, password_hash, role, account_status, rejection_reason, club_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*types.User, error) {
	var u types.User
	var role, status, createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &status,
		&u.RejectionReason, &u.ClubID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = identity.Role(role)
	u.AccountStatus = identity.AccountStatus(status)
	u.CreatedAt = parseTS(createdAt)
	u.UpdatedAt = parseTS(updatedAt)
	return &u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	s.logger.Debug("sql", "op", "select", "table", "users", "id", id)
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) FindUserByUsername(ctx context.Context, username string) (*types.User, error) {
	s.logger.Debug("sql", "op", "select", "table", "users", "username", username)
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE username_lc = ?`, strings.ToLower(username)))
}

func (s *SQLiteStore) ListUsersByStatus(ctx context.Context, status identity.AccountStatus) ([]*types.User, error) {
	s.logger.Debug("sql", "op", "select", "table", "users", "status", string(status))

	q := `SELECT ` + userCols + ` FROM users`
	args := []any{}
	if status != "" {
		q += ` WHERE account_status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SetAccountStatus(ctx context.Context, id string, status identity.AccountStatus, reason string) (*types.User, error) {
	s.logger.Debug("sql", "op", "update", "table", "users", "id", id, "status", string(status))

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET account_status = ?, rejection_reason = ?, updated_at = ? WHERE id = ?`,
		string(status), reason, ts(time.Now()), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, types.ErrNotFound
	}
	return s.GetUser(ctx, id)
}

// ---------- clubs ----------

func (s *SQLiteStore) CreateClub(ctx context.Context, c *types.Club) error {
	s.logger.Debug("sql", "op", "insert", "table", "clubs", "name", c.Name)

	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clubs (id, name, country, city, founded, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Country, c.City, c.Founded, ts(c.CreatedAt), ts(c.UpdatedAt))
	return err
}

func scanClub(row interface{ Scan(...any) error }) (*types.Club, error) {
	var c types.Club
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.Name, &c.Country, &c.City, &c.Founded, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = parseTS(createdAt)
	c.UpdatedAt = parseTS(updatedAt)
	return &c, nil
}

func (s *SQLiteStore) GetClub(ctx context.Context, id string) (*types.Club, error) {
	s.logger.Debug("sql", "op", "select", "table", "clubs", "id", id)
	return scanClub(s.db.QueryRowContext(ctx,
		`SELECT id, name, country, city, founded, created_at, updated_at FROM clubs WHERE id = ?`, id))
}

func (s *SQLiteStore) ListClubs(ctx context.Context) ([]*types.Club, error) {
	s.logger.Debug("sql", "op", "select", "table", "clubs")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, country, city, founded, created_at, updated_at FROM clubs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateClub(ctx context.Context, c *types.Club) error {
	s.logger.Debug("sql", "op", "update", "table", "clubs", "id", c.ID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE clubs SET name = ?, country = ?, city = ?, founded = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Country, c.City, c.Founded, ts(time.Now()), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ---------- events & registrations ----------

func (s *SQLiteStore) CreateEvent(ctx context.Context, e *types.Event) error {
	s.logger.Debug("sql", "op", "insert", "table", "events", "name", e.Name)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, host_club_id, name, start_date, end_date, entry_fee_cents, max_teams, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.HostClubID, e.Name, ts(e.StartDate), ts(e.EndDate), e.EntryFeeCents, e.MaxTeams, ts(e.CreatedAt))
	return err
}

func scanEvent(row interface{ Scan(...any) error }) (*types.Event, error) {
	var e types.Event
	var start, end, createdAt string
	err := row.Scan(&e.ID, &e.HostClubID, &e.Name, &start, &end, &e.EntryFeeCents, &e.MaxTeams, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.StartDate = parseTS(start)
	e.EndDate = parseTS(end)
	e.CreatedAt = parseTS(createdAt)
	return &e, nil
}

func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*types.Event, error) {
	s.logger.Debug("sql", "op", "select", "table", "events", "id", id)
	return scanEvent(s.db.QueryRowContext(ctx,
		`SELECT id, host_club_id, name, start_date, end_date, entry_fee_cents, max_teams, created_at
		 FROM events WHERE id = ?`, id))
}

func (s *SQLiteStore) ListEvents(ctx context.Context) ([]*types.Event, error) {
	s.logger.Debug("sql", "op", "select", "table", "events")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, host_club_id, name, start_date, end_date, entry_fee_cents, max_teams, created_at
		 FROM events ORDER BY start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateRegistrations(ctx context.Context, regs []*types.TeamRegistration) error {
	s.logger.Debug("sql", "op", "insert", "table", "team_registrations", "count", len(regs))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, r := range regs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.CreatedAt = now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO team_registrations (id, event_id, club_id, team_name, age_grade, squad_size, fee_cents, registered_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.EventID, r.ClubID, r.TeamName, r.AgeGrade, r.SquadSize, r.FeeCents, r.RegisteredBy, ts(r.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert registration %s: %w", r.TeamName, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]*types.TeamRegistration, error) {
	s.logger.Debug("sql", "op", "select", "table", "team_registrations", "event_id", eventID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, club_id, team_name, age_grade, squad_size, fee_cents, registered_by, created_at
		 FROM team_registrations WHERE event_id = ? ORDER BY created_at`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.TeamRegistration
	for rows.Next() {
		var r types.TeamRegistration
		var createdAt string
		if err := rows.Scan(&r.ID, &r.EventID, &r.ClubID, &r.TeamName, &r.AgeGrade,
			&r.SquadSize, &r.FeeCents, &r.RegisteredBy, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTS(createdAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_registrations WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}

func (s *SQLiteStore) FinanceSummary(ctx context.Context, year int) (*types.FinanceSummary, error) {
	s.logger.Debug("sql", "op", "select", "table", "team_registrations", "year", year)

	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.name, COUNT(r.id), COALESCE(SUM(r.fee_cents), 0)
		 FROM events e
		 LEFT JOIN team_registrations r ON r.event_id = e.id
		 WHERE CAST(strftime('%Y', e.start_date) AS INTEGER) = ?
		 GROUP BY e.id, e.name
		 ORDER BY e.id`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sum := &types.FinanceSummary{Year: year}
	for rows.Next() {
		var ef types.EventFinance
		if err := rows.Scan(&ef.EventID, &ef.EventName, &ef.Teams, &ef.GrossFeeCents); err != nil {
			return nil, err
		}
		sum.Events = append(sum.Events, ef)
		sum.TotalTeams += ef.Teams
		sum.TotalGrossFeeCents += ef.GrossFeeCents
	}
	return sum, rows.Err()
}
