package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/delve/internal/replay"
)

// ErrSessionNotFound is returned when a session lookup yields no results.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when saving a session whose ID is already stored.
var ErrSessionExists = errors.New("session already stored")

// SessionSummary is a session row without its draw and message payloads.
type SessionSummary struct {
	ID         string
	ScenarioID string
	Seed       int64
	Deaths     int
	DrawCount  int
	RecordedAt time.Time
}

// SessionRepository persists recorded replay sessions.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a SessionRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save inserts s. Rounds, final state, messages and draws are stored as jsonb.
//
// Precondition: s.ID must be a UUID string.
// Postcondition: Returns nil on success or ErrSessionExists on a duplicate ID.
func (r *SessionRepository) Save(ctx context.Context, s *replay.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions
			(id, scenario_id, seed, recorded_at, deaths, draw_count, rounds, final, messages, draws)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.ScenarioID, s.Seed, s.RecordedAt, s.Deaths, len(s.Draws),
		nonNil(s.Rounds), nonNil(s.Final), nonNil(s.Messages), nonNil(s.Draws),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrSessionExists
		}
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// Get loads the session with the given ID.
//
// Postcondition: Returns the session or ErrSessionNotFound.
func (r *SessionRepository) Get(ctx context.Context, id string) (*replay.Session, error) {
	var s replay.Session
	err := r.db.QueryRow(ctx, `
		SELECT id::text, scenario_id, seed, recorded_at, deaths, rounds, final, messages, draws
		FROM sessions WHERE id = $1::uuid`,
		id,
	).Scan(&s.ID, &s.ScenarioID, &s.Seed, &s.RecordedAt, &s.Deaths,
		&s.Rounds, &s.Final, &s.Messages, &s.Draws)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("querying session: %w", err)
	}
	s.RecordedAt = s.RecordedAt.UTC()
	return &s, nil
}

// ListByScenario returns summaries of every stored session of a scenario,
// oldest first.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *SessionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]SessionSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, scenario_id, seed, deaths, draw_count, recorded_at
		FROM sessions WHERE scenario_id = $1 ORDER BY recorded_at ASC, id ASC`,
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.ScenarioID, &sum.Seed, &sum.Deaths, &sum.DrawCount, &sum.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sum.RecordedAt = sum.RecordedAt.UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}

// Delete removes the session with the given ID.
//
// Postcondition: Returns nil if a row was removed, ErrSessionNotFound otherwise.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// nonNil keeps empty payloads encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
