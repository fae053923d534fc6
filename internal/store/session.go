package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session represents one training session stored in the database.
type Session struct {
	ID             string
	ExerciseName   string
	StartedAt      time.Time
	EndedAt        *time.Time
	TotalReps      int
	CompleteReps   int
	IncompleteReps int
	AvgROM         float64
	ConfirmedReps  int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session into the database.
func (r *SessionRepository) Create(s *Session) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, exercise_name, started_at)
		 VALUES (?, ?, ?)`,
		s.ID, s.ExerciseName, s.StartedAt,
	)
	return err
}

// Finish records the end time and final aggregate counters for a session.
func (r *SessionRepository) Finish(id string, totalReps, completeReps, incompleteReps int, avgROM float64, confirmedReps int) error {
	now := time.Now()

	result, err := r.db.Exec(
		`UPDATE sessions
		 SET ended_at = ?, total_reps = ?, complete_reps = ?,
		     incomplete_reps = ?, avg_rom = ?, confirmed_reps = ?
		 WHERE id = ?`,
		now, totalReps, completeReps, incompleteReps, avgROM, confirmedReps, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	s := &Session{}
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, exercise_name, started_at, ended_at, total_reps,
		        complete_reps, incomplete_reps, avg_rom, confirmed_reps
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.ExerciseName, &s.StartedAt, &endedAt, &s.TotalReps,
		&s.CompleteReps, &s.IncompleteReps, &s.AvgROM, &s.ConfirmedReps)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	return s, nil
}

// List retrieves all sessions, most recent first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise_name, started_at, ended_at, total_reps,
		        complete_reps, incomplete_reps, avg_rom, confirmed_reps
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		var endedAt sql.NullTime

		err := rows.Scan(&s.ID, &s.ExerciseName, &s.StartedAt, &endedAt,
			&s.TotalReps, &s.CompleteReps, &s.IncompleteReps, &s.AvgROM,
			&s.ConfirmedReps)
		if err != nil {
			return nil, err
		}

		if endedAt.Valid {
			s.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Delete removes a session and, via cascade, its repetitions.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
