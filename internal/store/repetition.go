package store

import (
	"database/sql"
	"strings"
	"time"
)

// Repetition represents one detected repetition stored in the database.
type Repetition struct {
	ID         int64
	SessionID  string
	View       string
	StartFrame int
	EndFrame   int
	MinAngle   float64
	MaxAngle   float64
	ROM        float64
	IsComplete bool
	Errors     []string
	CreatedAt  time.Time
}

// RepetitionRepository provides CRUD operations for repetitions.
type RepetitionRepository struct {
	db *sql.DB
}

// Repetitions returns the repetition repository for this store.
func (s *Store) Repetitions() *RepetitionRepository {
	return &RepetitionRepository{db: s.db}
}

// errorsSeparator joins failure reasons into one column. Reason strings
// never contain it.
const errorsSeparator = "|"

// Create inserts a repetition row for a session.
func (r *RepetitionRepository) Create(rep *Repetition) error {
	result, err := r.db.Exec(
		`INSERT INTO repetitions
		 (session_id, view, start_frame, end_frame, min_angle, max_angle,
		  rom, is_complete, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.SessionID, rep.View, rep.StartFrame, rep.EndFrame,
		rep.MinAngle, rep.MaxAngle, rep.ROM, rep.IsComplete,
		strings.Join(rep.Errors, errorsSeparator),
	)
	if err != nil {
		return err
	}

	rep.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves all repetitions of a session in detection order.
func (r *RepetitionRepository) ListBySession(sessionID string) ([]*Repetition, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, view, start_frame, end_frame, min_angle,
		        max_angle, rom, is_complete, errors, created_at
		 FROM repetitions WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []*Repetition
	for rows.Next() {
		rep := &Repetition{}
		var joinedErrors string

		err := rows.Scan(&rep.ID, &rep.SessionID, &rep.View, &rep.StartFrame,
			&rep.EndFrame, &rep.MinAngle, &rep.MaxAngle, &rep.ROM,
			&rep.IsComplete, &joinedErrors, &rep.CreatedAt)
		if err != nil {
			return nil, err
		}

		if joinedErrors != "" {
			rep.Errors = strings.Split(joinedErrors, errorsSeparator)
		}
		reps = append(reps, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reps, nil
}

// CountByView returns how many repetitions a session recorded per view.
func (r *RepetitionRepository) CountByView(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT view, COUNT(*) FROM repetitions
		 WHERE session_id = ? GROUP BY view`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var view string
		var n int
		if err := rows.Scan(&view, &n); err != nil {
			return nil, err
		}
		counts[view] = n
	}

	return counts, rows.Err()
}
