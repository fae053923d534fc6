package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per training session
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			exercise_name TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			total_reps INTEGER NOT NULL DEFAULT 0,
			complete_reps INTEGER NOT NULL DEFAULT 0,
			incomplete_reps INTEGER NOT NULL DEFAULT 0,
			avg_rom REAL NOT NULL DEFAULT 0,
			confirmed_reps INTEGER NOT NULL DEFAULT 0
		)`,

		// Repetitions table - per-rep metrics, one row per detected cycle
		`CREATE TABLE IF NOT EXISTS repetitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			view TEXT NOT NULL,
			start_frame INTEGER NOT NULL,
			end_frame INTEGER NOT NULL,
			min_angle REAL NOT NULL,
			max_angle REAL NOT NULL,
			rom REAL NOT NULL,
			is_complete INTEGER NOT NULL,
			errors TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_repetitions_session_id ON repetitions(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
