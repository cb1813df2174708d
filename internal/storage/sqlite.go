// Package storage provides SQLite-based persistence for play history and
// resume bookmarks.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Play is one recorded run of a show.
type Play struct {
	ID        int64
	ShowPath  string
	Session   string // "local" or the SSH user
	Slides    int
	LoopType  string
	Loops     int // loops completed
	Completed bool
	Elapsed   time.Duration
	CreatedAt time.Time
}

// ShowStats contains aggregated statistics for a show.
type ShowStats struct {
	ShowPath   string
	Plays      int
	Completed  int
	TotalTime  time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			show_path TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT 'local',
			slides INTEGER NOT NULL DEFAULT 0,
			loop_type TEXT NOT NULL,
			loops INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_plays_show_path ON plays(show_path);

		CREATE TABLE IF NOT EXISTS bookmarks (
			show_path TEXT PRIMARY KEY,
			slide_index INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePlay records a finished or interrupted run.
// Returns the ID of the inserted record.
func (s *Store) SavePlay(p Play) (int64, error) {
	if p.Session == "" {
		p.Session = "local"
	}
	result, err := s.db.Exec(
		`INSERT INTO plays (show_path, session, slides, loop_type, loops, completed, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ShowPath, p.Session, p.Slides, p.LoopType, p.Loops, p.Completed, p.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentPlays retrieves the most recent plays across all shows.
func (s *Store) RecentPlays(limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryPlays(
		`SELECT id, show_path, session, slides, loop_type, loops, completed, elapsed_ms, created_at
		 FROM plays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// PlaysForShow retrieves the most recent plays of one show.
func (s *Store) PlaysForShow(showPath string, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryPlays(
		`SELECT id, show_path, session, slides, loop_type, loops, completed, elapsed_ms, created_at
		 FROM plays
		 WHERE show_path = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		showPath, limit,
	)
}

func (s *Store) queryPlays(query string, args ...any) ([]Play, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&p.ID, &p.ShowPath, &p.Session, &p.Slides, &p.LoopType,
			&p.Loops, &p.Completed, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		p.CreatedAt = parseTime(createdAt)
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return plays, nil
}

// ClearPlays deletes the history of one show.
func (s *Store) ClearPlays(showPath string) error {
	_, err := s.db.Exec("DELETE FROM plays WHERE show_path = ?", showPath)
	if err != nil {
		return fmt.Errorf("storage: cannot clear plays: %w", err)
	}
	return nil
}

// GetShowStats retrieves aggregated statistics for a specific show.
func (s *Store) GetShowStats(showPath string) (*ShowStats, error) {
	stats := &ShowStats{ShowPath: showPath}

	var totalMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(SUM(elapsed_ms), 0), MAX(created_at)
		 FROM plays WHERE show_path = ?`,
		showPath,
	).Scan(&stats.Plays, &stats.Completed, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get show stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllShowStats retrieves statistics for every show that has been played.
func (s *Store) GetAllShowStats() (map[string]*ShowStats, error) {
	rows, err := s.db.Query(
		`SELECT show_path, COUNT(*), SUM(completed), SUM(elapsed_ms), MAX(created_at)
		 FROM plays
		 GROUP BY show_path`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all show stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ShowStats)
	for rows.Next() {
		var st ShowStats
		var totalMS int64
		var lastPlayed any
		if err := rows.Scan(&st.ShowPath, &st.Plays, &st.Completed, &totalMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalTime = time.Duration(totalMS) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.ShowPath] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveBookmark remembers the slide a show was left on.
func (s *Store) SaveBookmark(showPath string, index int) error {
	_, err := s.db.Exec(
		`INSERT INTO bookmarks (show_path, slide_index) VALUES (?, ?)
		 ON CONFLICT(show_path) DO UPDATE SET slide_index = excluded.slide_index, updated_at = CURRENT_TIMESTAMP`,
		showPath, index,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save bookmark: %w", err)
	}
	return nil
}

// Bookmark returns the remembered slide for a show.
// ok is false when the show has no bookmark.
func (s *Store) Bookmark(showPath string) (index int, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT slide_index FROM bookmarks WHERE show_path = ?",
		showPath,
	).Scan(&index)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query bookmark: %w", err)
	}
	return index, true, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
