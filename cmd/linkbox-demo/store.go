package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Command is one orchestrated command: what to run and where its output
// lands, plus the outcome of the last run.
type Command struct {
	ID         int64
	Name       string
	Cmdline    string
	OutputPath string
	LastStatus string
	LastRunAt  *time.Time
	LastRunFor *time.Duration
}

// Store persists the demo's command set under ~/.linkbox.
type Store struct {
	conn *sql.DB
}

func OpenStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".linkbox")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return OpenStoreAt(filepath.Join(dir, "commands.db"))
}

func OpenStoreAt(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS commands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			cmdline TEXT NOT NULL,
			output_path TEXT DEFAULT '',
			last_status TEXT DEFAULT '',
			last_run_at DATETIME,
			last_run_ms INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_commands_name ON commands(name);
	`)
	return err
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) List() ([]Command, error) {
	rows, err := s.conn.Query(`
		SELECT id, name, cmdline, output_path, last_status, last_run_at, last_run_ms
		FROM commands
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []Command
	for rows.Next() {
		var (
			c      Command
			ranAt  sql.NullTime
			ranFor sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Cmdline, &c.OutputPath, &c.LastStatus, &ranAt, &ranFor); err != nil {
			return nil, err
		}
		if ranAt.Valid {
			c.LastRunAt = &ranAt.Time
		}
		if ranFor.Valid {
			d := time.Duration(ranFor.Int64) * time.Millisecond
			c.LastRunFor = &d
		}
		commands = append(commands, c)
	}
	return commands, rows.Err()
}

func (s *Store) Add(name, cmdline, outputPath string) (int64, error) {
	result, err := s.conn.Exec(
		`INSERT INTO commands (name, cmdline, output_path) VALUES (?, ?, ?)`,
		name, cmdline, outputPath,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) Delete(name string) error {
	_, err := s.conn.Exec(`DELETE FROM commands WHERE name = ?`, name)
	return err
}

// RecordRun stores the outcome of one run.
func (s *Store) RecordRun(name, status string, ranAt time.Time, ranFor time.Duration) error {
	_, err := s.conn.Exec(
		`UPDATE commands SET last_status = ?, last_run_at = ?, last_run_ms = ? WHERE name = ?`,
		status, ranAt, ranFor.Milliseconds(), name,
	)
	return err
}
