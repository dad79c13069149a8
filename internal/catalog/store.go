package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS channels (
	id       TEXT PRIMARY KEY,
	number   INTEGER NOT NULL,
	name     TEXT NOT NULL,
	genre    TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS launches (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TIMESTAMP NOT NULL,
	channels   TEXT NOT NULL
);
`

// Store persists the channel lineup and multiview launch history.
type Store struct {
	conn *sql.DB
}

// Launch is one recorded multiview start.
type Launch struct {
	StartedAt  time.Time
	ChannelIDs []string
}

// OpenStore opens (creating if needed) the catalog database and seeds the
// default lineup when the channel table is empty.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.seedIfEmpty(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM channels").Scan(&count); err != nil {
		return fmt.Errorf("count channels: %w", err)
	}
	if count > 0 {
		return nil
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	for i, ch := range DefaultLineup() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO channels (id, number, name, genre, position) VALUES (?, ?, ?, ?, ?)",
			ch.ID, ch.Number, ch.Name, ch.Genre, i,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed channel %s: %w", ch.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Lineup returns all channels in lineup order.
func (s *Store) Lineup(ctx context.Context) ([]Channel, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, number, name, genre FROM channels ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query lineup: %w", err)
	}
	defer rows.Close()

	var channels []Channel
	for rows.Next() {
		var ch Channel
		if err := rows.Scan(&ch.ID, &ch.Number, &ch.Name, &ch.Genre); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lineup: %w", err)
	}
	return channels, nil
}

// RecordLaunch stores a multiview start for history.
func (s *Store) RecordLaunch(ctx context.Context, channelIDs []string) error {
	if len(channelIDs) == 0 {
		return nil
	}
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO launches (started_at, channels) VALUES (?, ?)",
		time.Now().UTC(), strings.Join(channelIDs, ","))
	if err != nil {
		return fmt.Errorf("record launch: %w", err)
	}
	return nil
}

// RecentLaunches returns the most recent multiview starts, newest first.
func (s *Store) RecentLaunches(ctx context.Context, limit int) ([]Launch, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.conn.QueryContext(ctx,
		"SELECT started_at, channels FROM launches ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}
	defer rows.Close()

	var launches []Launch
	for rows.Next() {
		var l Launch
		var joined string
		if err := rows.Scan(&l.StartedAt, &joined); err != nil {
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		if joined != "" {
			l.ChannelIDs = strings.Split(joined, ",")
		}
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read launches: %w", err)
	}
	return launches, nil
}
