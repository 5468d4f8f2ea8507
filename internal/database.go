package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS days (
	day      TEXT PRIMARY KEY,
	count    INTEGER NOT NULL,
	keywords TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS questions (
	day   TEXT NOT NULL,
	i     INTEGER NOT NULL,
	time  INTEGER,
	text  TEXT NOT NULL,
	title TEXT NOT NULL,
	PRIMARY KEY (day, i)
);
CREATE TABLE IF NOT EXISTS summary (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);`

// OpenDatabase opens an existing SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return openDatabase("file:" + path + "?mode=ro")
}

// OpenDatabaseRW opens (creating if needed) a SQLite database for writing
func OpenDatabaseRW(path string) (*sql.DB, error) {
	return openDatabase(path)
}

func openDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// SQLiteSink mirrors the artifacts into SQLite tables
type SQLiteSink struct {
	db   *sql.DB
	path string
}

// NewSQLiteSink opens path for writing and returns a sink over it
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := OpenDatabaseRW(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return &SQLiteSink{db: db, path: path}, nil
}

// NewSQLiteSinkFromDB wraps an already open database
func NewSQLiteSinkFromDB(db *sql.DB) *SQLiteSink {
	return &SQLiteSink{db: db, path: ":memory:"}
}

// Close closes the database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Reset drops every table and recreates the schema.
func (s *SQLiteSink) Reset() error {
	stmts := []string{
		"DROP TABLE IF EXISTS questions",
		"DROP TABLE IF EXISTS days",
		"DROP TABLE IF EXISTS summary",
		schemaSQL,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return &StorageError{Path: s.path, Op: "exec", Err: err}
		}
	}
	return nil
}

// WriteDay inserts a day and its questions in one transaction.
func (s *SQLiteSink) WriteDay(day *DayFile) error {
	keywords, err := json.Marshal(day.Keywords)
	if err != nil {
		return &ExportError{Format: "sqlite", Path: s.path, Err: err}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Path: s.path, Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("INSERT INTO days (day, count, keywords) VALUES (?, ?, ?)",
		day.Day, day.Count, string(keywords)); err != nil {
		return &StorageError{Path: s.path, Op: "exec", Err: err}
	}

	stmt, err := tx.Prepare("INSERT INTO questions (day, i, time, text, title) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return &StorageError{Path: s.path, Op: "prepare", Err: err}
	}
	defer stmt.Close()

	for _, item := range day.Items {
		var ts sql.NullInt64
		if item.Time != nil {
			ts = sql.NullInt64{Int64: *item.Time, Valid: true}
		}
		if _, err := stmt.Exec(day.Day, item.I, ts, item.Text, item.Title); err != nil {
			return &StorageError{Path: s.path, Op: "exec", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Path: s.path, Op: "commit", Err: err}
	}
	return nil
}

// WriteIndex records the totals.
func (s *SQLiteSink) WriteIndex(index *Index) error {
	query := "INSERT INTO summary (key, value) VALUES (?, ?), (?, ?)"
	if _, err := s.db.Exec(query, "totalDays", index.TotalDays, "totalQuestions", index.TotalQuestions); err != nil {
		return &StorageError{Path: s.path, Op: "exec", Err: err}
	}
	return nil
}

// QueryIndex rebuilds the index from the days table
func QueryIndex(db *sql.DB) (*Index, error) {
	rows, err := db.Query("SELECT day, count, keywords FROM days ORDER BY day")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	index := &Index{Days: make([]DayMeta, 0)}
	for rows.Next() {
		var (
			meta     DayMeta
			keywords string
		)
		if err := rows.Scan(&meta.Day, &meta.Count, &keywords); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &meta.Keywords); err != nil {
			return nil, fmt.Errorf("invalid keywords for %s: %w", meta.Day, err)
		}
		index.Days = append(index.Days, meta)
		index.TotalQuestions += meta.Count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	index.TotalDays = len(index.Days)

	// totals recorded by WriteIndex win over the recount
	totals, err := db.Query("SELECT key, value FROM summary")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer totals.Close()
	for totals.Next() {
		var (
			key   string
			value int
		)
		if err := totals.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		switch key {
		case "totalDays":
			index.TotalDays = value
		case "totalQuestions":
			index.TotalQuestions = value
		}
	}
	if err := totals.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return index, nil
}

// SearchQuestions returns questions whose text contains term, ignoring case,
// ordered by day and position.
func SearchQuestions(db *sql.DB, term string) ([]Question, error) {
	query := `SELECT day, time, text, title FROM questions
		WHERE instr(lower(text), ?) > 0 ORDER BY day, i`
	rows, err := db.Query(query, strings.ToLower(strings.TrimSpace(term)))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var (
			q  Question
			ts sql.NullInt64
		)
		if err := rows.Scan(&q.Date, &ts, &q.Text, &q.Title); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if ts.Valid {
			v := ts.Int64
			q.Timestamp = &v
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return questions, nil
}

// QueryDay rebuilds one day artifact from the mirror. ErrDayNotFound is
// returned when the day has no row.
func QueryDay(db *sql.DB, day string) (*DayFile, error) {
	if !ValidDay(day) {
		return nil, ErrDayNotFound
	}

	d := &DayFile{Day: day, Items: make([]DayItem, 0)}
	var keywords string
	err := db.QueryRow("SELECT count, keywords FROM days WHERE day = ?", day).Scan(&d.Count, &keywords)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &d.Keywords); err != nil {
		return nil, fmt.Errorf("invalid keywords for %s: %w", day, err)
	}

	rows, err := db.Query("SELECT i, time, text, title FROM questions WHERE day = ? ORDER BY i", day)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item DayItem
			ts   sql.NullInt64
		)
		if err := rows.Scan(&item.I, &ts, &item.Text, &item.Title); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if ts.Valid {
			v := ts.Int64
			item.Time = &v
		}
		d.Items = append(d.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return d, nil
}
