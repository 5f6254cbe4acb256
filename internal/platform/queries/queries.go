// Package queries loads the named SQL statements the stores execute.
//
// Statements live in one file per dialect. Each starts with a
// "-- name: <operation>" line and runs until the next one.
package queries

import (
	"bufio"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

//go:embed postgres.sql mysql.sql
var files embed.FS

const namePrefix = "-- name:"

// Parse reads named statements from r.
func Parse(r io.Reader) (map[string]string, error) {
	stmts := make(map[string]string)
	var (
		current string
		body    strings.Builder
	)
	flush := func() {
		if current != "" {
			stmts[current] = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, namePrefix):
			flush()
			current = strings.TrimSpace(strings.TrimPrefix(trimmed, namePrefix))
			if current == "" {
				return nil, fmt.Errorf("empty query name")
			}
			if _, dup := stmts[current]; dup {
				return nil, fmt.Errorf("query %q defined twice", current)
			}
		case strings.HasPrefix(trimmed, "--"):
			continue
		case current != "":
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return stmts, nil
}

// Set is an immutable table of statements for one dialect.
type Set struct {
	dialect Dialect
	stmts   map[string]string
}

// Load parses the embedded statement file for dialect.
func Load(dialect Dialect) (*Set, error) {
	f, err := files.Open(string(dialect) + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no query file for dialect %q: %w", dialect, err)
	}
	defer f.Close()

	stmts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s queries: %w", dialect, err)
	}
	return &Set{dialect: dialect, stmts: stmts}, nil
}

// MustLoad is Load for statement files known at build time.
func MustLoad(dialect Dialect) *Set {
	s, err := Load(dialect)
	if err != nil {
		panic(err)
	}
	return s
}

// Require fails when any of names is missing.
func (s *Set) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := s.stmts[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s queries missing: %s", s.dialect, strings.Join(missing, ", "))
	}
	return nil
}

// Get returns the named statement. Stores Require their names at construction,
// so a miss here is a programming error.
func (s *Set) Get(name string) string {
	q, ok := s.stmts[name]
	if !ok {
		panic(fmt.Sprintf("query %q not found", name))
	}
	return q
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// InsertID runs the named INSERT and returns the generated key. Postgres
// statements end in RETURNING; MySQL reports LastInsertId.
func (s *Set) InsertID(ctx context.Context, db Execer, name string, args ...interface{}) (int64, error) {
	q := s.Get(name)
	if s.dialect == Postgres {
		var id int64
		if err := db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
