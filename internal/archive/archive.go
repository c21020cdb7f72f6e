// Package archive keeps a durable log of dispatched posts. It is an
// audit trail only: the live queue stays in memory and never reads from
// here.
package archive

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

type Archive struct {
	conn *sql.DB
}

// Record is one dispatched post.
type Record struct {
	ID          string
	Kind        string
	Text        string
	ExternalIDs []string
	PostedAt    time.Time
}

// Open connects to the archive store. Remote URLs (libsql://, wss://,
// https://) use the libsql driver with the auth token appended; anything
// else is treated as a local sqlite file path.
func Open(url, authToken string) (*Archive, error) {
	driver := "sqlite3"
	dsn := url
	if isRemote(url) {
		driver = "libsql"
		if authToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", url, authToken)
		}
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	a := &Archive{conn: conn}
	if err := a.ensureSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return a, nil
}

func isRemote(url string) bool {
	for _, prefix := range []string{"libsql://", "wss://", "ws://", "https://", "http://"} {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

func (a *Archive) ensureSchema() error {
	_, err := a.conn.Exec(`
		CREATE TABLE IF NOT EXISTS posted (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			text TEXT NOT NULL,
			external_ids TEXT NOT NULL,
			posted_at TIMESTAMP NOT NULL
		)`)
	return err
}

// Record inserts one dispatched post.
func (a *Archive) Record(id, kind, text string, externalIDs []string, postedAt time.Time) error {
	query := `INSERT INTO posted (id, kind, text, external_ids, posted_at) VALUES (?, ?, ?, ?, ?)`
	_, err := a.conn.Exec(query, id, kind, text, strings.Join(externalIDs, ","), postedAt.UTC().Format("2006-01-02 15:04:05"))
	return err
}

// Recent returns the latest dispatched posts, newest first.
func (a *Archive) Recent(limit int) ([]*Record, error) {
	rows, err := a.conn.Query(`
		SELECT id, kind, text, external_ids, posted_at
		FROM posted
		ORDER BY posted_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		var ids string
		var postedAt string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Text, &ids, &postedAt); err != nil {
			return nil, err
		}
		if ids != "" {
			r.ExternalIDs = strings.Split(ids, ",")
		}
		if t, err := time.Parse("2006-01-02 15:04:05", postedAt); err == nil {
			r.PostedAt = t
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (a *Archive) Close() error {
	return a.conn.Close()
}
