package pagebuilder

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a requested page is not in the store.
var ErrNotFound = sql.ErrNoRows

// PageStore keeps a page registry in SQLite, as an alternative to pages.json.
type PageStore struct {
	db *sql.DB
}

// OpenPageStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func OpenPageStore(path string) (*PageStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	// Readers such as a CGI process may have no write access next to the
	// file, which a WAL database needs.
	if _, err := db.Exec(`
		PRAGMA journal_mode=DELETE;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &PageStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPageStoreReadOnly opens an existing store for reading. It creates no
// directory or schema and never writes to the file.
func OpenPageStoreReadOnly(path string) (*PageStore, error) {
	db, err := openDB("file:" + uriEscaper.Replace(filepath.ToSlash(path)) + "?mode=ro")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, err
	}
	return &PageStore{db: db}, nil
}

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Close closes the underlying database connection.
func (s *PageStore) Close() error {
	return s.db.Close()
}

func (s *PageStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    name TEXT PRIMARY KEY,
    attrs TEXT NOT NULL
);
`)
	return err
}

// SavePage upserts a page. Names are stored lower-cased, the form requests
// are looked up in.
func (s *PageStore) SavePage(name string, attrs Attrs) error {
	return savePage(s.db, name, attrs)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func savePage(db execer, name string, attrs Attrs) error {
	if attrs == nil {
		attrs = Attrs{}
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO pages (name, attrs) VALUES (?, ?)`,
		strings.ToLower(name), string(b))
	return err
}

// GetPage returns the attributes of one page.
func (s *PageStore) GetPage(name string) (Attrs, error) {
	var raw string
	err := s.db.QueryRow(`SELECT attrs FROM pages WHERE name = ?`, strings.ToLower(name)).Scan(&raw)
	if err != nil {
		return nil, err
	}
	return decodeAttrs(name, raw)
}

// DeletePage removes a page by name.
func (s *PageStore) DeletePage(name string) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE name = ?`, strings.ToLower(name))
	return err
}

// ListPages returns all page names in ascending order.
func (s *PageStore) ListPages() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM pages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Registry returns every stored page.
func (s *PageStore) Registry() (Registry, error) {
	rows, err := s.db.Query(`SELECT name, attrs FROM pages`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reg := make(Registry)
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, err
		}
		attrs, err := decodeAttrs(name, raw)
		if err != nil {
			return nil, err
		}
		reg[name] = attrs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Import saves every page of reg in a single transaction. Names that differ
// only in case would overwrite each other and are rejected.
func (s *PageStore) Import(reg Registry) error {
	seen := make(map[string]string, len(reg))
	for _, name := range reg.Names() {
		key := strings.ToLower(name)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("pages %q and %q are both stored as %q", other, name, key)
		}
		seen[key] = name
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for name, attrs := range reg {
		if err := savePage(tx, name, attrs); err != nil {
			return errors.Join(fmt.Errorf("page %q: %w", name, err), tx.Rollback())
		}
	}
	return tx.Commit()
}

func decodeAttrs(name, raw string) (Attrs, error) {
	var attrs Attrs
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, fmt.Errorf("page %q: decode attrs: %w", name, err)
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	return attrs, nil
}
