// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/modelinv/internal/shared"
)

// NewCatalogDB opens an in-memory database migrated to the newest schema version.
func NewCatalogDB(t *testing.T) *sql.DB {
	t.Helper()
	return MustOpenCatalog(t, shared.MemoryDatabase)
}

// MustOpenCatalog opens the database at path and brings it to the newest schema version.
func MustOpenCatalog(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { shared.CloseDatabase(db) })

	catalog, err := shared.DefaultCatalog()
	if err != nil {
		t.Fatalf("failed to load schema catalog: %v", err)
	}

	if _, err := shared.NewSchemaMigrator(db, catalog, shared.NopLogger()).Upgrade(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// MustExec runs each statement against db.
func MustExec(t *testing.T, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to exec %q: %v", stmt, err)
		}
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
