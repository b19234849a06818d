package shared

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenDatabase(t *testing.T) {
	t.Run("creates missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultDatabaseName)
		if FileExists(path) {
			t.Fatal("file should not exist yet")
		}

		db, err := OpenDatabase(path)
		if err != nil {
			t.Fatalf("OpenDatabase() error = %v", err)
		}
		defer CloseDatabase(db)

		if !FileExists(path) {
			t.Error("expected database file to be created")
		}
		if got := db.Stats().MaxOpenConnections; got != 1 {
			t.Errorf("expected one connection, got %d", got)
		}
	})

	t.Run("unreachable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "models.db")
		if _, err := OpenDatabase(path); !errors.Is(err, ErrCannotOpen) {
			t.Errorf("expected ErrCannotOpen, got %v", err)
		}
	})

	t.Run("FileExists ignores directories", func(t *testing.T) {
		if FileExists(t.TempDir()) {
			t.Error("a directory is not a file")
		}
		if FileExists(MemoryDatabase) {
			t.Error("memory database has no file")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := OpenDatabase(""); !errors.Is(err, ErrCannotOpen) {
			t.Errorf("expected ErrCannotOpen, got %v", err)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		db, err := OpenDatabase(MemoryDatabase)
		if err != nil {
			t.Fatal(err)
		}
		if err := CloseDatabase(db); err != nil {
			t.Errorf("first close: %v", err)
		}
		if err := CloseDatabase(db); err != nil {
			t.Errorf("second close: %v", err)
		}
		if err := CloseDatabase(nil); err != nil {
			t.Errorf("nil close: %v", err)
		}
	})
}
