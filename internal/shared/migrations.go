package shared

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const schemaLabel = "current"

// SchemaMigrator brings a database from whatever version it records up to a catalog target.
type SchemaMigrator struct {
	db      *sql.DB
	catalog *SchemaCatalog
	logger  Logger
}

// NewSchemaMigrator creates a migrator over db using the scripts in catalog.
func NewSchemaMigrator(db *sql.DB, catalog *SchemaCatalog, logger Logger) *SchemaMigrator {
	if logger == nil {
		logger = NopLogger()
	}
	return &SchemaMigrator{db: db, catalog: catalog, logger: logger}
}

// Catalog returns the catalog the migrator applies.
func (m *SchemaMigrator) Catalog() *SchemaCatalog { return m.catalog }

// IsInitialized reports whether the schema table exists.
func (m *SchemaMigrator) IsInitialized() (bool, error) {
	var n int
	err := m.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tblSchema'",
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("%w: failed to inspect schema: %w", ErrSchemaUnreadable, err)
	}
	return n > 0, nil
}

// EnsureSchema runs the baseline script on an uninitialized database and reports whether it did so.
func (m *SchemaMigrator) EnsureSchema() (bool, error) {
	ok, err := m.IsInitialized()
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	m.logger.Info("creating baseline schema", "version", m.catalog.Baseline())

	tx, err := m.db.Begin()
	if err != nil {
		return false, fmt.Errorf("%w: failed to begin transaction: %w", ErrMigrationFailed, err)
	}
	defer tx.Rollback()

	if err := execScript(tx, m.catalog.BaselineScript()); err != nil {
		return false, fmt.Errorf("%w: baseline: %w", ErrMigrationFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: failed to commit baseline: %w", ErrMigrationFailed, err)
	}
	return true, nil
}

// CheckVersion returns the version recorded in the schema table.
func (m *SchemaMigrator) CheckVersion() (int, error) {
	ok, err := m.IsInitialized()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: schema table missing", ErrSchemaUnreadable)
	}

	var version int
	err = m.db.QueryRow("SELECT version FROM tblSchema WHERE label = ?", schemaLabel).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: no %q version row", ErrSchemaUnreadable, schemaLabel)
	} else if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSchemaUnreadable, err)
	}
	return version, nil
}

// Migrate applies every pending step up to target. Each step runs in its own transaction together with the
// version update, so a failed step leaves the database at the previous version.
//
// Nothing happens when target is at or below the recorded version.
func (m *SchemaMigrator) Migrate(target int) error {
	current, err := m.CheckVersion()
	if err != nil {
		return err
	}

	if target <= current {
		m.logger.Debug("schema up to date", "version", current, "target", target)
		return nil
	}

	steps, err := m.catalog.Pending(current, target)
	if err != nil {
		return err
	}

	for _, step := range steps {
		m.logger.Info("applying schema update", "from", current, "to", step.To)
		if err := m.applyStep(step); err != nil {
			return fmt.Errorf("%w: update to version %d: %w", ErrMigrationFailed, step.To, err)
		}
		current = step.To
	}

	return nil
}

// Upgrade creates the schema if needed and migrates to the catalog target. It returns the final version.
func (m *SchemaMigrator) Upgrade() (int, error) {
	if _, err := m.EnsureSchema(); err != nil {
		return 0, err
	}
	if err := m.Migrate(m.catalog.Target()); err != nil {
		return 0, err
	}
	return m.CheckVersion()
}

func (m *SchemaMigrator) applyStep(step MigrationStep) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execScript(tx, step.Script); err != nil {
		return err
	}

	res, err := tx.Exec("UPDATE tblSchema SET version = ? WHERE label = ?", step.To, schemaLabel)
	if err != nil {
		return fmt.Errorf("failed to record version: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("no %q version row to update", schemaLabel)
	}

	return tx.Commit()
}

// execScript runs a raw batch one statement at a time.
func execScript(tx *sql.Tx, script string) error {
	for _, stmt := range splitStatements(script) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}
	return nil
}

// splitStatements breaks a script on ";" and drops "--" comments and blank statements.
// Both are ignored inside quoted strings and identifiers.
func splitStatements(script string) []string {
	var (
		out   []string
		stmt  strings.Builder
		quote byte
	)
	flush := func() {
		if s := strings.TrimSpace(stmt.String()); s != "" {
			out = append(out, s)
		}
		stmt.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			for i < len(script) && script[i] != '\n' {
				i++
			}
			stmt.WriteByte('\n')
			continue
		case c == ';':
			flush()
			continue
		}
		stmt.WriteByte(c)
	}
	flush()

	return out
}
