// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/desertthunder/modelinv/internal/models"
	"github.com/desertthunder/modelinv/internal/shared"
)

// querier is satisfied by both [sql.DB] and [sql.Tx].
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Inventory bundles the stores that share one connection.
type Inventory struct {
	Models   *ModelRepository
	Artists  *ArtistRepository
	Sources  *SourceRepository
	Resolver *EntityResolver
}

// NewInventory creates every repository over db.
func NewInventory(db *sql.DB, logger shared.Logger) *Inventory {
	return &Inventory{
		Models:   NewModelRepository(db, logger),
		Artists:  NewArtistRepository(db, logger),
		Sources:  NewSourceRepository(db, logger),
		Resolver: NewEntityResolver(db, logger),
	}
}

// SearchModels searches models by a text field, or by artist or source name when field names a reference.
//
// field is a [models.SearchField] or [models.Reference], either by name ("set_name", "artist")
// or by column ("Set_Name", "Artist"). A name that resolves to nothing yields an empty result rather than [shared.ErrNotFound].
func (inv *Inventory) SearchModels(field, text string) ([]models.Model, error) {
	ref, ok := models.ParseReference(field)
	if !ok {
		return inv.Models.Search(models.SearchField(field), text)
	}

	var (
		id  int64
		err error
	)
	if ref == models.RefArtist {
		id, err = inv.Resolver.ResolveArtistID(text)
	} else {
		id, err = inv.Resolver.ResolveSourceID(text)
	}
	if errors.Is(err, shared.ErrNotFound) {
		return []models.Model{}, nil
	} else if err != nil {
		return nil, err
	}
	return inv.Models.SearchByReference(ref, id)
}

// queryAll runs b and scans every row with scan. The result is never nil.
func queryAll[T any](q querier, b sq.Sqlizer, scan func(rowScanner) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build query: %w", shared.ErrQueryFailed, err)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrQueryFailed, err)
	}
	defer rows.Close()

	return scanAll(rows, scan)
}

// scanAll collects rows into a slice that is empty, not nil, when there are no rows.
func scanAll[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan row: %w", shared.ErrQueryFailed, err)
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %w", shared.ErrQueryFailed, err)
	}
	return out, nil
}

// exec builds and runs a mutation.
func exec(q querier, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build statement: %w", shared.ErrQueryFailed, err)
	}
	res, err := q.Exec(query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// deleteOne runs b and reports [shared.ErrNotFound] when no row matched.
func deleteOne(q querier, b sq.DeleteBuilder, kind string, id int64) error {
	res, err := exec(q, b)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %w", shared.ErrQueryFailed, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", shared.ErrNotFound, kind, id)
	}
	return nil
}

// classify maps driver errors onto store sentinels.
func classify(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %w", shared.ErrDuplicateName, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrQueryFailed, err)
}

// CountModelsReferencing returns how many models point at the artist or source with the given ID.
func CountModelsReferencing(q querier, ref models.Reference, id int64) (int, error) {
	col, ok := ref.Column()
	if !ok {
		return 0, fmt.Errorf("%w: unknown reference %q", shared.ErrInvalidField, ref)
	}

	query, args, err := sq.Select("COUNT(*)").From("tblModel").Where(sq.Eq{col: id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to build query: %w", shared.ErrQueryFailed, err)
	}

	var n int
	if err := q.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count models: %w", shared.ErrQueryFailed, err)
	}
	return n, nil
}

// guardedDelete removes one artist or source row unless a model still references it.
func guardedDelete(db *sql.DB, ref models.Reference, table, key string, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", shared.ErrQueryFailed, err)
	}
	defer tx.Rollback()

	count, err := CountModelsReferencing(tx, ref, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &shared.ReferencedError{Kind: string(ref), ID: id, Count: count}
	}

	if err := deleteOne(tx, sq.Delete(table).Where(sq.Eq{key: id}), string(ref), id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit delete: %w", shared.ErrQueryFailed, err)
	}
	return nil
}

func likeText(text string) string {
	return "%" + text + "%"
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
}
