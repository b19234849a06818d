package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/desertthunder/modelinv/internal/shared"
)

// EntityResolver maps artist and source names to their IDs.
//
// Matching is exact and case-sensitive.
type EntityResolver struct {
	q      querier
	logger shared.Logger
}

// NewEntityResolver creates a resolver that reads through db.
func NewEntityResolver(db *sql.DB, logger shared.Logger) *EntityResolver {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &EntityResolver{q: db, logger: logger}
}

// within returns a resolver that reads through tx.
func (r *EntityResolver) within(tx *sql.Tx) *EntityResolver {
	return &EntityResolver{q: tx, logger: r.logger}
}

// ResolveArtistID returns the ID of the artist named name.
func (r *EntityResolver) ResolveArtistID(name string) (int64, error) {
	return r.resolve("artist", "tblArtist", "Artist_ID", "Artist_Name", name)
}

// ResolveSourceID returns the ID of the source named name.
func (r *EntityResolver) ResolveSourceID(name string) (int64, error) {
	return r.resolve("source", "tblSource", "Source_ID", "Source_Name", name)
}

func (r *EntityResolver) resolve(kind, table, key, column, name string) (int64, error) {
	query, args, err := sq.Select(key).From(table).Where(sq.Eq{column: name}).Limit(1).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to build query: %w", shared.ErrQueryFailed, err)
	}

	var id int64
	err = r.q.QueryRow(query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s %q", shared.ErrNotFound, kind, name)
	} else if err != nil {
		return 0, fmt.Errorf("%w: failed to resolve %s: %w", shared.ErrQueryFailed, kind, err)
	}

	r.logger.Debug("resolved name", "kind", kind, "name", name, "id", id)
	return id, nil
}
