package repositories

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/desertthunder/modelinv/internal/models"
	"github.com/desertthunder/modelinv/internal/shared"
)

var _ models.Repository[models.Source, models.Source] = (*SourceRepository)(nil)

// SourceRepository implements [models.Repository] for [models.Source] persistence.
type SourceRepository struct {
	db     *sql.DB
	logger shared.Logger
}

// NewSourceRepository creates a new [SourceRepository] with the given database connection
func NewSourceRepository(db *sql.DB, logger shared.Logger) *SourceRepository {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &SourceRepository{db: db, logger: logger}
}

func selectSources() sq.SelectBuilder {
	return sq.Select("Source_ID", "Source_Name", "Source_Website").From("tblSource").OrderBy("Source_ID")
}

func scanSource(row rowScanner) (models.Source, error) {
	var (
		s       models.Source
		website sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &website); err != nil {
		return models.Source{}, err
	}
	s.Website = website.String
	return s, nil
}

// All returns every source.
func (r *SourceRepository) All() ([]models.Source, error) {
	return queryAll(r.db, selectSources(), scanSource)
}

// Search returns sources whose name or website contains text.
func (r *SourceRepository) Search(text string) ([]models.Source, error) {
	pattern := likeText(text)
	out, err := queryAll(r.db, selectSources().Where(sq.Or{
		sq.Like{"Source_Name": pattern},
		sq.Like{"Source_Website": pattern},
	}), scanSource)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("searched sources", "text", text, "count", len(out))
	return out, nil
}

// Names returns every source name, for pickers.
func (r *SourceRepository) Names() ([]string, error) {
	return queryAll(r.db, sq.Select("Source_Name").From("tblSource").OrderBy("Source_ID"), scanName)
}

// Add inserts s and returns its ID. A taken name fails with [shared.ErrDuplicateName].
func (r *SourceRepository) Add(s models.Source) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, validationError(err)
	}

	res, err := exec(r.db, sq.Insert("tblSource").
		Columns("Source_Name", "Source_Website").
		Values(s.Name, s.Website))
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	r.logger.Info("added source", "id", id, "name", s.Name)
	return id, nil
}

// Delete removes the source unless a model references it, in which case a [*shared.ReferencedError] is returned.
func (r *SourceRepository) Delete(id int64) error {
	if err := guardedDelete(r.db, models.RefSource, "tblSource", "Source_ID", id); err != nil {
		return err
	}
	r.logger.Info("deleted source", "id", id)
	return nil
}
