package repositories

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/desertthunder/modelinv/internal/models"
	"github.com/desertthunder/modelinv/internal/shared"
)

var _ models.Repository[models.Model, models.NewModel] = (*ModelRepository)(nil)

// ModelRepository implements [models.Repository] for [models.Model] persistence.
type ModelRepository struct {
	db       *sql.DB
	resolver *EntityResolver
	logger   shared.Logger
}

// NewModelRepository creates a new [ModelRepository] with the given database connection
func NewModelRepository(db *sql.DB, logger shared.Logger) *ModelRepository {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &ModelRepository{db: db, resolver: NewEntityResolver(db, logger), logger: logger}
}

// selectModels joins each model with its artist and source. Models whose references are gone still appear.
func selectModels() sq.SelectBuilder {
	return sq.Select(
		"m.Model_ID", "m.Model_Name", "m.Set_Name", "m.Artist", "m.Source", "m.Source_Note",
		"m.Supports", "m.Format", "m.Printed",
		"COALESCE(a.Artist_Name, '')", "COALESCE(s.Source_Name, '')", "COALESCE(a.Artist_Folder, '')",
	).
		From("tblModel m").
		LeftJoin("tblArtist a ON a.Artist_ID = m.Artist").
		LeftJoin("tblSource s ON s.Source_ID = m.Source").
		OrderBy("m.Model_ID")
}

func (r *ModelRepository) scanRow(row rowScanner) (models.Model, error) {
	var (
		m                 models.Model
		supports, printed any
	)
	err := row.Scan(
		&m.ID, &m.Name, &m.SetName, &m.ArtistID, &m.SourceID, &m.SourceNote,
		&supports, &m.Format, &printed,
		&m.ArtistName, &m.SourceName, &m.ArtistFolder,
	)
	if err != nil {
		return models.Model{}, err
	}
	m.Supports = models.DecodeFlag(supports)
	m.Printed = models.DecodeFlag(printed)
	return m, nil
}

// All returns every model with its artist and source names.
func (r *ModelRepository) All() ([]models.Model, error) {
	out, err := queryAll(r.db, selectModels(), r.scanRow)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("listed models", "count", len(out))
	return out, nil
}

// Get retrieves a single model by ID.
func (r *ModelRepository) Get(id int64) (models.Model, error) {
	query, args, err := selectModels().Where(sq.Eq{"m.Model_ID": id}).ToSql()
	if err != nil {
		return models.Model{}, fmt.Errorf("%w: failed to build query: %w", shared.ErrQueryFailed, err)
	}

	m, err := r.scanRow(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return models.Model{}, fmt.Errorf("%w: model %d", shared.ErrNotFound, id)
	} else if err != nil {
		return models.Model{}, fmt.Errorf("%w: failed to query model: %w", shared.ErrQueryFailed, err)
	}
	return m, nil
}

// Search returns models whose field contains text, ignoring ASCII case.
//
// field must be one of [models.SearchFields]; anything else fails with [shared.ErrInvalidField] before a query is built.
func (r *ModelRepository) Search(field models.SearchField, text string) ([]models.Model, error) {
	col, ok := field.Column()
	if !ok {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidField, field)
	}

	out, err := queryAll(r.db, selectModels().Where(sq.Like{"m." + col: likeText(text)}), r.scanRow)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("searched models", "field", field, "text", text, "count", len(out))
	return out, nil
}

// SearchByReference returns models attributed to the artist or source with the given ID.
func (r *ModelRepository) SearchByReference(ref models.Reference, id int64) ([]models.Model, error) {
	col, ok := ref.Column()
	if !ok {
		return nil, fmt.Errorf("%w: unknown reference %q", shared.ErrInvalidField, ref)
	}

	out, err := queryAll(r.db, selectModels().Where(sq.Eq{"m." + col: id}), r.scanRow)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("searched models by reference", "ref", ref, "id", id, "count", len(out))
	return out, nil
}

// Add resolves the artist and source names of entry and inserts it, all in one transaction.
//
// Unknown names fail with [shared.ErrNotFound] and nothing is written.
func (r *ModelRepository) Add(entry models.NewModel) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, validationError(err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %w", shared.ErrQueryFailed, err)
	}
	defer tx.Rollback()

	resolver := r.resolver.within(tx)
	artistID, err := resolver.ResolveArtistID(entry.Artist)
	if err != nil {
		return 0, err
	}
	sourceID, err := resolver.ResolveSourceID(entry.Source)
	if err != nil {
		return 0, err
	}

	res, err := exec(tx, sq.Insert("tblModel").
		Columns("Model_Name", "Artist", "Set_Name", "Source", "Source_Note", "Supports", "Format", "Printed").
		Values(entry.Name, artistID, entry.SetName, sourceID, entry.SourceNote,
			models.EncodeFlag(entry.Supports), entry.Format, models.EncodeFlag(entry.Printed)))
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read model id: %w", shared.ErrQueryFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: failed to commit model: %w", shared.ErrQueryFailed, err)
	}

	r.logger.Info("added model", "id", id, "name", entry.Name, "artist_id", artistID, "source_id", sourceID)
	return id, nil
}

// Delete removes a model by ID.
func (r *ModelRepository) Delete(id int64) error {
	if err := deleteOne(r.db, sq.Delete("tblModel").Where(sq.Eq{"Model_ID": id}), "model", id); err != nil {
		return err
	}
	r.logger.Info("deleted model", "id", id)
	return nil
}
