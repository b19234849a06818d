package repositories

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/desertthunder/modelinv/internal/models"
	"github.com/desertthunder/modelinv/internal/shared"
)

var _ models.Repository[models.Artist, models.Artist] = (*ArtistRepository)(nil)

// ArtistRepository implements [models.Repository] for [models.Artist] persistence.
type ArtistRepository struct {
	db     *sql.DB
	logger shared.Logger
}

// NewArtistRepository creates a new [ArtistRepository] with the given database connection
func NewArtistRepository(db *sql.DB, logger shared.Logger) *ArtistRepository {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &ArtistRepository{db: db, logger: logger}
}

func selectArtists() sq.SelectBuilder {
	return sq.Select("Artist_ID", "Artist_Name", "Artist_Website", "Artist_Email", "Artist_Folder").
		From("tblArtist").
		OrderBy("Artist_ID")
}

func scanArtist(row rowScanner) (models.Artist, error) {
	var (
		a                      models.Artist
		website, email, folder sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &website, &email, &folder); err != nil {
		return models.Artist{}, err
	}
	a.Website, a.Email, a.Folder = website.String, email.String, folder.String
	return a, nil
}

// All returns every artist.
func (r *ArtistRepository) All() ([]models.Artist, error) {
	return queryAll(r.db, selectArtists(), scanArtist)
}

// Search returns artists whose name, website, email or folder contains text.
func (r *ArtistRepository) Search(text string) ([]models.Artist, error) {
	pattern := likeText(text)
	out, err := queryAll(r.db, selectArtists().Where(sq.Or{
		sq.Like{"Artist_Name": pattern},
		sq.Like{"Artist_Website": pattern},
		sq.Like{"Artist_Email": pattern},
		sq.Like{"Artist_Folder": pattern},
	}), scanArtist)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("searched artists", "text", text, "count", len(out))
	return out, nil
}

// Names returns every artist name, for pickers.
func (r *ArtistRepository) Names() ([]string, error) {
	return queryAll(r.db, sq.Select("Artist_Name").From("tblArtist").OrderBy("Artist_ID"), scanName)
}

// Add inserts a and returns its ID. A taken name fails with [shared.ErrDuplicateName].
func (r *ArtistRepository) Add(a models.Artist) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, validationError(err)
	}

	res, err := exec(r.db, sq.Insert("tblArtist").
		Columns("Artist_Name", "Artist_Website", "Artist_Email", "Artist_Folder").
		Values(a.Name, a.Website, a.Email, a.Folder))
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	r.logger.Info("added artist", "id", id, "name", a.Name)
	return id, nil
}

// Delete removes the artist unless a model references it, in which case a [*shared.ReferencedError] is returned.
func (r *ArtistRepository) Delete(id int64) error {
	if err := guardedDelete(r.db, models.RefArtist, "tblArtist", "Artist_ID", id); err != nil {
		return err
	}
	r.logger.Info("deleted artist", "id", id)
	return nil
}

func scanName(row rowScanner) (string, error) {
	var name string
	err := row.Scan(&name)
	return name, err
}
