package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/modelinv/internal/models"
	"github.com/desertthunder/modelinv/internal/shared"
	tu "github.com/desertthunder/modelinv/internal/testing"
)

// setupTestDB creates an in-memory SQLite database at the newest schema version
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(shared.MemoryDatabase)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { shared.CloseDatabase(db) })

	catalog, err := shared.DefaultCatalog()
	require.NoError(t, err)

	_, err = shared.NewSchemaMigrator(db, catalog, shared.NopLogger()).Upgrade()
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seed adds one artist and one source and returns the inventory over db
func seed(t *testing.T, db *sql.DB) (*Inventory, int64, int64) {
	t.Helper()
	inv := NewInventory(db, shared.NopLogger())

	artistID, err := inv.Artists.Add(models.Artist{Name: "Ann", Website: "ann.example", Email: "ann@example.com", Folder: "ann"})
	require.NoError(t, err)
	sourceID, err := inv.Sources.Add(models.Source{Name: "Shop", Website: "shop.example"})
	require.NoError(t, err)

	return inv, artistID, sourceID
}

func newModel(name string) models.NewModel {
	return models.NewModel{Name: name, SetName: "Set A", Artist: "Ann", Source: "Shop", Format: "STL"}
}

func TestModelRepository(t *testing.T) {
	t.Run("All on empty database", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)

		got, err := inv.Models.All()
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Add and All", func(t *testing.T) {
		inv, artistID, sourceID := seed(t, setupTestDB(t))

		id, err := inv.Models.Add(models.NewModel{
			Name: "Goblin", SetName: "Minis", Artist: "Ann", Source: "Shop",
			SourceNote: "bundle", Supports: true, Format: "STL", Printed: false,
		})
		require.NoError(t, err)
		assert.Positive(t, id)

		all, err := inv.Models.All()
		require.NoError(t, err)
		require.Len(t, all, 1)

		m := all[0]
		assert.Equal(t, id, m.ID)
		assert.Equal(t, "Goblin", m.Name)
		assert.Equal(t, artistID, m.ArtistID)
		assert.Equal(t, sourceID, m.SourceID)
		assert.Equal(t, "Ann", m.ArtistName)
		assert.Equal(t, "Shop", m.SourceName)
		assert.Equal(t, "ann", m.ArtistFolder)
		assert.True(t, m.Supports)
		assert.False(t, m.Printed)
	})

	t.Run("flags stored as 1 and 0", func(t *testing.T) {
		db := setupTestDB(t)
		inv, _, _ := seed(t, db)

		nm := newModel("Dragon")
		nm.Supports, nm.Printed = true, false
		id, err := inv.Models.Add(nm)
		require.NoError(t, err)

		var supports, printed int
		require.NoError(t, db.QueryRow("SELECT Supports, Printed FROM tblModel WHERE Model_ID = ?", id).Scan(&supports, &printed))
		assert.Equal(t, 1, supports)
		assert.Equal(t, 0, printed)

		got, err := inv.Models.Get(id)
		require.NoError(t, err)
		assert.True(t, got.Supports)
		assert.False(t, got.Printed)
	})

	t.Run("stored flag other than 1 decodes false", func(t *testing.T) {
		db := setupTestDB(t)
		inv, artistID, sourceID := seed(t, db)

		_, err := db.Exec("INSERT INTO tblModel (Model_Name, Artist, Source, Supports, Printed) VALUES ('Odd', ?, ?, 2, 'yes')", artistID, sourceID)
		require.NoError(t, err)

		all, err := inv.Models.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.False(t, all[0].Supports)
		assert.False(t, all[0].Printed)
	})

	t.Run("model with missing artist and source still lists", func(t *testing.T) {
		db := setupTestDB(t)
		inv := NewInventory(db, nil)
		tu.MustExec(t, db, "INSERT INTO tblModel (Model_Name, Artist, Source) VALUES ('Stray', 99, 98)")

		all, err := inv.Models.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Stray", all[0].Name)
		assert.Equal(t, int64(99), all[0].ArtistID)
		assert.Empty(t, all[0].ArtistName)
		assert.Empty(t, all[0].SourceName)
	})

	t.Run("Add with unknown artist writes nothing", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		nm := newModel("Ghost")
		nm.Artist = "Nobody"
		_, err := inv.Models.Add(nm)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		nm = newModel("Ghost")
		nm.Source = "Nowhere"
		_, err = inv.Models.Add(nm)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		all, err := inv.Models.All()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Add validates input", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		tc := []struct {
			name  string
			entry models.NewModel
		}{
			{name: "empty name", entry: models.NewModel{Artist: "Ann", Source: "Shop"}},
			{name: "no artist", entry: models.NewModel{Name: "x", Source: "Shop"}},
			{name: "no source", entry: models.NewModel{Name: "x", Artist: "Ann"}},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := inv.Models.Add(tt.entry)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			})
		}
	})

	t.Run("Search keeps insertion order and ignores case", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		for _, name := range []string{"Goblin King", "Orc", "hobgoblin", "GOBLET"} {
			_, err := inv.Models.Add(newModel(name))
			require.NoError(t, err)
		}

		got, err := inv.Models.Search(models.FieldName, "gob")
		require.NoError(t, err)

		names := make([]string, 0, len(got))
		for _, m := range got {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"Goblin King", "hobgoblin", "GOBLET"}, names)
	})

	t.Run("Search other fields", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		nm := newModel("Knight")
		nm.SetName = "Castle Set"
		nm.SourceNote = "kickstarter wave 2"
		_, err := inv.Models.Add(nm)
		require.NoError(t, err)

		got, err := inv.Models.Search(models.FieldSetName, "castle")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = inv.Models.Search(models.FieldSourceNote, "wave")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = inv.Models.Search(models.FieldSourceNote, "nothing")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Search rejects unknown field", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)

		_, err := inv.Models.Search(models.SearchField("Model_Name; DROP TABLE tblModel"), "x")
		assert.ErrorIs(t, err, shared.ErrInvalidField)
		assert.False(t, shared.IsFatal(err))
	})

	t.Run("SearchByReference", func(t *testing.T) {
		inv, artistID, sourceID := seed(t, setupTestDB(t))
		otherArtist, err := inv.Artists.Add(models.Artist{Name: "Bob"})
		require.NoError(t, err)

		_, err = inv.Models.Add(newModel("One"))
		require.NoError(t, err)
		nm := newModel("Two")
		nm.Artist = "Bob"
		_, err = inv.Models.Add(nm)
		require.NoError(t, err)

		got, err := inv.Models.SearchByReference(models.RefArtist, artistID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "One", got[0].Name)

		got, err = inv.Models.SearchByReference(models.RefArtist, otherArtist)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Two", got[0].Name)

		got, err = inv.Models.SearchByReference(models.RefSource, sourceID)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		_, err = inv.Models.SearchByReference(models.Reference("folder"), 1)
		assert.ErrorIs(t, err, shared.ErrInvalidField)
	})

	t.Run("Delete", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		id, err := inv.Models.Add(newModel("Temp"))
		require.NoError(t, err)

		require.NoError(t, inv.Models.Delete(id))

		_, err = inv.Models.Get(id)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, inv.Models.Delete(id), shared.ErrNotFound)
	})
}

func TestArtistRepository(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)

		id, err := inv.Artists.Add(models.Artist{Name: "Ann", Website: "ann.example", Email: "a@b.c", Folder: "ann"})
		require.NoError(t, err)

		all, err := inv.Artists.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, models.Artist{ID: id, Name: "Ann", Website: "ann.example", Email: "a@b.c", Folder: "ann"}, all[0])

		resolved, err := inv.Resolver.ResolveArtistID("Ann")
		require.NoError(t, err)
		assert.Equal(t, id, resolved)
	})

	t.Run("resolver is case sensitive", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		_, err := inv.Resolver.ResolveArtistID("ann")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		_, err := inv.Artists.Add(models.Artist{Name: "Ann"})
		assert.ErrorIs(t, err, shared.ErrDuplicateName)
		assert.False(t, shared.IsFatal(err))
	})

	t.Run("Search ORs every text column", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)

		for _, a := range []models.Artist{
			{Name: "Ann", Email: "ann@mini.example"},
			{Name: "Bob", Website: "minis.example"},
			{Name: "Cy"},
		} {
			_, err := inv.Artists.Add(a)
			require.NoError(t, err)
		}

		got, err := inv.Artists.Search("MINI")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Ann", got[0].Name)
		assert.Equal(t, "Bob", got[1].Name)
	})

	t.Run("Names", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))
		_, err := inv.Artists.Add(models.Artist{Name: "Bob"})
		require.NoError(t, err)

		names, err := inv.Artists.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"Ann", "Bob"}, names)
	})

	t.Run("delete guarded by models", func(t *testing.T) {
		inv, artistID, _ := seed(t, setupTestDB(t))
		modelID, err := inv.Models.Add(newModel("Goblin"))
		require.NoError(t, err)

		err = inv.Artists.Delete(artistID)
		require.ErrorIs(t, err, shared.ErrReferencedByModels)

		var ref *shared.ReferencedError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, 1, ref.Count)

		all, err := inv.Artists.All()
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, inv.Models.Delete(modelID))
		require.NoError(t, inv.Artists.Delete(artistID))

		_, err = inv.Resolver.ResolveArtistID("Ann")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete missing", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)
		assert.ErrorIs(t, inv.Artists.Delete(42), shared.ErrNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)
		_, err := inv.Artists.Add(models.Artist{Name: "  "})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestSourceRepository(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		inv := NewInventory(setupTestDB(t), nil)

		id, err := inv.Sources.Add(models.Source{Name: "Shop", Website: "shop.example"})
		require.NoError(t, err)

		all, err := inv.Sources.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, models.Source{ID: id, Name: "Shop", Website: "shop.example"}, all[0])

		found, err := inv.Sources.Search("Shop")
		require.NoError(t, err)
		assert.Equal(t, []models.Source{{ID: id, Name: "Shop", Website: "shop.example"}}, found)

		resolved, err := inv.Resolver.ResolveSourceID("Shop")
		require.NoError(t, err)
		assert.Equal(t, id, resolved)
	})

	t.Run("Search", func(t *testing.T) {
		inv, _, _ := seed(t, setupTestDB(t))

		got, err := inv.Sources.Search("shop.EX")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = inv.Sources.Search("zzz")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("delete guarded by models", func(t *testing.T) {
		inv, _, sourceID := seed(t, setupTestDB(t))
		for _, name := range []string{"A", "B"} {
			_, err := inv.Models.Add(newModel(name))
			require.NoError(t, err)
		}

		err := inv.Sources.Delete(sourceID)
		var ref *shared.ReferencedError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, 2, ref.Count)
		assert.Equal(t, "source", ref.Kind)

		names, err := inv.Sources.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"Shop"}, names)
	})

	t.Run("unreferenced delete", func(t *testing.T) {
		inv, _, sourceID := seed(t, setupTestDB(t))
		require.NoError(t, inv.Sources.Delete(sourceID))

		all, err := inv.Sources.All()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestCountModelsReferencing(t *testing.T) {
	db := setupTestDB(t)
	inv, artistID, sourceID := seed(t, db)

	n, err := CountModelsReferencing(db, models.RefArtist, artistID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = inv.Models.Add(newModel("One"))
	require.NoError(t, err)

	n, err = CountModelsReferencing(db, models.RefSource, sourceID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = CountModelsReferencing(db, models.Reference("x"), 1)
	assert.ErrorIs(t, err, shared.ErrInvalidField)
}

func TestInventorySearchModels(t *testing.T) {
	inv, _, _ := seed(t, setupTestDB(t))
	_, err := inv.Sources.Add(models.Source{Name: "Fair"})
	require.NoError(t, err)

	_, err = inv.Models.Add(newModel("Goblin"))
	require.NoError(t, err)
	nm := newModel("Troll")
	nm.Source = "Fair"
	_, err = inv.Models.Add(nm)
	require.NoError(t, err)

	t.Run("by artist name", func(t *testing.T) {
		got, err := inv.SearchModels("artist", "Ann")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by source name", func(t *testing.T) {
		got, err := inv.SearchModels("source", "Fair")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Troll", got[0].Name)
	})

	t.Run("unknown name is an empty result", func(t *testing.T) {
		got, err := inv.SearchModels("artist", "Nobody")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("text field", func(t *testing.T) {
		got, err := inv.SearchModels("name", "tro")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Troll", got[0].Name)
	})

	t.Run("column names as fields", func(t *testing.T) {
		got, err := inv.SearchModels("Artist", "Ann")
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = inv.SearchModels("Source", "Fair")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Troll", got[0].Name)

		got, err = inv.SearchModels("Set_Name", "set a")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := inv.SearchModels("Format", "STL")
		assert.ErrorIs(t, err, shared.ErrInvalidField)

		_, err = inv.SearchModels("ARTIST", "Ann")
		assert.ErrorIs(t, err, shared.ErrInvalidField)
	})
}

func TestSearchModelsByModelName(t *testing.T) {
	inv, _, _ := seed(t, setupTestDB(t))
	for _, name := range []string{"Goblin", "Hobgoblin", "Ogre"} {
		_, err := inv.Models.Add(newModel(name))
		require.NoError(t, err)
	}

	got, err := inv.SearchModels("Model_Name", "gob")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, m := range got {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Goblin", "Hobgoblin"}, names)
}
