// package models defines the data model for the 3D model inventory
package models

import (
	"fmt"
	"strings"
)

// Repository defines the data access operations shared by every catalog store.
//
// T is the persisted row type and N the value accepted by Add.
type Repository[T any, N any] interface {
	All() ([]T, error)          // All returns every row in natural order
	Add(entry N) (int64, error) // Add inserts entry and returns its new ID
	Delete(id int64) error      // Delete removes the row with the given ID
}

// Model is a persisted catalog entry.
//
// ArtistName, SourceName and ArtistFolder are filled by joined reads only.
type Model struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SetName    string `json:"set_name"`
	ArtistID   int64  `json:"artist_id"`
	SourceID   int64  `json:"source_id"`
	SourceNote string `json:"source_note"`
	Supports   bool   `json:"supports"`
	Format     string `json:"format"`
	Printed    bool   `json:"printed"`

	ArtistName   string `json:"artist,omitempty"`
	SourceName   string `json:"source,omitempty"`
	ArtistFolder string `json:"artist_folder,omitempty"`
}

// NewModel describes a model to insert. Artist and Source are names, not IDs.
type NewModel struct {
	Name       string `json:"name"`
	SetName    string `json:"set_name"`
	Artist     string `json:"artist"`
	Source     string `json:"source"`
	SourceNote string `json:"source_note"`
	Supports   bool   `json:"supports"`
	Format     string `json:"format"`
	Printed    bool   `json:"printed"`
}

// Validate checks the fields the store requires.
func (m NewModel) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("model name is required")
	case m.Artist == "":
		return fmt.Errorf("artist is required")
	case m.Source == "":
		return fmt.Errorf("source is required")
	}
	return nil
}

// Artist is a creator models are attributed to. Name is unique.
type Artist struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website"`
	Email   string `json:"email"`
	Folder  string `json:"folder"`
}

// Validate checks the fields the store requires.
func (a Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}

// Source is where models were obtained. Name is unique.
type Source struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website"`
}

// Validate checks the fields the store requires.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("source name is required")
	}
	return nil
}

// SearchField names a searchable text column of a model.
type SearchField string

const (
	FieldName       SearchField = "name"
	FieldSetName    SearchField = "set_name"
	FieldSourceNote SearchField = "source_note"
)

// SearchFields lists every valid [SearchField].
func SearchFields() []SearchField {
	return []SearchField{FieldName, FieldSetName, FieldSourceNote}
}

// ParseSearchField accepts a field name or its column identifier, e.g. "name" or "Model_Name".
func ParseSearchField(name string) (SearchField, bool) {
	switch f := SearchField(name); f {
	case FieldName, FieldSetName, FieldSourceNote:
		return f, true
	}
	for _, f := range SearchFields() {
		if col, _ := f.column(); col == name {
			return f, true
		}
	}
	return "", false
}

// Column returns the database column for f, or false when f is not a known field.
func (f SearchField) Column() (string, bool) {
	parsed, ok := ParseSearchField(string(f))
	if !ok {
		return "", false
	}
	return parsed.column()
}

func (f SearchField) column() (string, bool) {
	switch f {
	case FieldName:
		return "Model_Name", true
	case FieldSetName:
		return "Set_Name", true
	case FieldSourceNote:
		return "Source_Note", true
	default:
		return "", false
	}
}

// Reference is a foreign key a model holds.
type Reference string

const (
	RefArtist Reference = "artist"
	RefSource Reference = "source"
)

// ParseReference accepts "artist"/"source" or the tblModel column names "Artist"/"Source".
func ParseReference(name string) (Reference, bool) {
	for _, r := range []Reference{RefArtist, RefSource} {
		if col, _ := r.column(); name == string(r) || name == col {
			return r, true
		}
	}
	return "", false
}

// Column returns the tblModel column holding the reference, or false when r is unknown.
func (r Reference) Column() (string, bool) {
	parsed, ok := ParseReference(string(r))
	if !ok {
		return "", false
	}
	return parsed.column()
}

func (r Reference) column() (string, bool) {
	switch r {
	case RefArtist:
		return "Artist", true
	case RefSource:
		return "Source", true
	default:
		return "", false
	}
}

// EncodeFlag stores a boolean as 1 or 0.
func EncodeFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DecodeFlag reads a stored flag. Only an integer 1 (or a boolean true) is true.
func DecodeFlag(v any) bool {
	switch x := v.(type) {
	case int64:
		return x == 1
	case int:
		return x == 1
	case bool:
		return x
	default:
		return false
	}
}
