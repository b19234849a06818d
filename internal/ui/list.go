package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/modelinv/internal/formatter"
	"github.com/desertthunder/modelinv/internal/models"
)

var (
	_ list.Item = modelItem{}
	_ list.Item = artistItem{}
	_ list.Item = sourceItem{}
	_ list.Item = placeholderItem{}
)

const (
	placeholderEmpty    = formatter.PlaceholderEmpty
	placeholderNotFound = formatter.PlaceholderNotFound
)

// modelItem wraps [models.Model] to implement [list.Item].
type modelItem struct {
	model models.Model
}

func (i modelItem) FilterValue() string { return i.model.Name }
func (i modelItem) Title() string       { return i.model.Name }
func (i modelItem) Description() string {
	parts := []string{i.model.ArtistName, i.model.SourceName}
	if i.model.SetName != "" {
		parts = append(parts, i.model.SetName)
	}
	if i.model.Format != "" {
		parts = append(parts, i.model.Format)
	}
	if i.model.Supports {
		parts = append(parts, "supports")
	}
	if i.model.Printed {
		parts = append(parts, "printed")
	}
	return strings.Join(parts, " • ")
}

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	return joinNonEmpty(i.artist.Website, i.artist.Email, i.artist.Folder)
}

// sourceItem wraps [models.Source] to implement [list.Item].
type sourceItem struct {
	source models.Source
}

func (i sourceItem) FilterValue() string { return i.source.Name }
func (i sourceItem) Title() string       { return i.source.Name }
func (i sourceItem) Description() string { return i.source.Website }

// placeholderItem stands in for a result with no rows.
type placeholderItem struct {
	label string
}

func (i placeholderItem) FilterValue() string { return "" }
func (i placeholderItem) Title() string       { return i.label }
func (i placeholderItem) Description() string { return i.label }

// placeholderRows returns the single row shown for an empty result.
// A plain listing shows "empty"; a search shows "Not Found".
func placeholderRows(query string) []list.Item {
	return []list.Item{placeholderItem{label: formatter.PlaceholderLabel(query != "")}}
}

func toItems[T any](rows []T, wrap func(T) list.Item, query string) []list.Item {
	if len(rows) == 0 {
		return placeholderRows(query)
	}
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = wrap(r)
	}
	return items
}

// itemID returns the stored ID behind an item, or false for placeholders.
func itemID(item list.Item) (int64, string, bool) {
	switch it := item.(type) {
	case modelItem:
		return it.model.ID, fmt.Sprintf("model %q", it.model.Name), true
	case artistItem:
		return it.artist.ID, fmt.Sprintf("artist %q", it.artist.Name), true
	case sourceItem:
		return it.source.ID, fmt.Sprintf("source %q", it.source.Name), true
	default:
		return 0, "", false
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " • ")
}
