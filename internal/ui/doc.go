// Package ui implements an interactive terminal browser for the model inventory using bubbletea's Elm architecture.
//
// The browser has three tabs, one per store:
//  1. [ModelsTab] : every model with its artist and source, searchable by name, set, note, artist or source
//  2. [ArtistsTab] : artists, searched across every text column
//  3. [SourcesTab] : sources, searched by name or website
//
// The (view) [Model] implements the standard Init/Update/View pattern, receiving store results via the Msg union type.
// Reads always return a row to show: an empty table gets an "empty" placeholder and a search with no match gets "Not Found".
//
// Deleting an artist or source still referenced by models is refused by the store; the refusal is shown in the status line.
// Keyboard navigation uses vim-style bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
