// Package models defines the catalog entities and the persistence interfaces used by the 3D model inventory.
//
// The package contains two categories of types:
//
// 1. Persisted entities: rows read back from the database
//   - [Model] : a printable model, carrying artist and source IDs plus joined display names
//   - [Artist] : the creator a model is attributed to
//   - [Source] : where a model was obtained
//
// 2. Requests: values handed to the store for insertion
//   - [NewModel] : a model described by artist and source names, resolved to IDs on insert
//
// [SearchField] and [Reference] are closed enumerations validated before any query is built.
// The Repository[T, N] interface defines the list/add/delete operations every store shares.
package models
