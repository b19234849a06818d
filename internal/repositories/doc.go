// Package repositories implements SQLite persistence for the model inventory.
//
// Every read goes through squirrel-built queries over a single connection and returns a non-nil slice,
// empty when nothing matched. Artist and source names are resolved to IDs explicitly before a model is stored.
//
// Key Implementations:
//   - [ModelRepository] : models joined with their artist and source, field search and reference filters
//   - [ArtistRepository] : artists with a guarded delete
//   - [SourceRepository] : sources with a guarded delete
//   - [EntityResolver] : artist/source name to ID lookups, usable inside a transaction
//
// Artists and sources are never deleted while a model references them. The guard runs in the same
// transaction as the delete; the database does not cascade.
package repositories
