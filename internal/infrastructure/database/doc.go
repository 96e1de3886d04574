// Package database manages the local SQLite database.
//
// The bridge keeps only one thing locally: the state-history log written
// after each successful device poll. Durable device records live in the
// remote document store, so the schema here is small enough to apply
// inline at open time instead of through a migration framework.
package database
