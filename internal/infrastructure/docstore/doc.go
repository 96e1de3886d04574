// Package docstore provides the client for the remote JSON document store
// that holds durable device records and per-user device lists.
//
// The store exposes a simple whole-document protocol: GET reads a document,
// PUT replaces it, DELETE removes it. Documents are addressed by
// slash-separated paths ({base_url}/{path}.json). There are no partial
// updates or transactions; consistency is last-write-wins by design, since
// every writer replaces complete records.
package docstore
