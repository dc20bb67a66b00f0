// Package pipeline accumulates conversion results pushed by the host into a
// result store and keeps a rendered, optionally filtered view of it.
//
// The Presenter owns all state. Ingestion feeds it records from the event
// bus, DropController resets it and submits new work, FilterGateway issues
// sequenced filter requests whose stale responses are discarded, Renderer
// projects records into rows and ExportController copies the visible links.
package pipeline
