// Package repository resolves definition ids to Definitions.
//
// Memory is the run-time repository the resolver reads from. It is filled
// either from YAML files (LoadPaths) or from a SQL database (SQLStore.Load),
// so no I/O happens while provenance is being resolved.
//
// SQLStore also persists definitions (Import) and writes resolved
// provenance descriptors back (SaveProvenance). The CLI uses it with the
// SQLite driver; any database/sql driver accepting "?" placeholders and
// ON CONFLICT upserts works.
package repository
