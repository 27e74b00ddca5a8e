// Package project wires the sqlsync core into the operations named by
// the CLI surface (§6): generate, status, sync, resolve, rollback, and
// mark-applied. It also resolves the configured schema traversal tree
// into the ordered source-file list the core's differ consumes — the one
// external-boundary concern §1 explicitly excludes from the core.
//
// Grounded on sqlsync.dev/sqlsync/pkg/project, the teacher's equivalent
// orchestration layer tying a root directory and an injected collaborator
// (there, a formatter; here, the loaded *config.Config) into a single
// Project type that every command operates against.
package project
