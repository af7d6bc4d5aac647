// Package mapstore persists splinemap.MapSnapshot values to a SQLite file,
// giving the serialization sentence in spec §6 a concrete, queryable home
// (the original implementation left map persistence to ad hoc pickling).
// Each saved snapshot gets a UUID so a caller can keep a timestamped
// history of a single map across a session.
package mapstore
