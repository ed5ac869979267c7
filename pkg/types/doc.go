// Package types defines the Waymark domain model: tagged entity IDs,
// entity kinds with their closed per-playthrough status sets, the
// Entity/Thread/Game/Playthrough records, the Store interface, and the
// standard error values shared across the system.
package types
