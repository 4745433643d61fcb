// Package store defines the persistence interfaces of the application
// and shared database plumbing. Interfaces live here; the SQLite
// implementations live in internal/platform/sqlite so services depend
// only on abstractions.
package store
