// Package entity holds the in-memory mirror of a remote collection: the
// per-kind store with its merge rules and the hydration reconciler that
// backfills records a sparse list endpoint leaves incomplete.
package entity

// Record is the minimal shape shared by every remote-backed entity kind.
type Record interface {
	EntityID() string
}

// Pagination mirrors the list envelope's pagination block.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
