package domain

import (
	"context"
	"io"
	"time"
)

// RegistrationListing is the admin list response. Stale is set when a refresh failed and the
// previously fetched data is being served instead.
type RegistrationListing struct {
	Registrations []*Registration    `json:"registrations"`
	Total         int                `json:"total"`
	Matched       int                `json:"matched"`
	Filter        RegistrationFilter `json:"filter"`
	FetchedAt     time.Time          `json:"fetched_at"`
	Stale         bool               `json:"stale"`
}

// AdminService defines the dashboard's query and mutation operations.
type AdminService interface {
	// FetchAll reads the whole collection from the store and replaces the cached view.
	FetchAll(ctx context.Context) ([]*Registration, error)
	// List filters the cached view, fetching first on a cache miss or when refresh is set.
	List(ctx context.Context, filter RegistrationFilter, refresh bool) (*RegistrationListing, error)
	// Delete hard-deletes one registration and removes it from the cached view.
	Delete(ctx context.Context, id string) error
	// Export writes the filtered view as CSV to w and returns the suggested filename.
	Export(ctx context.Context, filter RegistrationFilter, w io.Writer) (string, error)
}
