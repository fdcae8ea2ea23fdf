package domain

import "time"

// ProviderResult is the outcome of syncing a single provider.
type ProviderResult struct {
	Provider    string `json:"provider"`
	Success     bool   `json:"success"`
	SyncedCount int    `json:"synced_count,omitempty"`
	Error       string `json:"error,omitempty"`
}

// SyncRunResult aggregates the outcome of one full sync run across all
// configured providers. Success is true only when no provider failed.
type SyncRunResult struct {
	TotalSynced     int              `json:"total_synced"`
	ProviderResults []ProviderResult `json:"provider_results"`
	Errors          []string         `json:"errors"`
	Success         bool             `json:"success"`

	// SyncedAt is set when the result is stored as the last sync status.
	SyncedAt time.Time `json:"synced_at,omitempty"`
}
