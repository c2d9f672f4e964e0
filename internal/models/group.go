package models

// GroupPreset represents a reusable participant list.
// Presets let a device prefill recurring dutch-pay groups.
type GroupPreset struct {
	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	// Names are unique per device; saving an existing name replaces it.
	Name string `json:"name"`

	// Members is the list of participant names in this group.
	Members []string `json:"members"`

	// UpdatedAt is the Unix timestamp when the preset was last saved.
	UpdatedAt int64 `json:"updated_at"`
}
