package filter

import "time"

// Preset is a saved, named filter configuration.
type Preset struct {
	Name      string    `json:"name"`
	Filter    *Filter   `json:"filter"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPreset creates a preset with both timestamps set to now.
func NewPreset(name string, f *Filter) *Preset {
	now := time.Now().UTC()
	return &Preset{
		Name:      name,
		Filter:    f,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
