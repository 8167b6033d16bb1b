package store

import (
	"time"

	"niche-picker-be/pkg/selection"
)

// PickerSession is the page-session state of one picker: the current
// selection plus bookkeeping. It lives only as long as the session TTL.
type PickerSession struct {
	ID        string           `json:"id"`
	Selection *selection.Model `json:"selection"`
	Emissions int              `json:"emissions"` // accepted widget emissions so far
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Replace swaps in a complete replacement selection. The old one is
// discarded: industries missing from next are deselected.
func (s *PickerSession) Replace(next *selection.Model, at time.Time) {
	if next == nil {
		next = selection.New()
	}
	s.Selection = next.Clone()
	s.Emissions++
	s.UpdatedAt = at
}
