package dto

import (
	"niche-picker-be/pkg/selection"
)

// IndustrySummary is the per-industry badge shown next to each picked industry.
type IndustrySummary struct {
	Industry string           `json:"industry"`
	Selected int              `json:"selected"`
	Total    int              `json:"total"`
	Status   selection.Status `json:"status"`
	Known    bool             `json:"known"` // false when the taxonomy no longer lists the industry
}

type SelectionSummary struct {
	SelectedCount int               `json:"selected_count"`
	Industries    []IndustrySummary `json:"industries"`
}

// SelectionView is everything the host page derives from one selection.
type SelectionView struct {
	Selection  *selection.Model    `json:"selection"`
	Rows       []selection.Row     `json:"rows"`
	Query      map[string][]string `json:"query"`
	ShareQuery string              `json:"share_query"`
	Summary    SelectionSummary    `json:"summary"`
	Empty      bool                `json:"empty"`
}

type EncodeSelectionResponse struct {
	Query      map[string][]string `json:"query"`
	ShareQuery string              `json:"share_query"`
}

type StartSessionRequest struct {
	Query string `json:"query"` // raw page query string, with or without '?'
}

type SessionResponse struct {
	SessionID string         `json:"session_id"`
	Emissions int            `json:"emissions"`
	View      *SelectionView `json:"view"`
}

// Command actions mirror the picker widget's buttons and checkboxes.
const (
	ActionToggle    = "toggle"
	ActionSelectAll = "select_all"
	ActionClear     = "clear"
	ActionRemove    = "remove"
)

type SelectionCommandRequest struct {
	Action   string `json:"action" validate:"required,oneof=toggle select_all clear remove"`
	Industry string `json:"industry" validate:"required"`
	Niche    string `json:"niche" validate:"required_if=Action toggle"`
}
