package events

import "time"

const (
	TypeSessionStarted    = "SESSION_STARTED"
	TypeSelectionReplaced = "SELECTION_REPLACED"
)

// SelectionChange describes an accepted emission. It is what travels on the
// in-process bus and, when enabled, on NATS.
type SelectionChange struct {
	SessionID  string   `json:"session_id"`
	Industries []string `json:"industries"`
	NicheCount int      `json:"niche_count"`
	ShareQuery string   `json:"share_query"`
	Emission   int      `json:"emission"`
}

func (c SelectionChange) payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":  c.SessionID,
		"industries":  c.Industries,
		"niche_count": c.NicheCount,
		"share_query": c.ShareQuery,
		"emission":    c.Emission,
	}
}

func NewSessionStarted(c SelectionChange, at time.Time) BaseEvent {
	return BaseEvent{Type: TypeSessionStarted, Data: c.payload(), OccurredAt: at}
}

func NewSelectionReplaced(c SelectionChange, at time.Time) BaseEvent {
	return BaseEvent{Type: TypeSelectionReplaced, Data: c.payload(), OccurredAt: at}
}
