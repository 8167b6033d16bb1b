package nats

import (
	"encoding/json"
	"testing"
	"time"

	"niche-picker-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	e := events.NewSelectionReplaced(events.SelectionChange{SessionID: "s1", NicheCount: 1}, at)

	data, err := Encode(e)
	require.NoError(t, err)

	var wire struct {
		Type       string                 `json:"type"`
		Data       map[string]interface{} `json:"data"`
		OccurredAt time.Time              `json:"occurred_at"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, events.TypeSelectionReplaced, wire.Type)
	assert.Equal(t, "s1", wire.Data["session_id"])
	assert.Equal(t, float64(1), wire.Data["niche_count"])
	assert.True(t, at.Equal(wire.OccurredAt))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "picker.events.SELECTION_REPLACED", Subject(events.TypeSelectionReplaced))
}
