package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/internal/repository/memory"
	"niche-picker-be/internal/service"
	internalWS "niche-picker-be/internal/websocket"
	"niche-picker-be/pkg/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTaxonomy struct{}

func (fixedTaxonomy) Load(ctx context.Context) ([]entity.Industry, error) {
	return []entity.Industry{{Name: "Retail", Niches: []string{"Shoes", "Apparel"}}}, nil
}

func newHandler(t *testing.T) (*PickerHandler, service.ISessionService) {
	t.Helper()
	log := logger.NewNop()
	tax := service.NewTaxonomyService(fixedTaxonomy{}, log)
	sel := service.NewSelectionService(tax, selection.PolicyIndustriesOnlyFallback, log)
	sessions := service.NewSessionService(memory.NewSessionRepository(time.Minute), sel, tax, nil, log)
	return NewPickerHandler(sessions, internalWS.NewHub(nil, log), log), sessions
}

func TestHandleEmissionReplacesSelection(t *testing.T) {
	h, sessions := newHandler(t)
	ctx := context.Background()
	started, err := sessions.Start(ctx, &dto.StartSessionRequest{Query: "industries=Retail&n_Retail=Shoes"})
	require.NoError(t, err)

	reply := h.HandleEmission(ctx, started.SessionID, []byte(`{"Retail":["Apparel"]}`))
	assert.Nil(t, reply)

	got, err := sessions.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apparel"}, got.View.Selection.Niches("Retail"))
	assert.Equal(t, 1, got.Emissions)

	// An empty object is a valid emission: everything deselected.
	assert.Nil(t, h.HandleEmission(ctx, started.SessionID, []byte(`{}`)))
	got, err = sessions.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.True(t, got.View.Empty)
}

func TestHandleEmissionRejectsMalformed(t *testing.T) {
	h, sessions := newHandler(t)
	ctx := context.Background()
	started, err := sessions.Start(ctx, &dto.StartSessionRequest{Query: "industries=Retail"})
	require.NoError(t, err)

	reply := h.HandleEmission(ctx, started.SessionID, []byte(`["Retail"]`))
	require.NotNil(t, reply)

	var frame Frame
	require.NoError(t, json.Unmarshal(reply, &frame))
	assert.Equal(t, FrameError, frame.Type)
	assert.NotEmpty(t, frame.Message)

	got, err := sessions.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Emissions)
	assert.True(t, got.View.Selection.Has("Retail"))
}

func TestHandleEmissionUnknownSession(t *testing.T) {
	h, _ := newHandler(t)

	reply := h.HandleEmission(context.Background(), "missing", []byte(`{}`))

	var frame Frame
	require.NoError(t, json.Unmarshal(reply, &frame))
	assert.Equal(t, FrameError, frame.Type)
	assert.Contains(t, frame.Message, service.ErrSessionNotFound.Error())
}
