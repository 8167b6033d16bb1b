package service

import (
	"context"
	"sync"
	"testing"

	"niche-picker-be/internal/dto"
	"niche-picker-be/pkg/events"
	"niche-picker-be/pkg/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartDecodesQuery(t *testing.T) {
	f := newFixture(t, selection.PolicyIndustriesOnlyFallback)

	res, err := f.sessions.Start(context.Background(), &dto.StartSessionRequest{
		Query: "?industries=Retail&n_Retail=Shoes&n_Retail=Apparel",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, 0, res.Emissions)
	assert.Equal(t, []string{"Shoes", "Apparel"}, res.View.Selection.Niches("Retail"))
	assert.Equal(t, []string{events.TypeSessionStarted}, f.publisher.types())
}

func TestSessionStartWithoutQuery(t *testing.T) {
	f := newFixture(t, 0)

	res, err := f.sessions.Start(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, res.View.Empty)
}

func TestSessionReplaceIsTotal(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	started, err := f.sessions.Start(ctx, &dto.StartSessionRequest{Query: "industries=Retail&industries=Tech"})
	require.NoError(t, err)

	next := selection.New()
	next.Set("Tech", "AI")
	res, err := f.sessions.Replace(ctx, started.SessionID, next)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Emissions)
	assert.Equal(t, []string{"Tech"}, res.View.Selection.Industries())

	// The stored copy is independent of the caller's model.
	next.Set("Retail", "Shoes")
	got, err := f.sessions.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech"}, got.View.Selection.Industries())

	assert.Equal(t, []string{events.TypeSessionStarted, events.TypeSelectionReplaced}, f.publisher.types())
	replaced := f.publisher.events[1].Payload()
	assert.Equal(t, started.SessionID, replaced["session_id"])
	assert.Equal(t, 1, replaced["niche_count"])
	assert.Equal(t, 1, replaced["emission"])
}

func TestSessionReplaceErrors(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.sessions.Replace(ctx, "missing", selection.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	started, err := f.sessions.Start(ctx, nil)
	require.NoError(t, err)
	_, err = f.sessions.Replace(ctx, started.SessionID, nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSessionReplaceSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	started, err := f.sessions.Start(ctx, nil)
	require.NoError(t, err)

	f.publisher.err = errBoom
	next := selection.New()
	next.Set("Retail")
	res, err := f.sessions.Replace(ctx, started.SessionID, next)
	require.NoError(t, err)
	assert.Equal(t, []string{"Retail"}, res.View.Selection.Industries())
}

func TestSessionApplyCommands(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	started, err := f.sessions.Start(ctx, nil)
	require.NoError(t, err)
	id := started.SessionID

	apply := func(cmd dto.SelectionCommandRequest) *dto.SessionResponse {
		t.Helper()
		res, err := f.sessions.Apply(ctx, id, &cmd)
		require.NoError(t, err)
		return res
	}

	res := apply(dto.SelectionCommandRequest{Action: dto.ActionToggle, Industry: "Retail", Niche: "Shoes"})
	assert.Equal(t, []string{"Shoes"}, res.View.Selection.Niches("Retail"))

	res = apply(dto.SelectionCommandRequest{Action: dto.ActionSelectAll, Industry: "Retail"})
	assert.Equal(t, []string{"Shoes", "Apparel", "Jewelry"}, res.View.Selection.Niches("Retail"))
	assert.Equal(t, selection.StatusAll, res.View.Summary.Industries[0].Status)

	res = apply(dto.SelectionCommandRequest{Action: dto.ActionToggle, Industry: "Retail", Niche: "Shoes"})
	assert.Equal(t, []string{"Apparel", "Jewelry"}, res.View.Selection.Niches("Retail"))

	res = apply(dto.SelectionCommandRequest{Action: dto.ActionClear, Industry: "Retail"})
	assert.True(t, res.View.Selection.Has("Retail"))
	assert.Empty(t, res.View.Selection.Niches("Retail"))

	res = apply(dto.SelectionCommandRequest{Action: dto.ActionRemove, Industry: "Retail"})
	assert.True(t, res.View.Empty)
	assert.Equal(t, 5, res.Emissions)
}

func TestSessionApplyRejects(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	started, err := f.sessions.Start(ctx, nil)
	require.NoError(t, err)

	_, err = f.sessions.Apply(ctx, started.SessionID, &dto.SelectionCommandRequest{Action: dto.ActionSelectAll, Industry: "Mining"})
	assert.ErrorIs(t, err, ErrUnknownIndustry)

	_, err = f.sessions.Apply(ctx, started.SessionID, &dto.SelectionCommandRequest{Action: "explode", Industry: "Retail"})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	got, err := f.sessions.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Emissions)
}

func TestSessionApplyConcurrentTogglesAllLand(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	started, err := f.sessions.Start(ctx, &dto.StartSessionRequest{Query: "industries=Retail"})
	require.NoError(t, err)

	const rounds = 50
	niches := []string{"Shoes", "Apparel", "Jewelry"}
	var wg sync.WaitGroup
	for _, niche := range niches {
		wg.Add(1)
		go func(niche string) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				_, err := f.sessions.Apply(ctx, started.SessionID, &dto.SelectionCommandRequest{
					Action:   dto.ActionToggle,
					Industry: "Retail",
					Niche:    niche,
				})
				assert.NoError(t, err)
			}
		}(niche)
	}
	wg.Wait()

	got, err := f.sessions.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, rounds*len(niches), got.Emissions)
	// An even number of toggles per niche leaves each one off.
	assert.True(t, got.View.Selection.Has("Retail"))
	assert.Empty(t, got.View.Selection.Niches("Retail"))
}

func TestSessionEnd(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	started, err := f.sessions.Start(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, f.sessions.End(ctx, started.SessionID))
	_, err = f.sessions.Get(ctx, started.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
