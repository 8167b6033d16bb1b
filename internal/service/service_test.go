package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/internal/repository/memory"
	"niche-picker-be/pkg/events"
	"niche-picker-be/pkg/selection"
)

type staticTaxonomyRepo struct {
	industries []entity.Industry
	err        error
	loads      int
}

func (r *staticTaxonomyRepo) Load(ctx context.Context) ([]entity.Industry, error) {
	r.loads++
	if r.err != nil {
		return nil, r.err
	}
	return r.industries, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func sampleTaxonomy() []entity.Industry {
	return []entity.Industry{
		{Name: "Retail", Niches: []string{"Shoes", "Apparel", "Jewelry"}},
		{Name: "Tech", Niches: []string{"SaaS", "AI"}},
		{Name: "Food & Beverage", Niches: []string{"Coffee"}},
	}
}

type fixture struct {
	taxonomyRepo *staticTaxonomyRepo
	publisher    *recordingPublisher
	taxonomy     ITaxonomyService
	selection    ISelectionService
	sessions     ISessionService
}

func newFixture(t *testing.T, policy selection.Policy) *fixture {
	t.Helper()
	log := logger.NewNop()
	repo := &staticTaxonomyRepo{industries: sampleTaxonomy()}
	pub := &recordingPublisher{}
	tax := NewTaxonomyService(repo, log)
	sel := NewSelectionService(tax, policy, log)
	sessions := NewSessionService(memory.NewSessionRepository(time.Hour), sel, tax, pub, log)
	return &fixture{
		taxonomyRepo: repo,
		publisher:    pub,
		taxonomy:     tax,
		selection:    sel,
		sessions:     sessions,
	}
}

var errBoom = errors.New("boom")
