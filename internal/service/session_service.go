package service

import (
	"context"
	"fmt"
	"time"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/internal/repository/contract"
	"niche-picker-be/pkg/events"
	"niche-picker-be/pkg/selection"
	"niche-picker-be/pkg/store"

	"github.com/google/uuid"
)

// ISessionService owns the one writable copy of a page session's selection.
// Every write is a complete replacement; nothing is merged.
type ISessionService interface {
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Replace(ctx context.Context, sessionID string, next *selection.Model) (*dto.SessionResponse, error)
	Apply(ctx context.Context, sessionID string, cmd *dto.SelectionCommandRequest) (*dto.SessionResponse, error)
	End(ctx context.Context, sessionID string) error
}

type sessionService struct {
	repo      contract.SessionRepository
	selection ISelectionService
	taxonomy  ITaxonomyService
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewSessionService(
	repo contract.SessionRepository,
	selectionService ISelectionService,
	taxonomy ITaxonomyService,
	publisher IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		repo:      repo,
		selection: selectionService,
		taxonomy:  taxonomy,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	raw := ""
	if req != nil {
		raw = req.Query
	}
	initial := s.selection.Decode(ctx, selection.ParseQuery(raw))

	now := s.now()
	session := &store.PickerSession{
		ID:        uuid.NewString(),
		Selection: initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.publish(ctx, events.NewSessionStarted(s.change(session), now))
	return s.respond(ctx, session)
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, session)
}

// Replace treats next as authoritative and total: industries absent from it
// are deselected.
func (s *sessionService) Replace(ctx context.Context, sessionID string, next *selection.Model) (*dto.SessionResponse, error) {
	if next == nil {
		return nil, ErrInvalidSelection
	}
	return s.update(ctx, sessionID, func(*selection.Model) *selection.Model { return next })
}

// Apply runs a widget command against the current selection and stores the
// result as a replacement. The command sees the selection as of its own
// write, so concurrent commands on one session all land.
func (s *sessionService) Apply(ctx context.Context, sessionID string, cmd *dto.SelectionCommandRequest) (*dto.SessionResponse, error) {
	if cmd == nil {
		return nil, ErrUnknownCommand
	}

	var edit func(current *selection.Model) *selection.Model
	switch cmd.Action {
	case dto.ActionToggle:
		edit = func(current *selection.Model) *selection.Model { return current.ToggleNiche(cmd.Industry, cmd.Niche) }
	case dto.ActionSelectAll:
		tax, err := s.taxonomy.Get(ctx)
		if err != nil {
			return nil, err
		}
		ind, ok := tax.Find(cmd.Industry)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownIndustry, cmd.Industry)
		}
		edit = func(current *selection.Model) *selection.Model { return current.SelectAll(ind.Name, ind.Niches) }
	case dto.ActionClear:
		edit = func(current *selection.Model) *selection.Model { return current.Clear(cmd.Industry) }
	case dto.ActionRemove:
		edit = func(current *selection.Model) *selection.Model { return current.Without(cmd.Industry) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Action)
	}

	return s.update(ctx, sessionID, edit)
}

// update swaps in edit's result as one repository write and publishes the
// replacement afterwards.
func (s *sessionService) update(ctx context.Context, sessionID string, edit func(current *selection.Model) *selection.Model) (*dto.SessionResponse, error) {
	now := s.now()
	session, ok, err := s.repo.Update(ctx, sessionID, func(session *store.PickerSession) error {
		current := session.Selection
		if current == nil {
			current = selection.New()
		}
		session.Replace(edit(current), now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.publish(ctx, events.NewSelectionReplaced(s.change(session), now))
	return s.respond(ctx, session)
}

func (s *sessionService) End(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *sessionService) load(ctx context.Context, sessionID string) (*store.PickerSession, error) {
	session, ok, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Selection == nil {
		session.Selection = selection.New()
	}
	return session, nil
}

func (s *sessionService) respond(ctx context.Context, session *store.PickerSession) (*dto.SessionResponse, error) {
	view, err := s.selection.View(ctx, session.Selection)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		SessionID: session.ID,
		Emissions: session.Emissions,
		View:      view,
	}, nil
}

func (s *sessionService) change(session *store.PickerSession) events.SelectionChange {
	return events.SelectionChange{
		SessionID:  session.ID,
		Industries: session.Selection.Industries(),
		NicheCount: session.Selection.Count(),
		ShareQuery: selection.ShareQuery(session.Selection),
		Emission:   session.Emissions,
	}
}

func (s *sessionService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SessionService", "Failed to publish event", map[string]interface{}{"error": err.Error(), "type": event.EventType()})
	}
}
