package service

import (
	"context"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/pkg/selection"
)

type ISelectionService interface {
	Decode(ctx context.Context, q selection.QueryParams) *selection.Model
	Encode(m *selection.Model) *dto.EncodeSelectionResponse
	View(ctx context.Context, m *selection.Model) (*dto.SelectionView, error)
	ExportJSON(m *selection.Model) (string, error)
	ExportCSV(m *selection.Model) (string, error)
}

type selectionService struct {
	taxonomy ITaxonomyService
	policy   selection.Policy
	logger   logger.ILogger
}

func NewSelectionService(taxonomy ITaxonomyService, policy selection.Policy, log logger.ILogger) ISelectionService {
	return &selectionService{
		taxonomy: taxonomy,
		policy:   policy,
		logger:   log,
	}
}

func (s *selectionService) Decode(ctx context.Context, q selection.QueryParams) *selection.Model {
	m := selection.DecodeWithPolicy(q, s.policy)
	s.logger.Debug("SelectionService", "Decoded query parameters", map[string]interface{}{
		"keys":       len(q),
		"industries": m.Len(),
		"niches":     m.Count(),
		"policy":     s.policy.String(),
	})
	return m
}

func (s *selectionService) Encode(m *selection.Model) *dto.EncodeSelectionResponse {
	return &dto.EncodeSelectionResponse{
		Query:      selection.Encode(m).Values(),
		ShareQuery: selection.ShareQuery(m),
	}
}

// View derives rows, share link and per-industry summary. Industries the
// taxonomy no longer lists are kept and reported with Known=false.
func (s *selectionService) View(ctx context.Context, m *selection.Model) (*dto.SelectionView, error) {
	if m == nil {
		m = selection.New()
	}
	tax, err := s.taxonomy.Get(ctx)
	if err != nil {
		return nil, err
	}

	summary := dto.SelectionSummary{
		SelectedCount: m.Count(),
		Industries:    make([]dto.IndustrySummary, 0, m.Len()),
	}
	for _, industry := range m.Industries() {
		_, known := tax.Find(industry)
		total := tax.NicheCount(industry)
		summary.Industries = append(summary.Industries, dto.IndustrySummary{
			Industry: industry,
			Selected: len(m.Niches(industry)),
			Total:    total,
			Status:   m.StatusOf(industry, total),
			Known:    known,
		})
	}

	encoded := s.Encode(m)
	return &dto.SelectionView{
		Selection:  m,
		Rows:       selection.ToRows(m),
		Query:      encoded.Query,
		ShareQuery: encoded.ShareQuery,
		Summary:    summary,
		Empty:      m.IsEmpty(),
	}, nil
}

func (s *selectionService) ExportJSON(m *selection.Model) (string, error) {
	return selection.ToJSON(m)
}

func (s *selectionService) ExportCSV(m *selection.Model) (string, error) {
	return selection.ToCSV(selection.ToRows(m))
}
