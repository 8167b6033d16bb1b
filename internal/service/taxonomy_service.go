package service

import (
	"context"
	"fmt"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const taxonomyCacheKey = "taxonomy"

type ITaxonomyService interface {
	// Get returns the taxonomy, loading it on first use.
	Get(ctx context.Context) (*entity.Taxonomy, error)
	// Reload drops the cached copy and reads the source again.
	Reload(ctx context.Context) (*entity.Taxonomy, error)
	Response(ctx context.Context) (*dto.TaxonomyResponse, error)
}

type taxonomyService struct {
	repo   contract.TaxonomyRepository
	cache  *cache.Cache
	logger logger.ILogger
}

func NewTaxonomyService(repo contract.TaxonomyRepository, log logger.ILogger) ITaxonomyService {
	return &taxonomyService{
		repo:   repo,
		cache:  cache.New(cache.NoExpiration, 0),
		logger: log,
	}
}

func (s *taxonomyService) Get(ctx context.Context) (*entity.Taxonomy, error) {
	if x, found := s.cache.Get(taxonomyCacheKey); found {
		return x.(*entity.Taxonomy), nil
	}
	return s.Reload(ctx)
}

func (s *taxonomyService) Reload(ctx context.Context) (*entity.Taxonomy, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("TaxonomyService", "Failed to load taxonomy", map[string]interface{}{"error": err})
		return nil, fmt.Errorf("%w: %v", ErrTaxonomyLoad, err)
	}

	tax := entity.NewTaxonomy(records)
	if dropped := len(records) - tax.Len(); dropped > 0 {
		s.logger.Warn("TaxonomyService", "Skipped blank or duplicate industries", map[string]interface{}{"dropped": dropped})
	}
	s.cache.Set(taxonomyCacheKey, tax, cache.NoExpiration)
	s.logger.Info("TaxonomyService", "Taxonomy loaded", map[string]interface{}{"industries": tax.Len()})
	return tax, nil
}

func (s *taxonomyService) Response(ctx context.Context) (*dto.TaxonomyResponse, error) {
	tax, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.TaxonomyResponse{Industries: make([]dto.TaxonomyIndustry, 0, tax.Len())}
	for _, ind := range tax.Industries {
		out.Industries = append(out.Industries, dto.TaxonomyIndustry{Industry: ind.Name, Niches: ind.Niches})
	}
	return out, nil
}
