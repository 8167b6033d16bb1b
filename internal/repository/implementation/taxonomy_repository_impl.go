package implementation

import (
	"context"

	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/mapper"
	"niche-picker-be/internal/model"
	"niche-picker-be/internal/repository/contract"
	"niche-picker-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TaxonomyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaxonomyMapper
}

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepositoryImpl {
	return &TaxonomyRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaxonomyMapper(),
	}
}

var (
	_ contract.TaxonomyRepository = (*TaxonomyRepositoryImpl)(nil)
	_ contract.TaxonomyWriter     = (*TaxonomyRepositoryImpl)(nil)
)

func (r *TaxonomyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TaxonomyRepositoryImpl) Load(ctx context.Context) ([]entity.Industry, error) {
	return r.FindAll(ctx, specification.OrderByPosition{})
}

func (r *TaxonomyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.Industry, error) {
	var rows []*model.Industry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

// ReplaceAll swaps the stored taxonomy for industries inside one transaction.
// Positions follow slice order.
func (r *TaxonomyRepositoryImpl) ReplaceAll(ctx context.Context, industries []entity.Industry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Industry{}).Error; err != nil {
			return err
		}
		if len(industries) == 0 {
			return nil
		}
		rows := make([]*model.Industry, 0, len(industries))
		for i := range industries {
			rows = append(rows, r.mapper.ToModel(&industries[i], i))
		}
		return tx.Create(&rows).Error
	})
}
