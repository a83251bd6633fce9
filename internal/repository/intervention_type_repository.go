package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intervention-service/internal/model"
)

type InterventionTypeRepository struct {
	db *gorm.DB
}

func NewInterventionTypeRepository(db *gorm.DB) *InterventionTypeRepository {
	return &InterventionTypeRepository{db: db}
}

func (r *InterventionTypeRepository) Create(ctx context.Context, interventionType *model.InterventionType) error {
	return r.db.WithContext(ctx).Create(interventionType).Error
}

func (r *InterventionTypeRepository) GetByID(ctx context.Context, id int64) (*model.InterventionType, error) {
	var interventionType model.InterventionType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&interventionType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &interventionType, nil
}

func (r *InterventionTypeRepository) List(ctx context.Context) ([]model.InterventionType, error) {
	var types []model.InterventionType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *InterventionTypeRepository) Update(ctx context.Context, interventionType *model.InterventionType) error {
	return r.db.WithContext(ctx).Save(interventionType).Error
}

func (r *InterventionTypeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.InterventionType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
