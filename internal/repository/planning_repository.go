package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intervention-service/internal/model"
)

type PlanningRepository struct {
	db *gorm.DB
}

func NewPlanningRepository(db *gorm.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

func (r *PlanningRepository) CreateModel(ctx context.Context, planningModel *model.PlanningModel) error {
	return r.db.WithContext(ctx).Create(planningModel).Error
}

func (r *PlanningRepository) ListModels(ctx context.Context) ([]model.PlanningModel, error) {
	var models []model.PlanningModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

// GetModelByID loads the model with its slots and their nested types.
func (r *PlanningRepository) GetModelByID(ctx context.Context, id int64) (*model.PlanningModel, error) {
	var planningModel model.PlanningModel
	err := r.db.WithContext(ctx).
		Preload("ModelInterventions", func(db *gorm.DB) *gorm.DB {
			return db.Order("intervention_time ASC")
		}).
		Preload("ModelInterventions.InterventionType").
		Where("id = ?", id).
		First(&planningModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &planningModel, nil
}

func (r *PlanningRepository) DeleteModel(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.PlanningModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PlanningRepository) CreateSlot(ctx context.Context, slot *model.ModelIntervention) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *PlanningRepository) GetSlotByID(ctx context.Context, id int64) (*model.ModelIntervention, error) {
	var slot model.ModelIntervention
	err := r.db.WithContext(ctx).
		Preload("InterventionType").
		Where("id = ?", id).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *PlanningRepository) DeleteSlot(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.ModelIntervention{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
