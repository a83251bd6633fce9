package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intervention-service/internal/model"
)

type ZoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

func (r *ZoneRepository) Create(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *ZoneRepository) GetByID(ctx context.Context, id int64) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&zone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &zone, nil
}

func (r *ZoneRepository) List(ctx context.Context) ([]model.Zone, error) {
	var zones []model.Zone
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *ZoneRepository) Update(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

func (r *ZoneRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Zone{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
