package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"intervention-service/internal/model"
)

type InterventionRepository struct {
	db *gorm.DB
}

func NewInterventionRepository(db *gorm.DB) *InterventionRepository {
	return &InterventionRepository{db: db}
}

func (r *InterventionRepository) Create(ctx context.Context, intervention *model.Intervention) error {
	return r.db.WithContext(ctx).Create(intervention).Error
}

// CreateBatch inserts generated interventions in chunks inside one
// transaction, so a failed bulk generation leaves nothing behind.
func (r *InterventionRepository) CreateBatch(ctx context.Context, interventions []model.Intervention) error {
	if len(interventions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(interventions, 200).Error
}

func (r *InterventionRepository) GetByID(ctx context.Context, id int64) (*model.Intervention, error) {
	var intervention model.Intervention
	err := r.db.WithContext(ctx).
		Preload("InterventionType").
		Where("id = ?", id).
		First(&intervention).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &intervention, nil
}

func (r *InterventionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Intervention{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type InterventionListFilter struct {
	TechnicianID *int64
	From         *time.Time
	To           *time.Time
}

func (r *InterventionRepository) List(ctx context.Context, filter InterventionListFilter) ([]model.Intervention, error) {
	var interventions []model.Intervention
	query := r.db.WithContext(ctx).Model(&model.Intervention{}).Preload("InterventionType")

	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.From != nil {
		query = query.Where("start_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_at < ?", *filter.To)
	}

	if err := query.Order("start_at ASC").Find(&interventions).Error; err != nil {
		return nil, err
	}
	return interventions, nil
}

// Upcoming returns the next planned visits after the given instant, flattened
// with technician and type names for the dashboard.
func (r *InterventionRepository) Upcoming(ctx context.Context, after time.Time, limit int) ([]model.UpcomingIntervention, error) {
	var rows []model.UpcomingIntervention
	err := r.db.WithContext(ctx).
		Table("interventions AS i").
		Select(`i.id AS intervention_id,
			i.address AS address,
			i.start_at AS start_at,
			i.end_at AS end_at,
			COALESCE(u.first_name, '') AS technician_first_name,
			COALESCE(u.last_name, '') AS technician_last_name,
			t.name AS intervention_type`).
		Joins("JOIN intervention_types t ON t.id = i.intervention_type_id").
		Joins("LEFT JOIN users u ON u.id = i.technician_id").
		Where("i.start_at >= ?", after).
		Order("i.start_at ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyTypeCount is one aggregation row: interventions per calendar month
// and type name.
type MonthlyTypeCount struct {
	Month    int
	TypeName string
	Count    int64
}

func (r *InterventionRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]MonthlyTypeCount, error) {
	var rows []MonthlyTypeCount
	err := r.db.WithContext(ctx).
		Table("interventions AS i").
		Select(`EXTRACT(MONTH FROM i.start_at)::int AS month,
			t.name AS type_name,
			COUNT(*) AS count`).
		Joins("JOIN intervention_types t ON t.id = i.intervention_type_id").
		Where("i.start_at >= ?", since).
		Group("1, 2").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteRange removes interventions of the given technicians inside
// [from, to). Returns the number of deleted rows.
func (r *InterventionRepository) DeleteRange(ctx context.Context, technicianIDs []int64, from, to time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("technician_id IN ?", technicianIDs).
		Where("start_at >= ? AND start_at < ?", from, to).
		Delete(&model.Intervention{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
