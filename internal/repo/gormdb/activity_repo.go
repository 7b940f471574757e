package gormdb

import (
	"context"

	"gorm.io/gorm"

	"tritogether/internal/domain/coaching"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity coaching.Activity) (coaching.Activity, error) {
	model := ActivityModel{
		Description:  activity.Description,
		Date:         activity.Date,
		AthleteID:    activity.AthleteID,
		DisciplineID: activity.Discipline.ID,
	}
	if err := r.db.WithContext(ctx).Omit("Discipline").Create(&model).Error; err != nil {
		return coaching.Activity{}, err
	}
	return r.GetByID(ctx, model.ID)
}

func (r *ActivityRepository) GetByID(ctx context.Context, id int) (coaching.Activity, error) {
	var model ActivityModel
	err := r.db.WithContext(ctx).
		Preload("Discipline").
		First(&model, "id = ?", id).Error
	if err != nil {
		return coaching.Activity{}, mapError(err)
	}
	return model.toDomain(), nil
}

func (r *ActivityRepository) ListByAthleteMonth(ctx context.Context, athleteID, month int) ([]coaching.Activity, error) {
	var models []ActivityModel
	err := r.db.WithContext(ctx).
		Preload("Discipline").
		Where("athlete_id = ? AND date_part('month', date) = ?", athleteID, month).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]coaching.Activity, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity coaching.Activity) (coaching.Activity, error) {
	res := r.db.WithContext(ctx).Model(&ActivityModel{}).
		Where("id = ?", activity.ID).
		Updates(map[string]any{
			"description":   activity.Description,
			"date":          activity.Date,
			"discipline_id": activity.Discipline.ID,
		})
	if res.Error != nil {
		return coaching.Activity{}, res.Error
	}
	if res.RowsAffected == 0 {
		return coaching.Activity{}, coaching.ErrNotFound
	}
	return r.GetByID(ctx, activity.ID)
}

func (r *ActivityRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&ActivityModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return coaching.ErrNotFound
	}
	return nil
}
