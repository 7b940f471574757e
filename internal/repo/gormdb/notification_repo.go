package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tritogether/internal/domain/coaching"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, athleteID, coachID int) (coaching.Notification, error) {
	model := NotificationModel{
		Status:    string(coaching.StatusPending),
		AthleteID: athleteID,
		CoachID:   coachID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Omit("Athlete", "Coach").Create(&model).Error; err != nil {
		return coaching.Notification{}, err
	}
	return r.GetByID(ctx, model.ID)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int) (coaching.Notification, error) {
	var model NotificationModel
	err := r.db.WithContext(ctx).
		Preload("Athlete").
		Preload("Coach").
		First(&model, "id = ?", id).Error
	if err != nil {
		return coaching.Notification{}, mapError(err)
	}
	return model.toDomain(), nil
}

func (r *NotificationRepository) ListPendingByAthlete(ctx context.Context, athleteID int) ([]coaching.Notification, error) {
	return r.listPending(ctx, "athlete_id = ?", athleteID)
}

func (r *NotificationRepository) ListPendingByCoach(ctx context.Context, coachID int) ([]coaching.Notification, error) {
	return r.listPending(ctx, "coach_id = ?", coachID)
}

func (r *NotificationRepository) listPending(ctx context.Context, cond string, id int) ([]coaching.Notification, error) {
	var models []NotificationModel
	err := r.db.WithContext(ctx).
		Preload("Athlete").
		Preload("Coach").
		Where(cond, id).
		Where("status = ?", string(coaching.StatusPending)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]coaching.Notification, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *NotificationRepository) UpdateStatus(ctx context.Context, id int, status coaching.NotificationStatus) (coaching.Notification, error) {
	res := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return coaching.Notification{}, res.Error
	}
	if res.RowsAffected == 0 {
		return coaching.Notification{}, coaching.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *NotificationRepository) PendingExists(ctx context.Context, athleteID, coachID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("athlete_id = ? AND coach_id = ? AND status = ?", athleteID, coachID, string(coaching.StatusPending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
