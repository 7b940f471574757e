package gormdb

import (
	"context"

	"gorm.io/gorm"

	"tritogether/internal/domain/coaching"
)

type CoachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) Create(ctx context.Context, coach coaching.Coach, passwordDigest string) (coaching.Coach, error) {
	model := CoachModel{
		Name:     coach.Name,
		Email:    coach.Email,
		Password: passwordDigest,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return coaching.Coach{}, err
	}
	return model.toDomain(), nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id int) (coaching.Coach, error) {
	var model CoachModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return coaching.Coach{}, mapError(err)
	}
	return model.toDomain(), nil
}

func (r *CoachRepository) List(ctx context.Context) ([]coaching.Coach, error) {
	var models []CoachModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]coaching.Coach, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *CoachRepository) Update(ctx context.Context, coach coaching.Coach) (coaching.Coach, error) {
	res := r.db.WithContext(ctx).Model(&CoachModel{}).
		Where("id = ?", coach.ID).
		Updates(map[string]any{"name": coach.Name, "email": coach.Email})
	if res.Error != nil {
		return coaching.Coach{}, res.Error
	}
	if res.RowsAffected == 0 {
		return coaching.Coach{}, coaching.ErrNotFound
	}
	return r.GetByID(ctx, coach.ID)
}

func (r *CoachRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// orphaned athletes go back to the unpaired pool
		if err := tx.Model(&AthleteModel{}).
			Where("coach_id = ?", id).
			Update("coach_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("coach_id = ?", id).Delete(&NotificationModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&CoachModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return coaching.ErrNotFound
		}
		return nil
	})
}

func (r *CoachRepository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CoachModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CoachRepository) GetPasswordDigest(ctx context.Context, id int) (string, error) {
	var model CoachModel
	if err := r.db.WithContext(ctx).Select("password").First(&model, "id = ?", id).Error; err != nil {
		return "", mapError(err)
	}
	return model.Password, nil
}
