package gormdb

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tritogether/internal/domain/coaching"
	"tritogether/internal/usecase"
)

type AthleteRepository struct {
	db *gorm.DB
}

func NewAthleteRepository(db *gorm.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

func (r *AthleteRepository) Create(ctx context.Context, athlete coaching.Athlete, passwordDigest string) (coaching.Athlete, error) {
	availability := coaching.DefaultAvailability()
	if athlete.Availability != nil {
		availability = *athlete.Availability
	}
	model := AthleteModel{
		Name:     athlete.Name,
		Email:    athlete.Email,
		Password: passwordDigest,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		availabilityModel := availabilityModel(availability)
		if err := tx.Create(&availabilityModel).Error; err != nil {
			return err
		}
		model.AvailabilityID = &availabilityModel.ID
		model.Availability = &availabilityModel
		return tx.Omit("Availability").Create(&model).Error
	})
	if err != nil {
		return coaching.Athlete{}, err
	}
	return model.toDomain(), nil
}

func (r *AthleteRepository) GetByID(ctx context.Context, id int) (coaching.Athlete, error) {
	var model AthleteModel
	err := r.db.WithContext(ctx).
		Preload("Coach").
		Preload("Availability").
		First(&model, "id = ?", id).Error
	if err != nil {
		return coaching.Athlete{}, mapError(err)
	}
	return model.toDomain(), nil
}

func (r *AthleteRepository) List(ctx context.Context, filter usecase.AthleteListFilter) ([]coaching.Athlete, error) {
	query := r.db.WithContext(ctx).
		Preload("Coach").
		Preload("Availability").
		Order("name " + sortDirection(filter.Order))
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Take > 0 {
		query = query.Limit(filter.Take)
	}
	var models []AthleteModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]coaching.Athlete, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *AthleteRepository) ListByCoach(ctx context.Context, coachID int, order string) ([]coaching.Athlete, error) {
	var models []AthleteModel
	err := r.db.WithContext(ctx).
		Preload("Availability").
		Where("coach_id = ?", coachID).
		Order("name " + sortDirection(order)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]coaching.Athlete, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *AthleteRepository) Update(ctx context.Context, athlete coaching.Athlete) (coaching.Athlete, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model AthleteModel
		if err := tx.First(&model, "id = ?", athlete.ID).Error; err != nil {
			return err
		}
		updates := map[string]any{"name": athlete.Name, "email": athlete.Email}
		if err := tx.Model(&model).Updates(updates).Error; err != nil {
			return err
		}
		if athlete.Availability != nil && model.AvailabilityID != nil {
			availabilityModel := availabilityModel(*athlete.Availability)
			availabilityModel.ID = *model.AvailabilityID
			if err := tx.Save(&availabilityModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return coaching.Athlete{}, mapError(err)
	}
	return r.GetByID(ctx, athlete.ID)
}

func (r *AthleteRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model AthleteModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return mapError(err)
		}
		if err := tx.Where("athlete_id = ?", id).Delete(&NotificationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("athlete_id = ?", id).Delete(&ActivityModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&AthleteModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		if model.AvailabilityID != nil {
			if err := tx.Delete(&AvailabilityModel{}, "id = ?", *model.AvailabilityID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AthleteRepository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AthleteModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetCoach only succeeds while coach_id is still NULL; a zero row count
// means another assignment won the race.
func (r *AthleteRepository) SetCoach(ctx context.Context, athleteID, coachID int) error {
	res := r.db.WithContext(ctx).Model(&AthleteModel{}).
		Where("id = ? AND coach_id IS NULL", athleteID).
		Update("coach_id", coachID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&AthleteModel{}).
			Where("id = ?", athleteID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return coaching.ErrNotFound
		}
		return coaching.ErrConflict
	}
	return nil
}

// ClearCoach releases the pairing only while coachID is still current.
func (r *AthleteRepository) ClearCoach(ctx context.Context, athleteID, coachID int) error {
	res := r.db.WithContext(ctx).Model(&AthleteModel{}).
		Where("id = ? AND coach_id = ?", athleteID, coachID).
		Update("coach_id", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return coaching.ErrConflict
	}
	return nil
}

// Anything other than an explicit ASC sorts descending.
func sortDirection(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}
