package gormdb

import (
	"context"

	"gorm.io/gorm"

	"tritogether/internal/domain/coaching"
)

type DisciplineRepository struct {
	db *gorm.DB
}

func NewDisciplineRepository(db *gorm.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

func (r *DisciplineRepository) GetByID(ctx context.Context, id int) (coaching.Discipline, error) {
	var model DisciplineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return coaching.Discipline{}, mapError(err)
	}
	return coaching.Discipline{ID: model.ID, Name: model.Name}, nil
}

func (r *DisciplineRepository) List(ctx context.Context) ([]coaching.Discipline, error) {
	var models []DisciplineModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]coaching.Discipline, 0, len(models))
	for _, m := range models {
		out = append(out, coaching.Discipline{ID: m.ID, Name: m.Name})
	}
	return out, nil
}
