package gormdb

import (
	"context"

	"gorm.io/gorm"

	"tritogether/internal/domain/coaching"
)

// CredentialRepository reads and writes password material for both
// principal tables; the role picks the table.
type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

type credentialRow struct {
	ID          int
	Password    string
	TmpPassword *string
}

func (r *CredentialRepository) table(role coaching.Role) string {
	if role == coaching.RoleCoach {
		return CoachModel{}.TableName()
	}
	return AthleteModel{}.TableName()
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, role coaching.Role, email string) (int, coaching.Credentials, error) {
	var row credentialRow
	err := r.db.WithContext(ctx).Table(r.table(role)).
		Select("id", "password", "tmp_password").
		Where("email = ?", email).
		Take(&row).Error
	if err != nil {
		return 0, coaching.Credentials{}, mapError(err)
	}
	return row.ID, coaching.Credentials{PasswordDigest: row.Password, TempDigest: row.TmpPassword}, nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, role coaching.Role, id int) (coaching.Credentials, error) {
	var row credentialRow
	err := r.db.WithContext(ctx).Table(r.table(role)).
		Select("id", "password", "tmp_password").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return coaching.Credentials{}, mapError(err)
	}
	return coaching.Credentials{PasswordDigest: row.Password, TempDigest: row.TmpPassword}, nil
}

// SetPassword also clears any pending temporary password.
func (r *CredentialRepository) SetPassword(ctx context.Context, role coaching.Role, id int, digest string) error {
	return r.update(ctx, role, id, map[string]any{"password": digest, "tmp_password": nil})
}

func (r *CredentialRepository) SetTempPassword(ctx context.Context, role coaching.Role, id int, digest string) error {
	return r.update(ctx, role, id, map[string]any{"tmp_password": digest})
}

func (r *CredentialRepository) ClearTempPassword(ctx context.Context, role coaching.Role, id int) error {
	return r.update(ctx, role, id, map[string]any{"tmp_password": nil})
}

func (r *CredentialRepository) update(ctx context.Context, role coaching.Role, id int, values map[string]any) error {
	res := r.db.WithContext(ctx).Table(r.table(role)).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return coaching.ErrNotFound
	}
	return nil
}
