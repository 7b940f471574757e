package usecase

import (
	"context"

	"tritogether/internal/domain/coaching"
)

type AthleteRepository interface {
	Create(ctx context.Context, athlete coaching.Athlete, passwordDigest string) (coaching.Athlete, error)
	GetByID(ctx context.Context, id int) (coaching.Athlete, error)
	List(ctx context.Context, filter AthleteListFilter) ([]coaching.Athlete, error)
	ListByCoach(ctx context.Context, coachID int, order string) ([]coaching.Athlete, error)
	Update(ctx context.Context, athlete coaching.Athlete) (coaching.Athlete, error)
	Delete(ctx context.Context, id int) error
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	// SetCoach is a compare-and-set: it only succeeds while the athlete has
	// no coach, so two concurrent assignments cannot both win.
	SetCoach(ctx context.Context, athleteID, coachID int) error
	// ClearCoach releases the pairing only if coachID is still the current coach.
	ClearCoach(ctx context.Context, athleteID, coachID int) error
}

type CoachRepository interface {
	Create(ctx context.Context, coach coaching.Coach, passwordDigest string) (coaching.Coach, error)
	GetByID(ctx context.Context, id int) (coaching.Coach, error)
	List(ctx context.Context) ([]coaching.Coach, error)
	Update(ctx context.Context, coach coaching.Coach) (coaching.Coach, error)
	Delete(ctx context.Context, id int) error
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	GetPasswordDigest(ctx context.Context, id int) (string, error)
}

// CredentialRepository reads and mutates credential material for either
// principal table; role selects the table.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, role coaching.Role, email string) (int, coaching.Credentials, error)
	GetByID(ctx context.Context, role coaching.Role, id int) (coaching.Credentials, error)
	SetPassword(ctx context.Context, role coaching.Role, id int, digest string) error
	SetTempPassword(ctx context.Context, role coaching.Role, id int, digest string) error
	ClearTempPassword(ctx context.Context, role coaching.Role, id int) error
}

type NotificationRepository interface {
	Create(ctx context.Context, athleteID, coachID int) (coaching.Notification, error)
	GetByID(ctx context.Context, id int) (coaching.Notification, error)
	ListPendingByAthlete(ctx context.Context, athleteID int) ([]coaching.Notification, error)
	ListPendingByCoach(ctx context.Context, coachID int) ([]coaching.Notification, error)
	UpdateStatus(ctx context.Context, id int, status coaching.NotificationStatus) (coaching.Notification, error)
	PendingExists(ctx context.Context, athleteID, coachID int) (bool, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity coaching.Activity) (coaching.Activity, error)
	GetByID(ctx context.Context, id int) (coaching.Activity, error)
	ListByAthleteMonth(ctx context.Context, athleteID, month int) ([]coaching.Activity, error)
	Update(ctx context.Context, activity coaching.Activity) (coaching.Activity, error)
	Delete(ctx context.Context, id int) error
}

type DisciplineRepository interface {
	GetByID(ctx context.Context, id int) (coaching.Discipline, error)
	List(ctx context.Context) ([]coaching.Discipline, error)
}

// RecoverySender delivers the plaintext temporary password to the user.
type RecoverySender interface {
	SendPasswordRecovery(recipient, tempPassword string) error
}

type AthleteListFilter struct {
	Order string
	Skip  int
	Take  int
}
