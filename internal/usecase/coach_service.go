package usecase

import (
	"context"
	"fmt"

	"tritogether/internal/auth"
	"tritogether/internal/domain/coaching"
)

type CoachService struct {
	Coaches     CoachRepository
	Athletes    AthleteRepository
	Credentials CredentialRepository
	Hasher      *auth.PasswordHasher
}

func NewCoachService(coaches CoachRepository, athletes AthleteRepository, credentials CredentialRepository, hasher *auth.PasswordHasher) *CoachService {
	return &CoachService{Coaches: coaches, Athletes: athletes, Credentials: credentials, Hasher: hasher}
}

type RegisterCoachInput struct {
	Name     string
	Email    string
	Password string
}

func (s *CoachService) Register(ctx context.Context, input RegisterCoachInput) (coaching.Coach, error) {
	if len(input.Password) < auth.MinPasswordLength {
		return coaching.Coach{}, fmt.Errorf("password shorter than %d characters: %w", auth.MinPasswordLength, coaching.ErrInvalidInput)
	}
	taken, err := s.Coaches.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return coaching.Coach{}, err
	}
	if taken {
		return coaching.Coach{}, fmt.Errorf("email already registered: %w", coaching.ErrConflict)
	}
	digest, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return coaching.Coach{}, err
	}
	return s.Coaches.Create(ctx, coaching.Coach{Name: input.Name, Email: input.Email}, digest)
}

// Coach profiles are visible to any signed-in principal.
func (s *CoachService) Get(ctx context.Context, id int) (coaching.Coach, error) {
	return s.Coaches.GetByID(ctx, id)
}

func (s *CoachService) List(ctx context.Context) ([]coaching.Coach, error) {
	return s.Coaches.List(ctx)
}

// ListAthletes returns the coach's current athletes; owner coach only.
func (s *CoachService) ListAthletes(ctx context.Context, p coaching.Principal, coachID int, order string) ([]coaching.Athlete, error) {
	if _, err := s.Coaches.GetByID(ctx, coachID); err != nil {
		return nil, err
	}
	if err := coaching.AuthorizeSelfCoach(p, coachID); err != nil {
		return nil, err
	}
	return s.Athletes.ListByCoach(ctx, coachID, order)
}

type UpdateCoachInput struct {
	Name     string
	Email    string
	Password string
}

func (s *CoachService) Update(ctx context.Context, p coaching.Principal, id int, input UpdateCoachInput) (coaching.Coach, error) {
	if err := coaching.AuthorizeSelfCoach(p, id); err != nil {
		return coaching.Coach{}, err
	}
	coach, err := s.Coaches.GetByID(ctx, id)
	if err != nil {
		return coaching.Coach{}, err
	}
	taken, err := s.Coaches.EmailTaken(ctx, input.Email, id)
	if err != nil {
		return coaching.Coach{}, err
	}
	if taken {
		return coaching.Coach{}, fmt.Errorf("email already registered: %w", coaching.ErrConflict)
	}
	digest, err := s.Coaches.GetPasswordDigest(ctx, id)
	if err != nil {
		return coaching.Coach{}, err
	}
	if !s.Hasher.Check(input.Password, digest) {
		return coaching.Coach{}, fmt.Errorf("incorrect password: %w", coaching.ErrInvalidInput)
	}
	coach.Name = input.Name
	coach.Email = input.Email
	return s.Coaches.Update(ctx, coach)
}

func (s *CoachService) Delete(ctx context.Context, p coaching.Principal, id int) error {
	if _, err := s.Coaches.GetByID(ctx, id); err != nil {
		return err
	}
	if err := coaching.AuthorizeSelfCoach(p, id); err != nil {
		return err
	}
	return s.Coaches.Delete(ctx, id)
}
