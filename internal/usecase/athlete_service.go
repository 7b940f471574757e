package usecase

import (
	"context"
	"fmt"

	"tritogether/internal/auth"
	"tritogether/internal/domain/coaching"
)

type AthleteService struct {
	Athletes    AthleteRepository
	Credentials CredentialRepository
	Hasher      *auth.PasswordHasher
}

func NewAthleteService(athletes AthleteRepository, credentials CredentialRepository, hasher *auth.PasswordHasher) *AthleteService {
	return &AthleteService{Athletes: athletes, Credentials: credentials, Hasher: hasher}
}

type RegisterAthleteInput struct {
	Name     string
	Email    string
	Password string
}

// Register self-registers an athlete with a default all-true availability
// profile. No session is required.
func (s *AthleteService) Register(ctx context.Context, input RegisterAthleteInput) (coaching.Athlete, error) {
	if len(input.Password) < auth.MinPasswordLength {
		return coaching.Athlete{}, fmt.Errorf("password shorter than %d characters: %w", auth.MinPasswordLength, coaching.ErrInvalidInput)
	}
	taken, err := s.Athletes.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if taken {
		return coaching.Athlete{}, fmt.Errorf("email already registered: %w", coaching.ErrConflict)
	}
	digest, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return coaching.Athlete{}, err
	}
	availability := coaching.DefaultAvailability()
	athlete := coaching.Athlete{
		Name:         input.Name,
		Email:        input.Email,
		Availability: &availability,
	}
	return s.Athletes.Create(ctx, athlete, digest)
}

// Get returns the profile to the owner athlete or its current coach.
func (s *AthleteService) Get(ctx context.Context, p coaching.Principal, id int) (coaching.Athlete, error) {
	athlete, err := s.Athletes.GetByID(ctx, id)
	if err != nil {
		return coaching.Athlete{}, err
	}
	facts := coaching.OwnershipFacts{OwnerAthleteID: athlete.ID, CurrentCoachID: athlete.CoachID}
	if err := coaching.Authorize(p, facts); err != nil {
		return coaching.Athlete{}, err
	}
	return athlete, nil
}

func (s *AthleteService) List(ctx context.Context, filter AthleteListFilter) ([]coaching.Athlete, error) {
	return s.Athletes.List(ctx, filter)
}

type UpdateAthleteInput struct {
	Name         string
	Email        string
	Password     string
	Availability *coaching.Availability
}

// Update mutates name, email and availability. Only the athlete itself may
// update, and must re-supply its current password; the password itself is
// not changed here.
func (s *AthleteService) Update(ctx context.Context, p coaching.Principal, id int, input UpdateAthleteInput) (coaching.Athlete, error) {
	if err := coaching.AuthorizeSelfAthlete(p, id); err != nil {
		return coaching.Athlete{}, err
	}
	athlete, err := s.Athletes.GetByID(ctx, id)
	if err != nil {
		return coaching.Athlete{}, err
	}
	taken, err := s.Athletes.EmailTaken(ctx, input.Email, id)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if taken {
		return coaching.Athlete{}, fmt.Errorf("email already registered: %w", coaching.ErrConflict)
	}
	creds, err := s.Credentials.GetByID(ctx, coaching.RoleAthlete, id)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if !s.Hasher.Check(input.Password, creds.PasswordDigest) {
		return coaching.Athlete{}, fmt.Errorf("incorrect password: %w", coaching.ErrInvalidInput)
	}
	athlete.Name = input.Name
	athlete.Email = input.Email
	if input.Availability != nil {
		athlete.Availability = input.Availability
	}
	return s.Athletes.Update(ctx, athlete)
}

// Delete removes the athlete and its availability profile. Self only.
func (s *AthleteService) Delete(ctx context.Context, p coaching.Principal, id int) error {
	if _, err := s.Athletes.GetByID(ctx, id); err != nil {
		return err
	}
	if err := coaching.AuthorizeSelfAthlete(p, id); err != nil {
		return err
	}
	return s.Athletes.Delete(ctx, id)
}
