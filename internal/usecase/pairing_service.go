package usecase

import (
	"context"
	"fmt"

	"tritogether/internal/auth"
	"tritogether/internal/domain/coaching"
)

// PairingService owns the coach-athlete consent state machine: pairing is
// requested by the athlete via a PENDING notification, accepted by the coach
// through AssignCoach, and released only by the current coach.
type PairingService struct {
	Notifications NotificationRepository
	Athletes      AthleteRepository
	Coaches       CoachRepository
	Hasher        *auth.PasswordHasher
}

func NewPairingService(notifications NotificationRepository, athletes AthleteRepository, coaches CoachRepository, hasher *auth.PasswordHasher) *PairingService {
	return &PairingService{
		Notifications: notifications,
		Athletes:      athletes,
		Coaches:       coaches,
		Hasher:        hasher,
	}
}

// RequestPairing creates a PENDING notification proposing (athlete, coach).
// Only the athlete itself may propose. Concurrent duplicates for the same
// pair are not deduplicated.
func (s *PairingService) RequestPairing(ctx context.Context, p coaching.Principal, athleteID, coachID int) (coaching.Notification, error) {
	if _, err := s.Athletes.GetByID(ctx, athleteID); err != nil {
		return coaching.Notification{}, err
	}
	if _, err := s.Coaches.GetByID(ctx, coachID); err != nil {
		return coaching.Notification{}, err
	}
	if err := coaching.AuthorizeSelfAthlete(p, athleteID); err != nil {
		return coaching.Notification{}, err
	}
	return s.Notifications.Create(ctx, athleteID, coachID)
}

type ResolvePairingInput struct {
	AthleteID      int
	NotificationID int
	CoachID        int
	Status         string
}

// ResolvePairing moves a notification out of PENDING, once. The (athlete,
// coach) pair embedded at creation is immutable; the ids supplied by the
// caller must match it. Either party may resolve.
func (s *PairingService) ResolvePairing(ctx context.Context, p coaching.Principal, input ResolvePairingInput) (coaching.Notification, error) {
	notification, err := s.Notifications.GetByID(ctx, input.NotificationID)
	if err != nil {
		return coaching.Notification{}, err
	}
	status, err := coaching.ParseNotificationStatus(input.Status)
	if err != nil {
		return coaching.Notification{}, fmt.Errorf("unknown status %q: %w", input.Status, err)
	}
	if input.AthleteID != notification.Athlete.ID || input.CoachID != notification.Coach.ID {
		return coaching.Notification{}, fmt.Errorf("notification parties are immutable: %w", coaching.ErrInvalidInput)
	}
	if err := coaching.AuthorizeNotificationParty(p, notification.Athlete.ID, notification.Coach.ID); err != nil {
		return coaching.Notification{}, err
	}
	if notification.Status != coaching.StatusPending {
		return coaching.Notification{}, fmt.Errorf("notification already resolved: %w", coaching.ErrConflict)
	}
	return s.Notifications.UpdateStatus(ctx, notification.ID, status)
}

// AssignCoach completes the handshake: the accepting coach becomes the
// athlete's coach, provided a PENDING notification for exactly this pair
// exists and the athlete is unpaired. The store-level write is a
// compare-and-set, so a concurrent assignment surfaces as Conflict.
func (s *PairingService) AssignCoach(ctx context.Context, p coaching.Principal, athleteID, coachID int) (coaching.Athlete, error) {
	athlete, err := s.Athletes.GetByID(ctx, athleteID)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if _, err := s.Coaches.GetByID(ctx, coachID); err != nil {
		return coaching.Athlete{}, err
	}
	if err := coaching.AuthorizeSelfCoach(p, coachID); err != nil {
		return coaching.Athlete{}, err
	}
	pending, err := s.Notifications.PendingExists(ctx, athleteID, coachID)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if !pending {
		return coaching.Athlete{}, fmt.Errorf("no pending pairing notification: %w", coaching.ErrForbidden)
	}
	if athlete.CoachID != nil {
		return coaching.Athlete{}, fmt.Errorf("athlete already has a coach: %w", coaching.ErrConflict)
	}
	if err := s.Athletes.SetCoach(ctx, athleteID, coachID); err != nil {
		return coaching.Athlete{}, err
	}
	return s.Athletes.GetByID(ctx, athleteID)
}

// RemoveCoach releases the pairing. Only the current coach can do it, and
// only by re-supplying their permanent password. Athletes cannot self-remove.
func (s *PairingService) RemoveCoach(ctx context.Context, p coaching.Principal, athleteID int, password string) (coaching.Athlete, error) {
	athlete, err := s.Athletes.GetByID(ctx, athleteID)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if athlete.CoachID == nil {
		return coaching.Athlete{}, fmt.Errorf("athlete has no coach to remove: %w", coaching.ErrForbidden)
	}
	if err := coaching.AuthorizeSelfCoach(p, *athlete.CoachID); err != nil {
		return coaching.Athlete{}, err
	}
	digest, err := s.Coaches.GetPasswordDigest(ctx, p.ID)
	if err != nil {
		return coaching.Athlete{}, err
	}
	if password == "" || !s.Hasher.Check(password, digest) {
		return coaching.Athlete{}, fmt.Errorf("incorrect password: %w", coaching.ErrInvalidInput)
	}
	if err := s.Athletes.ClearCoach(ctx, athleteID, p.ID); err != nil {
		return coaching.Athlete{}, err
	}
	return s.Athletes.GetByID(ctx, athleteID)
}

// ListForAthlete returns the athlete's own PENDING notifications.
func (s *PairingService) ListForAthlete(ctx context.Context, p coaching.Principal, athleteID int) ([]coaching.Notification, error) {
	if _, err := s.Athletes.GetByID(ctx, athleteID); err != nil {
		return nil, err
	}
	if err := coaching.AuthorizeSelfAthlete(p, athleteID); err != nil {
		return nil, err
	}
	return s.Notifications.ListPendingByAthlete(ctx, athleteID)
}

// ListForCoach returns PENDING notifications addressed to the coach.
func (s *PairingService) ListForCoach(ctx context.Context, p coaching.Principal, coachID int) ([]coaching.Notification, error) {
	if _, err := s.Coaches.GetByID(ctx, coachID); err != nil {
		return nil, err
	}
	if err := coaching.AuthorizeSelfCoach(p, coachID); err != nil {
		return nil, err
	}
	return s.Notifications.ListPendingByCoach(ctx, coachID)
}
