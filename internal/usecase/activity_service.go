package usecase

import (
	"context"
	"fmt"
	"time"

	"tritogether/internal/domain/coaching"
)

type ActivityService struct {
	Activities  ActivityRepository
	Athletes    AthleteRepository
	Disciplines DisciplineRepository
}

func NewActivityService(activities ActivityRepository, athletes AthleteRepository, disciplines DisciplineRepository) *ActivityService {
	return &ActivityService{Activities: activities, Athletes: athletes, Disciplines: disciplines}
}

// ownershipFacts loads the facts authorization needs: the owning athlete
// and its current coach, read at request time so access reflects the
// current pairing, never a cached one.
func (s *ActivityService) ownershipFacts(ctx context.Context, athleteID int) (coaching.OwnershipFacts, error) {
	athlete, err := s.Athletes.GetByID(ctx, athleteID)
	if err != nil {
		return coaching.OwnershipFacts{}, err
	}
	return coaching.OwnershipFacts{OwnerAthleteID: athlete.ID, CurrentCoachID: athlete.CoachID}, nil
}

// ListMonth returns the athlete's activities for one month of the year,
// visible to the owner athlete and its current coach.
func (s *ActivityService) ListMonth(ctx context.Context, p coaching.Principal, athleteID, month int) ([]coaching.Activity, error) {
	facts, err := s.ownershipFacts(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if err := coaching.Authorize(p, facts); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be 1..12: %w", coaching.ErrInvalidInput)
	}
	return s.Activities.ListByAthleteMonth(ctx, athleteID, month)
}

func (s *ActivityService) Get(ctx context.Context, p coaching.Principal, athleteID, activityID int) (coaching.Activity, error) {
	activity, err := s.Activities.GetByID(ctx, activityID)
	if err != nil {
		return coaching.Activity{}, err
	}
	facts, err := s.ownershipFacts(ctx, athleteID)
	if err != nil {
		return coaching.Activity{}, err
	}
	if activity.AthleteID != athleteID {
		return coaching.Activity{}, fmt.Errorf("activity is not owned by the athlete: %w", coaching.ErrInvalidInput)
	}
	if err := coaching.Authorize(p, facts); err != nil {
		return coaching.Activity{}, err
	}
	return activity, nil
}

type ActivityInput struct {
	Description  string
	Date         time.Time
	DisciplineID int
}

// Create records an activity for the athlete. Writes are the coach's
// prerogative: only the athlete's current coach may create.
func (s *ActivityService) Create(ctx context.Context, p coaching.Principal, athleteID int, input ActivityInput) (coaching.Activity, error) {
	facts, err := s.ownershipFacts(ctx, athleteID)
	if err != nil {
		return coaching.Activity{}, err
	}
	discipline, err := s.Disciplines.GetByID(ctx, input.DisciplineID)
	if err != nil {
		return coaching.Activity{}, fmt.Errorf("unknown discipline: %w", coaching.ErrInvalidInput)
	}
	if err := coaching.AuthorizeCoachWrite(p, facts); err != nil {
		return coaching.Activity{}, err
	}
	return s.Activities.Create(ctx, coaching.Activity{
		Description: input.Description,
		Date:        input.Date,
		AthleteID:   athleteID,
		Discipline:  discipline,
	})
}

func (s *ActivityService) Update(ctx context.Context, p coaching.Principal, athleteID, activityID int, input ActivityInput) (coaching.Activity, error) {
	activity, err := s.Activities.GetByID(ctx, activityID)
	if err != nil {
		return coaching.Activity{}, err
	}
	if activity.AthleteID != athleteID {
		return coaching.Activity{}, fmt.Errorf("activity is not owned by the athlete: %w", coaching.ErrInvalidInput)
	}
	facts, err := s.ownershipFacts(ctx, athleteID)
	if err != nil {
		return coaching.Activity{}, err
	}
	if err := coaching.AuthorizeCoachWrite(p, facts); err != nil {
		return coaching.Activity{}, err
	}
	discipline, err := s.Disciplines.GetByID(ctx, input.DisciplineID)
	if err != nil {
		return coaching.Activity{}, fmt.Errorf("unknown discipline: %w", coaching.ErrInvalidInput)
	}
	activity.Description = input.Description
	activity.Date = input.Date
	activity.Discipline = discipline
	return s.Activities.Update(ctx, activity)
}

func (s *ActivityService) Delete(ctx context.Context, p coaching.Principal, athleteID, activityID int) error {
	activity, err := s.Activities.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	if activity.AthleteID != athleteID {
		return fmt.Errorf("activity is not owned by the athlete: %w", coaching.ErrInvalidInput)
	}
	facts, err := s.ownershipFacts(ctx, athleteID)
	if err != nil {
		return err
	}
	if err := coaching.AuthorizeCoachWrite(p, facts); err != nil {
		return err
	}
	return s.Activities.Delete(ctx, activityID)
}

func (s *ActivityService) ListDisciplines(ctx context.Context) ([]coaching.Discipline, error) {
	return s.Disciplines.List(ctx)
}
