package coaching

import "errors"

// OwnershipFacts are loaded from the identity store before any resource
// operation: the owning athlete and that athlete's current coach, if any.
type OwnershipFacts struct {
	OwnerAthleteID int
	CurrentCoachID *int
}

// PolicyError carries a stable reason code alongside the domain error so
// handlers can report why a decision denied without leaking internals.
type PolicyError struct {
	Code string
	Err  error
}

func (e *PolicyError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code
}

func (e *PolicyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsPolicyError(err error) (*PolicyError, bool) {
	var policy *PolicyError
	if errors.As(err, &policy) {
		return policy, true
	}
	return nil, false
}

// Authorize is the owner-or-current-coach read rule shared by athlete
// profiles, activity reads and activity collections. The caller is
// responsible for establishing that the resource exists; Authorize only
// decides entitlement.
func Authorize(p Principal, facts OwnershipFacts) error {
	switch p.Role {
	case RoleAthlete:
		if p.ID != facts.OwnerAthleteID {
			return &PolicyError{Code: "NOT_OWNER", Err: ErrForbidden}
		}
		return nil
	case RoleCoach:
		if facts.CurrentCoachID == nil || p.ID != *facts.CurrentCoachID {
			return &PolicyError{Code: "NOT_CURRENT_COACH", Err: ErrForbidden}
		}
		return nil
	default:
		return ErrUnauthorized
	}
}

// AuthorizeSelfAthlete gates profile mutations: only the athlete itself,
// with no coach override.
func AuthorizeSelfAthlete(p Principal, athleteID int) error {
	if p.Role != RoleAthlete || p.ID != athleteID {
		return &PolicyError{Code: "NOT_SELF_ATHLETE", Err: ErrForbidden}
	}
	return nil
}

// AuthorizeSelfCoach gates coach profile mutations and coach-owned listings.
func AuthorizeSelfCoach(p Principal, coachID int) error {
	if p.Role != RoleCoach || p.ID != coachID {
		return &PolicyError{Code: "NOT_SELF_COACH", Err: ErrForbidden}
	}
	return nil
}

// AuthorizeCoachWrite gates activity mutations: only the athlete's current
// coach may write, athletes cannot write their own activities.
func AuthorizeCoachWrite(p Principal, facts OwnershipFacts) error {
	if p.Role != RoleCoach {
		return &PolicyError{Code: "COACH_ROLE_REQUIRED", Err: ErrForbidden}
	}
	if facts.CurrentCoachID == nil || p.ID != *facts.CurrentCoachID {
		return &PolicyError{Code: "NOT_CURRENT_COACH", Err: ErrForbidden}
	}
	return nil
}

// AuthorizeNotificationParty allows exactly the athlete or the coach a
// notification references to act on it.
func AuthorizeNotificationParty(p Principal, athleteID, coachID int) error {
	switch p.Role {
	case RoleAthlete:
		if p.ID != athleteID {
			return &PolicyError{Code: "NOT_NOTIFICATION_PARTY", Err: ErrForbidden}
		}
		return nil
	case RoleCoach:
		if p.ID != coachID {
			return &PolicyError{Code: "NOT_NOTIFICATION_PARTY", Err: ErrForbidden}
		}
		return nil
	default:
		return ErrUnauthorized
	}
}
