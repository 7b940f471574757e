package coaching

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)

// ParseRole maps a wire-level role string onto the closed role set.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAthlete:
		return RoleAthlete, nil
	case RoleCoach:
		return RoleCoach, nil
	default:
		return "", ErrUnauthorized
	}
}

type NotificationStatus string

const (
	StatusPending  NotificationStatus = "PENDING"
	StatusAccepted NotificationStatus = "ACCEPTED"
	StatusDeclined NotificationStatus = "DECLINED"
)

// ParseNotificationStatus rejects anything outside the closed status set.
func ParseNotificationStatus(value string) (NotificationStatus, error) {
	switch NotificationStatus(value) {
	case StatusPending, StatusAccepted, StatusDeclined:
		return NotificationStatus(value), nil
	default:
		return "", ErrInvalidInput
	}
}

// Principal is the decoded identity carried by a session token.
type Principal struct {
	ID   int
	Role Role
}

type Availability struct {
	ID        int  `json:"id"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// DefaultAvailability is the profile every athlete starts with.
func DefaultAvailability() Availability {
	return Availability{
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
		Saturday:  true,
		Sunday:    true,
	}
}

type Athlete struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	CoachID      *int          `json:"-"`
	Coach        *Coach        `json:"coach,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
	Role         Role          `json:"rol,omitempty"`
}

type Coach struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"rol,omitempty"`
}

// Credentials carries the digests a sign-in check needs. Never serialized.
type Credentials struct {
	PasswordDigest string
	TempDigest     *string
}

type Notification struct {
	ID      int                `json:"id"`
	Status  NotificationStatus `json:"status"`
	Athlete Athlete            `json:"athlete"`
	Coach   Coach              `json:"coach"`
}

type Discipline struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Activity struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	AthleteID   int        `json:"-"`
	Discipline  Discipline `json:"discipline"`
}

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
