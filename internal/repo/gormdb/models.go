package gormdb

import (
	"time"

	"tritogether/internal/domain/coaching"
)

type AvailabilityModel struct {
	ID        int  `gorm:"primaryKey"`
	Monday    bool `gorm:"not null;default:true"`
	Tuesday   bool `gorm:"not null;default:true"`
	Wednesday bool `gorm:"not null;default:true"`
	Thursday  bool `gorm:"not null;default:true"`
	Friday    bool `gorm:"not null;default:true"`
	Saturday  bool `gorm:"not null;default:true"`
	Sunday    bool `gorm:"not null;default:true"`
}

func (AvailabilityModel) TableName() string {
	return "availabilities"
}

type AthleteModel struct {
	ID             int     `gorm:"primaryKey"`
	Name           string  `gorm:"size:80;not null"`
	Email          string  `gorm:"size:100;uniqueIndex;not null"`
	Password       string  `gorm:"size:100;not null"`
	TmpPassword    *string `gorm:"size:100"`
	CoachID        *int    `gorm:"index"`
	Coach          *CoachModel
	AvailabilityID *int
	Availability   *AvailabilityModel
}

func (AthleteModel) TableName() string {
	return "athletes"
}

type CoachModel struct {
	ID          int     `gorm:"primaryKey"`
	Name        string  `gorm:"size:80;not null"`
	Email       string  `gorm:"size:100;uniqueIndex;not null"`
	Password    string  `gorm:"size:100;not null"`
	TmpPassword *string `gorm:"size:100"`
}

func (CoachModel) TableName() string {
	return "coaches"
}

type NotificationModel struct {
	ID        int    `gorm:"primaryKey"`
	Status    string `gorm:"size:10;not null;default:PENDING"`
	AthleteID int    `gorm:"index;not null"`
	Athlete   AthleteModel
	CoachID   int `gorm:"index;not null"`
	Coach     CoachModel
	CreatedAt time.Time `gorm:"not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

type DisciplineModel struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:20;uniqueIndex;not null"`
}

func (DisciplineModel) TableName() string {
	return "disciplines"
}

type ActivityModel struct {
	ID           int       `gorm:"primaryKey"`
	Description  string    `gorm:"size:255;not null"`
	Date         time.Time `gorm:"type:date;index;not null"`
	AthleteID    int       `gorm:"index;not null"`
	DisciplineID int       `gorm:"index;not null"`
	Discipline   DisciplineModel
}

func (ActivityModel) TableName() string {
	return "activities"
}

func (m AthleteModel) toDomain() coaching.Athlete {
	athlete := coaching.Athlete{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		CoachID: m.CoachID,
	}
	if m.Coach != nil {
		coach := m.Coach.toDomain()
		athlete.Coach = &coach
	}
	if m.Availability != nil {
		availability := m.Availability.toDomain()
		athlete.Availability = &availability
	}
	return athlete
}

func (m CoachModel) toDomain() coaching.Coach {
	return coaching.Coach{ID: m.ID, Name: m.Name, Email: m.Email}
}

func (m AvailabilityModel) toDomain() coaching.Availability {
	return coaching.Availability{
		ID:        m.ID,
		Monday:    m.Monday,
		Tuesday:   m.Tuesday,
		Wednesday: m.Wednesday,
		Thursday:  m.Thursday,
		Friday:    m.Friday,
		Saturday:  m.Saturday,
		Sunday:    m.Sunday,
	}
}

func (m NotificationModel) toDomain() coaching.Notification {
	return coaching.Notification{
		ID:      m.ID,
		Status:  coaching.NotificationStatus(m.Status),
		Athlete: m.Athlete.toDomain(),
		Coach:   m.Coach.toDomain(),
	}
}

func (m ActivityModel) toDomain() coaching.Activity {
	return coaching.Activity{
		ID:          m.ID,
		Description: m.Description,
		Date:        m.Date,
		AthleteID:   m.AthleteID,
		Discipline:  coaching.Discipline{ID: m.Discipline.ID, Name: m.Discipline.Name},
	}
}

func availabilityModel(a coaching.Availability) AvailabilityModel {
	return AvailabilityModel{
		ID:        a.ID,
		Monday:    a.Monday,
		Tuesday:   a.Tuesday,
		Wednesday: a.Wednesday,
		Thursday:  a.Thursday,
		Friday:    a.Friday,
		Saturday:  a.Saturday,
		Sunday:    a.Sunday,
	}
}
