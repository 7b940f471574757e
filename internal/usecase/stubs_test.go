package usecase

import (
	"context"
	"sort"

	"tritogether/internal/domain/coaching"
)

type stubAthleteRepo struct {
	nextID   int
	athletes map[int]coaching.Athlete
}

func newStubAthleteRepo() *stubAthleteRepo {
	return &stubAthleteRepo{nextID: 1, athletes: map[int]coaching.Athlete{}}
}

func (r *stubAthleteRepo) put(a coaching.Athlete) coaching.Athlete {
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	} else if a.ID >= r.nextID {
		r.nextID = a.ID + 1
	}
	r.athletes[a.ID] = a
	return a
}

func (r *stubAthleteRepo) Create(_ context.Context, athlete coaching.Athlete, _ string) (coaching.Athlete, error) {
	return r.put(athlete), nil
}

func (r *stubAthleteRepo) GetByID(_ context.Context, id int) (coaching.Athlete, error) {
	athlete, ok := r.athletes[id]
	if !ok {
		return coaching.Athlete{}, coaching.ErrNotFound
	}
	return athlete, nil
}

func (r *stubAthleteRepo) List(_ context.Context, _ AthleteListFilter) ([]coaching.Athlete, error) {
	out := make([]coaching.Athlete, 0, len(r.athletes))
	for _, a := range r.athletes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAthleteRepo) ListByCoach(_ context.Context, coachID int, _ string) ([]coaching.Athlete, error) {
	var out []coaching.Athlete
	for _, a := range r.athletes {
		if a.CoachID != nil && *a.CoachID == coachID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAthleteRepo) Update(_ context.Context, athlete coaching.Athlete) (coaching.Athlete, error) {
	if _, ok := r.athletes[athlete.ID]; !ok {
		return coaching.Athlete{}, coaching.ErrNotFound
	}
	r.athletes[athlete.ID] = athlete
	return athlete, nil
}

func (r *stubAthleteRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.athletes[id]; !ok {
		return coaching.ErrNotFound
	}
	delete(r.athletes, id)
	return nil
}

func (r *stubAthleteRepo) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	for _, a := range r.athletes {
		if a.Email == email && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAthleteRepo) SetCoach(_ context.Context, athleteID, coachID int) error {
	athlete, ok := r.athletes[athleteID]
	if !ok {
		return coaching.ErrNotFound
	}
	if athlete.CoachID != nil {
		return coaching.ErrConflict
	}
	athlete.CoachID = &coachID
	r.athletes[athleteID] = athlete
	return nil
}

func (r *stubAthleteRepo) ClearCoach(_ context.Context, athleteID, coachID int) error {
	athlete, ok := r.athletes[athleteID]
	if !ok {
		return coaching.ErrNotFound
	}
	if athlete.CoachID == nil || *athlete.CoachID != coachID {
		return coaching.ErrConflict
	}
	athlete.CoachID = nil
	r.athletes[athleteID] = athlete
	return nil
}

type stubCoachRepo struct {
	nextID  int
	coaches map[int]coaching.Coach
	digests map[int]string
}

func newStubCoachRepo() *stubCoachRepo {
	return &stubCoachRepo{nextID: 1, coaches: map[int]coaching.Coach{}, digests: map[int]string{}}
}

func (r *stubCoachRepo) put(c coaching.Coach, digest string) coaching.Coach {
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	} else if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
	r.coaches[c.ID] = c
	r.digests[c.ID] = digest
	return c
}

func (r *stubCoachRepo) Create(_ context.Context, coach coaching.Coach, digest string) (coaching.Coach, error) {
	return r.put(coach, digest), nil
}

func (r *stubCoachRepo) GetByID(_ context.Context, id int) (coaching.Coach, error) {
	coach, ok := r.coaches[id]
	if !ok {
		return coaching.Coach{}, coaching.ErrNotFound
	}
	return coach, nil
}

func (r *stubCoachRepo) List(_ context.Context) ([]coaching.Coach, error) {
	out := make([]coaching.Coach, 0, len(r.coaches))
	for _, c := range r.coaches {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCoachRepo) Update(_ context.Context, coach coaching.Coach) (coaching.Coach, error) {
	if _, ok := r.coaches[coach.ID]; !ok {
		return coaching.Coach{}, coaching.ErrNotFound
	}
	r.coaches[coach.ID] = coach
	return coach, nil
}

func (r *stubCoachRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.coaches[id]; !ok {
		return coaching.ErrNotFound
	}
	delete(r.coaches, id)
	return nil
}

func (r *stubCoachRepo) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	for _, c := range r.coaches {
		if c.Email == email && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCoachRepo) GetPasswordDigest(_ context.Context, id int) (string, error) {
	digest, ok := r.digests[id]
	if !ok {
		return "", coaching.ErrNotFound
	}
	return digest, nil
}

type credKey struct {
	role  coaching.Role
	email string
}

type stubCredentialRepo struct {
	ids   map[credKey]int
	creds map[coaching.Role]map[int]coaching.Credentials
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{
		ids: map[credKey]int{},
		creds: map[coaching.Role]map[int]coaching.Credentials{
			coaching.RoleAthlete: {},
			coaching.RoleCoach:   {},
		},
	}
}

func (r *stubCredentialRepo) set(role coaching.Role, id int, email string, creds coaching.Credentials) {
	r.ids[credKey{role, email}] = id
	r.creds[role][id] = creds
}

func (r *stubCredentialRepo) GetByEmail(_ context.Context, role coaching.Role, email string) (int, coaching.Credentials, error) {
	id, ok := r.ids[credKey{role, email}]
	if !ok {
		return 0, coaching.Credentials{}, coaching.ErrNotFound
	}
	return id, r.creds[role][id], nil
}

func (r *stubCredentialRepo) GetByID(_ context.Context, role coaching.Role, id int) (coaching.Credentials, error) {
	creds, ok := r.creds[role][id]
	if !ok {
		return coaching.Credentials{}, coaching.ErrNotFound
	}
	return creds, nil
}

func (r *stubCredentialRepo) SetPassword(_ context.Context, role coaching.Role, id int, digest string) error {
	creds := r.creds[role][id]
	creds.PasswordDigest = digest
	creds.TempDigest = nil
	r.creds[role][id] = creds
	return nil
}

func (r *stubCredentialRepo) SetTempPassword(_ context.Context, role coaching.Role, id int, digest string) error {
	creds := r.creds[role][id]
	creds.TempDigest = &digest
	r.creds[role][id] = creds
	return nil
}

func (r *stubCredentialRepo) ClearTempPassword(_ context.Context, role coaching.Role, id int) error {
	creds := r.creds[role][id]
	creds.TempDigest = nil
	r.creds[role][id] = creds
	return nil
}

type stubNotificationRepo struct {
	nextID        int
	notifications map[int]coaching.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{nextID: 1, notifications: map[int]coaching.Notification{}}
}

func (r *stubNotificationRepo) Create(_ context.Context, athleteID, coachID int) (coaching.Notification, error) {
	n := coaching.Notification{
		ID:      r.nextID,
		Status:  coaching.StatusPending,
		Athlete: coaching.Athlete{ID: athleteID},
		Coach:   coaching.Coach{ID: coachID},
	}
	r.nextID++
	r.notifications[n.ID] = n
	return n, nil
}

func (r *stubNotificationRepo) GetByID(_ context.Context, id int) (coaching.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return coaching.Notification{}, coaching.ErrNotFound
	}
	return n, nil
}

func (r *stubNotificationRepo) ListPendingByAthlete(_ context.Context, athleteID int) ([]coaching.Notification, error) {
	var out []coaching.Notification
	for _, n := range r.notifications {
		if n.Athlete.ID == athleteID && n.Status == coaching.StatusPending {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) ListPendingByCoach(_ context.Context, coachID int) ([]coaching.Notification, error) {
	var out []coaching.Notification
	for _, n := range r.notifications {
		if n.Coach.ID == coachID && n.Status == coaching.StatusPending {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) UpdateStatus(_ context.Context, id int, status coaching.NotificationStatus) (coaching.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return coaching.Notification{}, coaching.ErrNotFound
	}
	n.Status = status
	r.notifications[id] = n
	return n, nil
}

func (r *stubNotificationRepo) PendingExists(_ context.Context, athleteID, coachID int) (bool, error) {
	for _, n := range r.notifications {
		if n.Athlete.ID == athleteID && n.Coach.ID == coachID && n.Status == coaching.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

type stubActivityRepo struct {
	nextID     int
	activities map[int]coaching.Activity
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{nextID: 1, activities: map[int]coaching.Activity{}}
}

func (r *stubActivityRepo) Create(_ context.Context, activity coaching.Activity) (coaching.Activity, error) {
	activity.ID = r.nextID
	r.nextID++
	r.activities[activity.ID] = activity
	return activity, nil
}

func (r *stubActivityRepo) GetByID(_ context.Context, id int) (coaching.Activity, error) {
	a, ok := r.activities[id]
	if !ok {
		return coaching.Activity{}, coaching.ErrNotFound
	}
	return a, nil
}

func (r *stubActivityRepo) ListByAthleteMonth(_ context.Context, athleteID, month int) ([]coaching.Activity, error) {
	var out []coaching.Activity
	for _, a := range r.activities {
		if a.AthleteID == athleteID && int(a.Date.Month()) == month {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) Update(_ context.Context, activity coaching.Activity) (coaching.Activity, error) {
	if _, ok := r.activities[activity.ID]; !ok {
		return coaching.Activity{}, coaching.ErrNotFound
	}
	r.activities[activity.ID] = activity
	return activity, nil
}

func (r *stubActivityRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.activities[id]; !ok {
		return coaching.ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

type stubDisciplineRepo struct {
	disciplines map[int]coaching.Discipline
}

func newStubDisciplineRepo() *stubDisciplineRepo {
	return &stubDisciplineRepo{disciplines: map[int]coaching.Discipline{
		1: {ID: 1, Name: "swimming"},
		2: {ID: 2, Name: "cycling"},
		3: {ID: 3, Name: "running"},
		4: {ID: 4, Name: "other"},
	}}
}

func (r *stubDisciplineRepo) GetByID(_ context.Context, id int) (coaching.Discipline, error) {
	d, ok := r.disciplines[id]
	if !ok {
		return coaching.Discipline{}, coaching.ErrNotFound
	}
	return d, nil
}

func (r *stubDisciplineRepo) List(_ context.Context) ([]coaching.Discipline, error) {
	out := make([]coaching.Discipline, 0, len(r.disciplines))
	for _, d := range r.disciplines {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubSender struct {
	sent []string
	err  error
}

func (s *stubSender) SendPasswordRecovery(recipient, tempPassword string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, recipient+":"+tempPassword)
	return nil
}
