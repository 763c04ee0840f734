// Package memory provides in-memory repository implementations backing the
// service unit tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
	"github.com/mobimama/mobimama-api/pkg/apperror"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
	seq   int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]model.User)}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	r.seq++
	user.CreatedAt = stampAt(r.seq)
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (r *UserRepository) GetByUsernameAndRole(_ context.Context, username string, role model.Role) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username && u.Role == role {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (r *UserRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperror.NotFound("user")
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("user")
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sortNewestFirst(out, func(u *model.User) time.Time { return u.CreatedAt })
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

type ClinicRepository struct {
	mu      sync.RWMutex
	clinics map[uuid.UUID]model.Clinic
	// appointments is wired so clinic deletion can cascade like the schema does.
	appointments *AppointmentRepository
	seq          int
}

func NewClinicRepository(appointments *AppointmentRepository) *ClinicRepository {
	return &ClinicRepository{
		clinics:      make(map[uuid.UUID]model.Clinic),
		appointments: appointments,
	}
}

func (r *ClinicRepository) Create(_ context.Context, clinic *model.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clinic.ID = uuid.New()
	r.seq++
	clinic.CreatedAt = stampAt(r.seq)
	clinic.UpdatedAt = clinic.CreatedAt
	r.clinics[clinic.ID] = *clinic
	return nil
}

func (r *ClinicRepository) Get(_ context.Context, id uuid.UUID) (*model.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clinics[id]
	if !ok {
		return nil, apperror.NotFound("clinic")
	}
	return &c, nil
}

func (r *ClinicRepository) Update(_ context.Context, clinic *model.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clinics[clinic.ID]; !ok {
		return apperror.NotFound("clinic")
	}
	clinic.UpdatedAt = time.Now()
	r.clinics[clinic.ID] = *clinic
	return nil
}

func (r *ClinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	if _, ok := r.clinics[id]; !ok {
		r.mu.Unlock()
		return apperror.NotFound("clinic")
	}
	delete(r.clinics, id)
	r.mu.Unlock()

	if r.appointments != nil {
		r.appointments.deleteByClinic(id)
	}
	return nil
}

func (r *ClinicRepository) List(_ context.Context) ([]*model.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Clinic, 0, len(r.clinics))
	for _, c := range r.clinics {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ClinicRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clinics), nil
}

type TipRepository struct {
	mu   sync.RWMutex
	tips map[uuid.UUID]model.Tip
	seq  int
}

func NewTipRepository() *TipRepository {
	return &TipRepository{tips: make(map[uuid.UUID]model.Tip)}
}

func (r *TipRepository) Create(_ context.Context, tip *model.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tip.ID = uuid.New()
	r.seq++
	tip.CreatedAt = stampAt(r.seq)
	tip.UpdatedAt = tip.CreatedAt
	r.tips[tip.ID] = *tip
	return nil
}

func (r *TipRepository) Get(_ context.Context, id uuid.UUID) (*model.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tips[id]
	if !ok {
		return nil, apperror.NotFound("tip")
	}
	return &t, nil
}

func (r *TipRepository) Update(_ context.Context, tip *model.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tips[tip.ID]; !ok {
		return apperror.NotFound("tip")
	}
	tip.UpdatedAt = time.Now()
	r.tips[tip.ID] = *tip
	return nil
}

func (r *TipRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tips[id]; !ok {
		return apperror.NotFound("tip")
	}
	delete(r.tips, id)
	return nil
}

func (r *TipRepository) List(_ context.Context) ([]*model.Tip, error) {
	return r.list(func(model.Tip) bool { return true }, 0), nil
}

func (r *TipRepository) ListByLanguage(_ context.Context, language string) ([]*model.Tip, error) {
	return r.list(func(t model.Tip) bool { return t.Language == language }, 0), nil
}

func (r *TipRepository) ListNewest(_ context.Context, limit int) ([]*model.Tip, error) {
	return r.list(func(model.Tip) bool { return true }, limit), nil
}

func (r *TipRepository) list(keep func(model.Tip) bool, limit int) []*model.Tip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Tip, 0, len(r.tips))
	for _, t := range r.tips {
		if keep(t) {
			t := t
			out = append(out, &t)
		}
	}
	sortNewestFirst(out, func(t *model.Tip) time.Time { return t.CreatedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type AppointmentRepository struct {
	mu    sync.RWMutex
	appts map[uuid.UUID]model.Appointment
	seq   int
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{appts: make(map[uuid.UUID]model.Appointment)}
}

func (r *AppointmentRepository) Create(_ context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt.ID = uuid.New()
	r.seq++
	appt.CreatedAt = stampAt(r.seq)
	appt.UpdatedAt = appt.CreatedAt
	if appt.Status == "" {
		appt.Status = model.AppointmentStatusPending
	}
	r.appts[appt.ID] = *appt
	return nil
}

func (r *AppointmentRepository) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, apperror.NotFound("appointment")
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(_ context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[appt.ID]; !ok {
		return apperror.NotFound("appointment")
	}
	appt.UpdatedAt = time.Now()
	r.appts[appt.ID] = *appt
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[id]; !ok {
		return apperror.NotFound("appointment")
	}
	delete(r.appts, id)
	return nil
}

func (r *AppointmentRepository) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return r.list(func(a model.Appointment) bool {
		if filters == nil {
			return true
		}
		if filters.ClinicName != "" && a.ClinicName != filters.ClinicName {
			return false
		}
		if filters.Date != "" && a.Date != filters.Date {
			return false
		}
		return true
	}), nil
}

func (r *AppointmentRepository) ListByMotherName(_ context.Context, motherName string) ([]*model.Appointment, error) {
	return r.list(func(a model.Appointment) bool { return a.MotherName == motherName }), nil
}

func (r *AppointmentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.appts), nil
}

func (r *AppointmentRepository) list(keep func(model.Appointment) bool) []*model.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Appointment, 0, len(r.appts))
	for _, a := range r.appts {
		if keep(a) {
			a := a
			out = append(out, &a)
		}
	}
	sortNewestFirst(out, func(a *model.Appointment) time.Time { return a.CreatedAt })
	return out
}

func (r *AppointmentRepository) deleteByClinic(clinicID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.appts {
		if a.ClinicID != nil && *a.ClinicID == clinicID {
			delete(r.appts, id)
		}
	}
}

// stampAt makes creation order observable in tests without sleeping between
// inserts.
func stampAt(seq int) time.Time {
	return time.Unix(0, 0).Add(time.Duration(seq) * time.Second)
}

func sortNewestFirst[T any](items []*T, at func(*T) time.Time) {
	sort.Slice(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
}

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.ClinicRepository      = (*ClinicRepository)(nil)
	_ repository.TipRepository         = (*TipRepository)(nil)
	_ repository.AppointmentRepository = (*AppointmentRepository)(nil)
)
