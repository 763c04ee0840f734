package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository/memory"
	"github.com/mobimama/mobimama-api/pkg/apperror"
)

func newTestService() (*Service, *memory.AppointmentRepository, *memory.ClinicRepository) {
	appts := memory.NewAppointmentRepository()
	clinics := memory.NewClinicRepository(appts)
	return NewService(memory.NewUserRepository(), clinics, appts), appts, clinics
}

func TestCreateUserMayBeAdmin(t *testing.T) {
	svc, _, _ := newTestService()

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "root",
		Password: "admin-pass-1",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NotEqual(t, "admin-pass-1", user.PasswordHash)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "akosua", Password: "strong-pass-1", Role: "mother",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "akosua", Password: "strong-pass-1", Role: "nurse",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateUserChangesRole(t *testing.T) {
	svc, _, _ := newTestService()

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "ama", Password: "strong-pass-1", Role: "mother",
	})
	require.NoError(t, err)

	nurse := "nurse"
	updated, err := svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{Role: &nurse})
	require.NoError(t, err)
	assert.Equal(t, model.RoleNurse, updated.Role)
}

func TestUpdateUserRejectsTakenUsername(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "akosua", Password: "strong-pass-1", Role: "mother",
	})
	require.NoError(t, err)

	other, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "abena", Password: "strong-pass-1", Role: "mother",
	})
	require.NoError(t, err)

	taken := "akosua"
	_, err = svc.UpdateUser(context.Background(), other.ID, &model.UpdateUserRequest{Username: &taken})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestDashboardCounts(t *testing.T) {
	svc, appts, clinics := newTestService()

	_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Username: "akosua", Password: "strong-pass-1", Role: "mother",
	})
	require.NoError(t, err)

	require.NoError(t, clinics.Create(context.Background(), &model.Clinic{Name: "Ridge", Address: "Accra", Phone: "030"}))
	require.NoError(t, appts.Create(context.Background(), &model.Appointment{
		MotherName: "akosua", Phone: "024", ClinicName: "Ridge", Date: "2026-09-15",
	}))

	counts, err := svc.DashboardCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.DashboardCounts{Users: 1, Clinics: 1, Appointments: 1}, counts)
}
