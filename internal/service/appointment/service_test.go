package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository/memory"
	"github.com/mobimama/mobimama-api/pkg/apperror"
)

type recordingNotifier struct {
	notified []*model.Appointment
	err      error
}

func (n *recordingNotifier) NotifyAppointmentBooked(appt *model.Appointment) error {
	n.notified = append(n.notified, appt)
	return n.err
}

func newTestService() (*Service, *memory.ClinicRepository, *recordingNotifier) {
	appts := memory.NewAppointmentRepository()
	clinics := memory.NewClinicRepository(appts)
	notifier := &recordingNotifier{}
	return NewService(appts, clinics, notifier, nil), clinics, notifier
}

func book(t *testing.T, svc *Service, username, clinicName, date string) *model.Appointment {
	t.Helper()
	appt, err := svc.BookForMother(context.Background(), username, &model.CreateAppointmentRequest{
		Phone:      "0244000000",
		ClinicName: clinicName,
		Date:       date,
	})
	require.NoError(t, err)
	return appt
}

func TestBookForMotherForcesSessionUsername(t *testing.T) {
	svc, _, notifier := newTestService()

	appt, err := svc.BookForMother(context.Background(), "akosua", &model.CreateAppointmentRequest{
		MotherName: "someone else",
		Phone:      "0244000000",
		ClinicName: "Ridge Hospital",
		Date:       "2026-09-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "akosua", appt.MotherName)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	require.Len(t, notifier.notified, 1)
}

func TestBookingSurvivesNotifierFailure(t *testing.T) {
	svc, _, notifier := newTestService()
	notifier.err = errors.New("smtp down")

	appt := book(t, svc, "akosua", "Ridge Hospital", "2026-09-15")

	got, err := svc.Get(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "akosua", got.MotherName)
}

func TestCreateResolvesClinicID(t *testing.T) {
	svc, clinics, _ := newTestService()

	clinic := &model.Clinic{Name: "Ridge Hospital", Address: "Accra", Phone: "030"}
	require.NoError(t, clinics.Create(context.Background(), clinic))

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		MotherName: "akosua",
		Phone:      "0244000000",
		ClinicID:   clinic.ID.String(),
		ClinicName: "Ridge Hospital",
		Date:       "2026-09-15",
	})
	require.NoError(t, err)
	require.NotNil(t, appt.ClinicID)
	assert.Equal(t, clinic.ID, *appt.ClinicID)
}

func TestCreateRejectsUnknownClinicID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		MotherName: "akosua",
		Phone:      "0244000000",
		ClinicID:   uuid.New().String(),
		ClinicName: "Ridge Hospital",
		Date:       "2026-09-15",
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestMotherListingIsolatedByUsername(t *testing.T) {
	svc, _, _ := newTestService()

	book(t, svc, "akosua", "Ridge Hospital", "2026-09-15")
	book(t, svc, "abena", "Korle Bu", "2026-09-20")

	akosua, err := svc.ListForMother(context.Background(), "akosua")
	require.NoError(t, err)
	require.Len(t, akosua, 1)
	assert.Equal(t, "Ridge Hospital", akosua[0].ClinicName)

	abena, err := svc.ListForMother(context.Background(), "abena")
	require.NoError(t, err)
	require.Len(t, abena, 1)
	assert.Equal(t, "Korle Bu", abena[0].ClinicName)
}

// The mother-facing listing matches the stored mother_name string, not an
// owner key. A staff edit that renames the record moves it between mothers'
// views. Documented behavior; this pins it.
func TestMotherListingFollowsNameString(t *testing.T) {
	svc, _, _ := newTestService()

	appt := book(t, svc, "akosua", "Ridge Hospital", "2026-09-15")

	renamed := "abena"
	_, err := svc.Update(context.Background(), appt.ID, &model.UpdateAppointmentRequest{
		MotherName: &renamed,
	})
	require.NoError(t, err)

	akosua, err := svc.ListForMother(context.Background(), "akosua")
	require.NoError(t, err)
	assert.Empty(t, akosua)

	abena, err := svc.ListForMother(context.Background(), "abena")
	require.NoError(t, err)
	assert.Len(t, abena, 1)
}

func TestStaffListingFilters(t *testing.T) {
	svc, _, _ := newTestService()

	book(t, svc, "akosua", "Ridge Hospital", "2026-09-15")
	book(t, svc, "abena", "Korle Bu", "2026-09-15")
	book(t, svc, "ama", "Ridge Hospital", "2026-09-20")

	byClinic, err := svc.List(context.Background(), &model.AppointmentFilters{ClinicName: "Ridge Hospital"})
	require.NoError(t, err)
	assert.Len(t, byClinic, 2)

	byBoth, err := svc.List(context.Background(), &model.AppointmentFilters{ClinicName: "Ridge Hospital", Date: "2026-09-15"})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "akosua", byBoth[0].MotherName)

	all, err := svc.List(context.Background(), &model.AppointmentFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateStatusAndClearClinic(t *testing.T) {
	svc, clinics, _ := newTestService()

	clinic := &model.Clinic{Name: "Ridge Hospital", Address: "Accra", Phone: "030"}
	require.NoError(t, clinics.Create(context.Background(), clinic))

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		MotherName: "akosua",
		Phone:      "0244000000",
		ClinicID:   clinic.ID.String(),
		ClinicName: "Ridge Hospital",
		Date:       "2026-09-15",
	})
	require.NoError(t, err)

	confirmed := "confirmed"
	empty := ""
	updated, err := svc.Update(context.Background(), appt.ID, &model.UpdateAppointmentRequest{
		Status:   &confirmed,
		ClinicID: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
	assert.Nil(t, updated.ClinicID)
}

func TestDeleteMissingAppointmentIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}
