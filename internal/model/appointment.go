package model

import "github.com/google/uuid"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booking record. MotherName is free text: mothers get it
// auto-filled with their username, and the mother-facing listing matches on
// it by string equality. ClinicID is set when the booking references a known
// clinic; ClinicName is what filters match against. Date is a free-text
// string, no date-type validation.
type Appointment struct {
	Base
	MotherName string            `json:"mother_name" db:"mother_name"`
	Phone      string            `json:"phone" db:"phone"`
	ClinicID   *uuid.UUID        `json:"clinic_id,omitempty" db:"clinic_id"`
	ClinicName string            `json:"clinic_name" db:"clinic_name"`
	Date       string            `json:"date" db:"date"`
	Notes      string            `json:"notes" db:"notes"`
	Status     AppointmentStatus `json:"status" db:"status"`
}

// CreateAppointmentRequest represents booking parameters
type CreateAppointmentRequest struct {
	MotherName string `json:"mother_name"`
	Phone      string `json:"phone" binding:"required"`
	ClinicID   string `json:"clinic_id" binding:"omitempty,uuid"`
	ClinicName string `json:"clinic_name" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Notes      string `json:"notes"`
}

// UpdateAppointmentRequest represents staff/admin appointment edit parameters
type UpdateAppointmentRequest struct {
	MotherName *string `json:"mother_name"`
	Phone      *string `json:"phone"`
	ClinicID   *string `json:"clinic_id" binding:"omitempty,uuid"`
	ClinicName *string `json:"clinic_name"`
	Date       *string `json:"date"`
	Notes      *string `json:"notes"`
	Status     *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// AppointmentFilters narrows staff/admin listings. Matches are exact, not
// ranges: ClinicName equality and Date string equality.
type AppointmentFilters struct {
	ClinicName string `form:"clinic"`
	Date       string `form:"date"`
}
