// Package email sends operational mail. Delivery is best-effort: callers log
// failures and carry on, they never fail a request over SMTP.
package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/mobimama/mobimama-api/internal/model"
)

// Notifier is the outbound mail surface services depend on.
type Notifier interface {
	NotifyAppointmentBooked(appt *model.Appointment) error
}

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	ClinicInbox string
}

type Service struct {
	dialer *gomail.Dialer
	cfg    Config
}

func NewService(cfg Config) *Service {
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

// NotifyAppointmentBooked mails the clinic inbox about a new booking.
func (s *Service) NotifyAppointmentBooked(appt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.ClinicInbox)
	m.SetHeader("Subject", fmt.Sprintf("New appointment: %s on %s", appt.ClinicName, appt.Date))
	m.SetBody("text/plain", fmt.Sprintf(
		"A new appointment was booked.\n\nMother: %s\nPhone: %s\nClinic: %s\nDate: %s\nNotes: %s\n",
		appt.MotherName, appt.Phone, appt.ClinicName, appt.Date, appt.Notes,
	))
	return s.dialer.DialAndSend(m)
}

// Noop is used when SMTP is not configured.
type Noop struct{}

func (Noop) NotifyAppointmentBooked(*model.Appointment) error { return nil }
