package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Doctor is a clinic physician shown on the public site.
type Doctor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Bio       string    `json:"bio"`
	PhotoKey  string    `json:"photo_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DoctorPatch holds the fields to change; nil means unchanged.
type DoctorPatch struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Bio       *string `json:"bio"`
	PhotoKey  *string `json:"photo_key"`
}

func (d *Doctor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// Service is a treatment or service offered by the clinic.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServicePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (s *Service) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// BlogPost is an article on the clinic blog. Comments hang off it.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ImageKey  string    `json:"image_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogPostPatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	ImageKey *string `json:"image_key"`
}

func (p *BlogPost) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a visit request submitted from the public site.
type Appointment struct {
	ID            string     `json:"id"`
	PatientName   string     `json:"patient_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	DoctorID      *string    `json:"doctor_id"`
	ServiceID     *string    `json:"service_id"`
	PreferredDate *time.Time `json:"preferred_date"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AppointmentPatch struct {
	PreferredDate *time.Time `json:"preferred_date"`
	Message       *string    `json:"message"`
	Status        *string    `json:"status"`
}

func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.PatientName) == "" {
		return errors.New("patient_name is required")
	}
	if strings.TrimSpace(a.Email) == "" && strings.TrimSpace(a.Phone) == "" {
		return errors.New("email or phone is required")
	}
	for _, ref := range []*string{a.DoctorID, a.ServiceID} {
		if ref == nil {
			continue
		}
		if _, err := uuid.Parse(*ref); err != nil {
			return errors.New("doctor_id and service_id must be UUIDs")
		}
	}
	if a.Status == "" {
		a.Status = AppointmentPending
	}
	return validStatus(a.Status)
}

func (p *AppointmentPatch) Validate() error {
	if p.Status == nil {
		return nil
	}
	return validStatus(*p.Status)
}

func validStatus(s string) error {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled:
		return nil
	}
	return errors.New("status must be pending, confirmed or cancelled")
}
