package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
)

var (
	ErrRequestNotFound = errors.New("booking request not found")
	ErrInvalidState    = errors.New("booking request is not in a confirmable state")
	ErrSlotTaken       = errors.New("requested slot is no longer available")
)

// Calendar is the slice of the scheduling service the lifecycle needs.
type Calendar interface {
	IsFree(ctx context.Context, ownerID uuid.UUID, candidate scheduling.Interval, excludeID *uuid.UUID) (bool, error)
	CreateAppointment(ctx context.Context, a *scheduling.Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

// PatientDirectory is the slice of the identity service the lifecycle needs.
type PatientDirectory interface {
	CreatePatient(ctx context.Context, p *identity.Patient) error
	GetPatient(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
}

type Service struct {
	requests RequestRepository
	calendar Calendar
	patients PatientDirectory
	grid     scheduling.GridOptions
}

func NewService(requests RequestRepository, calendar Calendar, patients PatientDirectory, grid scheduling.GridOptions) *Service {
	if grid.SlotMinutes <= 0 {
		grid = scheduling.DefaultGridOptions()
	}
	return &Service{requests: requests, calendar: calendar, patients: patients, grid: grid}
}

// CreateRequest records a pending request. Availability is deliberately not
// checked here; requests are advisory until a staff member confirms them.
func (s *Service) CreateRequest(ctx context.Context, r *BookingRequest) error {
	if r.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id is required")
	}
	if r.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if r.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if r.Email == "" && r.Phone == "" {
		return fmt.Errorf("email or phone is required")
	}
	if !scheduling.ValidDate(r.Date) {
		return fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}
	// A zero Start is indistinguishable from an omitted field, and the
	// bookable day never opens at midnight, so the window check covers both.
	if r.Start < s.grid.DayStart || r.Start >= s.grid.DayEnd {
		return fmt.Errorf("start must be between %s and %s", s.grid.DayStart, s.grid.DayEnd)
	}
	if r.End == 0 {
		r.End = r.Start + scheduling.TimeOfDay(s.grid.SlotMinutes)
	}
	if !r.Interval().Valid() {
		return fmt.Errorf("end must be after start")
	}
	if r.End > s.grid.DayEnd {
		return fmt.Errorf("end must be no later than %s", s.grid.DayEnd)
	}
	r.Status = StatusPending
	return s.requests.Create(ctx, r)
}

type ConfirmInput struct {
	PatientID  *uuid.UUID        `json:"patient_id,omitempty"`
	NewPatient *identity.Patient `json:"new_patient,omitempty"`
}

// Confirm turns a pending request into a scheduled appointment. The slot is
// re-checked against the owner's calendar first; a conflict leaves the
// request pending so staff can offer another time. If the confirmed-status
// write fails after the appointment was created, the appointment is deleted
// so the two records never disagree.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, in ConfirmInput) (*scheduling.Appointment, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidState
	}

	patientID, err := s.bindPatient(ctx, r, in)
	if err != nil {
		return nil, err
	}

	free, err := s.calendar.IsFree(ctx, r.OwnerID, r.Interval(), nil)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotTaken
	}

	appt := &scheduling.Appointment{
		OwnerID:   r.OwnerID,
		PatientID: patientID,
		Date:      r.Date,
		Start:     r.Start,
		End:       r.End,
		Status:    scheduling.StatusScheduled,
		IsVirtual: r.IsVirtual,
		Note:      r.Reason,
	}
	if err := s.calendar.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, scheduling.ErrConflict) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if err := s.requests.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		if delErr := s.calendar.DeleteAppointment(ctx, appt.ID); delErr != nil {
			return nil, fmt.Errorf("confirm request: %w (appointment %s not rolled back: %v)", err, appt.ID, delErr)
		}
		return nil, fmt.Errorf("confirm request: %w", err)
	}
	return appt, nil
}

// bindPatient resolves the roster entry an appointment will reference:
// an explicit existing patient, a caller-supplied new record, or a record
// built from the request's own contact details.
func (s *Service) bindPatient(ctx context.Context, r *BookingRequest, in ConfirmInput) (uuid.UUID, error) {
	if in.PatientID != nil {
		p, err := s.patients.GetPatient(ctx, *in.PatientID)
		if err != nil {
			return uuid.Nil, err
		}
		// A patient from another clinic's roster is invisible here.
		if p.OwnerID != r.OwnerID {
			return uuid.Nil, identity.ErrPatientNotFound
		}
		return p.ID, nil
	}

	p := in.NewPatient
	if p == nil {
		p = &identity.Patient{
			FirstName: r.FirstName,
			LastName:  r.LastName,
		}
		if r.Email != "" {
			email := r.Email
			p.Email = &email
		}
		if r.Phone != "" {
			phone := r.Phone
			p.Phone = &phone
		}
	}
	p.OwnerID = r.OwnerID
	if err := s.patients.CreatePatient(ctx, p); err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

// Reject marks a pending request rejected. Rejecting an already rejected
// request succeeds without a write; a confirmed request cannot be rejected.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRequestNotFound
		}
		return err
	}
	switch r.Status {
	case StatusRejected:
		return nil
	case StatusPending:
		return s.requests.UpdateStatus(ctx, id, StatusRejected)
	default:
		return ErrInvalidState
	}
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*BookingRequest, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) ListRequests(ctx context.Context, ownerID uuid.UUID, status string, limit, offset int) ([]*BookingRequest, int, error) {
	return s.requests.ListByOwner(ctx, ownerID, status, limit, offset)
}
