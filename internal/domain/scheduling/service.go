package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Common errors returned by the availability engine.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrConflict            = errors.New("interval overlaps an existing appointment")
)

var validAppointmentStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

// GridOptions controls the fixed availability grid.
type GridOptions struct {
	SlotMinutes int
	DayStart    TimeOfDay
	DayEnd      TimeOfDay
}

// DefaultGridOptions returns the standard 30-minute grid over a
// 08:00-20:00 working day.
func DefaultGridOptions() GridOptions {
	return GridOptions{SlotMinutes: 30, DayStart: 8 * 60, DayEnd: 20 * 60}
}

type Service struct {
	appointments AppointmentRepository
	grid         GridOptions
}

func NewService(appointments AppointmentRepository, grid GridOptions) *Service {
	if grid.SlotMinutes <= 0 {
		grid = DefaultGridOptions()
	}
	return &Service{appointments: appointments, grid: grid}
}

// GenerateSlots builds the full fixed grid for the owner's day, in
// chronological order, marking a slot unavailable when it overlaps any
// blocking appointment. Deterministic and stateless between calls.
func (s *Service) GenerateSlots(ctx context.Context, ownerID uuid.UUID, date string) ([]SlotMark, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("invalid date %q", date)
	}
	existing, err := s.appointments.ListByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	step := TimeOfDay(s.grid.SlotMinutes)
	var slots []SlotMark
	for start := s.grid.DayStart; start+step <= s.grid.DayEnd; start += step {
		ival := Interval{Date: date, Start: start, End: start + step}
		slots = append(slots, SlotMark{
			Interval:  ival,
			Available: !anyBlockingOverlap(existing, ival, nil),
		})
	}
	return slots, nil
}

// IsFree reports whether the candidate interval is clear of every blocking
// appointment for the owner on that date. excludeID, when set, skips the
// appointment being edited so a resize never conflicts with itself.
func (s *Service) IsFree(ctx context.Context, ownerID uuid.UUID, candidate Interval, excludeID *uuid.UUID) (bool, error) {
	if !candidate.Valid() {
		return false, fmt.Errorf("invalid interval: start must be before end")
	}
	existing, err := s.appointments.ListByOwnerAndDate(ctx, ownerID, candidate.Date)
	if err != nil {
		return false, err
	}
	return !anyBlockingOverlap(existing, candidate, excludeID), nil
}

func anyBlockingOverlap(appointments []*Appointment, candidate Interval, excludeID *uuid.UUID) bool {
	for _, a := range appointments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if !a.Blocks() {
			continue
		}
		if a.Interval().Overlaps(candidate) {
			return true
		}
	}
	return false
}

// CreateAppointment validates the appointment and checks its interval against
// the owner's calendar before writing. Conflict is hard-blocking.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id is required")
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !a.Interval().Valid() {
		return fmt.Errorf("a valid date and start < end are required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}

	free, err := s.IsFree(ctx, a.OwnerID, a.Interval(), nil)
	if err != nil {
		return err
	}
	if !free {
		return ErrConflict
	}
	return s.appointments.Create(ctx, a)
}

// UpdateAppointment re-validates the interval, excluding the appointment
// itself so moving or resizing it never self-conflicts.
func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if !a.Interval().Valid() {
		return fmt.Errorf("a valid date and start < end are required")
	}
	if a.Status != "" && !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}

	current, err := s.appointments.GetByID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		return err
	}
	a.OwnerID = current.OwnerID
	if a.Status == "" {
		a.Status = current.Status
	}

	if a.Blocks() {
		free, err := s.IsFree(ctx, a.OwnerID, a.Interval(), &a.ID)
		if err != nil {
			return err
		}
		if !free {
			return ErrConflict
		}
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validAppointmentStatuses[status] {
		return fmt.Errorf("invalid appointment status: %s", status)
	}
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		return err
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, ownerID uuid.UUID, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.Search(ctx, ownerID, params, limit, offset)
}
