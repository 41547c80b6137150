package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrPatientNotFound = errors.New("patient not found")

type Service struct {
	patients PatientRepository
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id is required")
	}
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.patients.ListByOwner(ctx, ownerID, limit, offset)
}

// FindMatch scans the owner's roster for a patient whose email equals the
// contact's case-insensitively, or whose phone equals it exactly. The first
// match wins; contact collisions across patients are treated as data-entry
// noise rather than an error. No match returns (nil, nil).
func (s *Service) FindMatch(ctx context.Context, ownerID uuid.UUID, contact Contact) (*Patient, error) {
	if contact.Email == "" && contact.Phone == "" {
		return nil, nil
	}
	p, err := s.patients.FindByContact(ctx, ownerID, contact.Email, contact.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
