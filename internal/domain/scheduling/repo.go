package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]*Appointment, error)
	Search(ctx context.Context, ownerID uuid.UUID, params map[string]string, limit, offset int) ([]*Appointment, int, error)
}
