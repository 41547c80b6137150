package booking

import (
	"context"

	"github.com/google/uuid"
)

type RequestRepository interface {
	Create(ctx context.Context, r *BookingRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status string, limit, offset int) ([]*BookingRequest, int, error)
}
