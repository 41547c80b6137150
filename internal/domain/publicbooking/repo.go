package publicbooking

import (
	"context"

	"github.com/google/uuid"
)

type SettingRepository interface {
	Upsert(ctx context.Context, s *Setting) error
	GetByClinicID(ctx context.Context, clinicID uuid.UUID) (*Setting, error)
	GetBySlug(ctx context.Context, slug string) (*Setting, error)
	SlugTaken(ctx context.Context, slug string, excludeClinicID uuid.UUID) (bool, error)
}
