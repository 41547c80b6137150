package publicbooking

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrPageNotFound covers both a slug that does not exist and one whose
	// page is disabled. The two cases must be indistinguishable to callers
	// so the public API does not leak which slugs are registered.
	ErrPageNotFound = errors.New("booking page not found")

	ErrSettingNotFound = errors.New("booking settings not configured")
	ErrSlugTaken       = errors.New("slug is already in use")
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	slugMinLen = 3
	slugMaxLen = 64
)

type Service struct {
	settings SettingRepository
}

func NewService(settings SettingRepository) *Service {
	return &Service{settings: settings}
}

// Resolve maps a public slug to its setting, refusing disabled pages.
func (s *Service) Resolve(ctx context.Context, slug string) (*Setting, error) {
	setting, err := s.settings.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	if !setting.Enabled {
		return nil, ErrPageNotFound
	}
	return setting, nil
}

func validateSlug(slug string) error {
	if len(slug) < slugMinLen || len(slug) > slugMaxLen {
		return fmt.Errorf("slug must be between %d and %d characters", slugMinLen, slugMaxLen)
	}
	if !slugRe.MatchString(slug) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and single hyphens")
	}
	return nil
}

func (s *Service) CheckSlugAvailable(ctx context.Context, slug string, excludeClinicID uuid.UUID) (bool, error) {
	if err := validateSlug(slug); err != nil {
		return false, err
	}
	taken, err := s.settings.SlugTaken(ctx, slug, excludeClinicID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// UpsertSetting validates and saves a clinic's page configuration. The slug
// uniqueness check here is advisory; the unique index on the slug column is
// what actually arbitrates concurrent claims.
func (s *Service) UpsertSetting(ctx context.Context, setting *Setting) error {
	if setting.ClinicID == uuid.Nil {
		return fmt.Errorf("clinic_id is required")
	}
	if setting.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id is required")
	}
	if setting.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	if err := validateSlug(setting.Slug); err != nil {
		return err
	}
	taken, err := s.settings.SlugTaken(ctx, setting.Slug, setting.ClinicID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return s.settings.Upsert(ctx, setting)
}

func (s *Service) GetSetting(ctx context.Context, clinicID uuid.UUID) (*Setting, error) {
	setting, err := s.settings.GetByClinicID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return setting, nil
}
