package publicbooking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type settingRepoPG struct{ db queryable }

func NewSettingRepoPG(pool *pgxpool.Pool) SettingRepository {
	return &settingRepoPG{db: pool}
}

const settingCols = `clinic_id, owner_id, enabled, slug, display_name, created_at, updated_at`

func scanSetting(row pgx.Row) (*Setting, error) {
	var s Setting
	err := row.Scan(&s.ClinicID, &s.OwnerID, &s.Enabled, &s.Slug, &s.DisplayName, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *settingRepoPG) Upsert(ctx context.Context, s *Setting) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO public_booking_setting (clinic_id, owner_id, enabled, slug, display_name)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (clinic_id) DO UPDATE SET
			owner_id=EXCLUDED.owner_id, enabled=EXCLUDED.enabled,
			slug=EXCLUDED.slug, display_name=EXCLUDED.display_name, updated_at=NOW()`,
		s.ClinicID, s.OwnerID, s.Enabled, s.Slug, s.DisplayName)
	return err
}

func (r *settingRepoPG) GetByClinicID(ctx context.Context, clinicID uuid.UUID) (*Setting, error) {
	return scanSetting(r.db.QueryRow(ctx,
		`SELECT `+settingCols+` FROM public_booking_setting WHERE clinic_id = $1`, clinicID))
}

func (r *settingRepoPG) GetBySlug(ctx context.Context, slug string) (*Setting, error) {
	return scanSetting(r.db.QueryRow(ctx,
		`SELECT `+settingCols+` FROM public_booking_setting WHERE slug = $1`, slug))
}

func (r *settingRepoPG) SlugTaken(ctx context.Context, slug string, excludeClinicID uuid.UUID) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM public_booking_setting WHERE slug = $1 AND clinic_id <> $2)`,
		slug, excludeClinicID).Scan(&taken)
	return taken, err
}
