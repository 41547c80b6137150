package booking

import (
	"context"
	"fmt"

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

type requestRepoPG struct{ db queryable }

func NewRequestRepoPG(pool *pgxpool.Pool) RequestRepository {
	return &requestRepoPG{db: pool}
}

const requestCols = `id, clinic_id, owner_id, first_name, last_name, email, phone,
	date, start_minute, end_minute, reason, is_virtual, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*BookingRequest, error) {
	var r BookingRequest
	err := row.Scan(&r.ID, &r.ClinicID, &r.OwnerID, &r.FirstName, &r.LastName, &r.Email, &r.Phone,
		&r.Date, &r.Start, &r.End, &r.Reason, &r.IsVirtual, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *requestRepoPG) Create(ctx context.Context, r *BookingRequest) error {
	r.ID = uuid.New()
	_, err := p.db.Exec(ctx, `
		INSERT INTO booking_request (id, clinic_id, owner_id, first_name, last_name, email, phone,
			date, start_minute, end_minute, reason, is_virtual, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		r.ID, r.ClinicID, r.OwnerID, r.FirstName, r.LastName, r.Email, r.Phone,
		r.Date, int(r.Start), int(r.End), r.Reason, r.IsVirtual, r.Status)
	return err
}

func (p *requestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error) {
	return scanRequest(p.db.QueryRow(ctx, `SELECT `+requestCols+` FROM booking_request WHERE id = $1`, id))
}

func (p *requestRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := p.db.Exec(ctx, `UPDATE booking_request SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (p *requestRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, status string, limit, offset int) ([]*BookingRequest, int, error) {
	query := `SELECT ` + requestCols + ` FROM booking_request WHERE owner_id = $1`
	countQuery := `SELECT COUNT(*) FROM booking_request WHERE owner_id = $1`
	args := []interface{}{ownerID}
	idx := 2

	if status != "" {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, status)
		idx++
	}

	var total int
	if err := p.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*BookingRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}
