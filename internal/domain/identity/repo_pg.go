package identity

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

type patientRepoPG struct{ db queryable }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{db: pool}
}

const patientCols = `id, owner_id, first_name, last_name, email, phone,
	date_of_birth, note, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.OwnerID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.DateOfBirth, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO patient (id, owner_id, first_name, last_name, email, phone, date_of_birth, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.OwnerID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Note)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.db.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.db.Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, email=$4, phone=$5,
			date_of_birth=$6, note=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Note)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM patient WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+patientCols+` FROM patient
		WHERE owner_id = $1 ORDER BY last_name ASC, first_name ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// FindByContact returns the oldest patient whose email matches
// case-insensitively or whose phone matches exactly. pgx.ErrNoRows means no
// match.
func (r *patientRepoPG) FindByContact(ctx context.Context, ownerID uuid.UUID, email, phone string) (*Patient, error) {
	return scanPatient(r.db.QueryRow(ctx, `SELECT `+patientCols+` FROM patient
		WHERE owner_id = $1
		  AND (($2 <> '' AND lower(email) = lower($2)) OR ($3 <> '' AND phone = $3))
		ORDER BY created_at ASC LIMIT 1`,
		ownerID, email, phone))
}
