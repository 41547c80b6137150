package identity

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Every patient belongs to one clinic
// owner; matching and listing are always scoped by OwnerID.
type Patient struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	DateOfBirth *string   `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Contact is the public-submitted contact detail used for roster matching.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
