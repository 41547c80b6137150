package publicbooking

import (
	"time"

	"github.com/google/uuid"
)

// Setting is a clinic's public booking page configuration. One row per
// clinic; the slug is the public identity and must be globally unique.
type Setting struct {
	ClinicID    uuid.UUID `db:"clinic_id" json:"clinic_id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Enabled     bool      `db:"enabled" json:"enabled"`
	Slug        string    `db:"slug" json:"slug"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Page is the public projection of a Setting. Internal identifiers stay
// out of unauthenticated responses.
type Page struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
}

func (s *Setting) Page() Page {
	return Page{Slug: s.Slug, DisplayName: s.DisplayName}
}
