package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

// BookingRequest is a patient-submitted request for a slot. It holds a copy
// of the contact details rather than a patient reference; binding to the
// roster happens at confirmation time.
type BookingRequest struct {
	ID        uuid.UUID            `db:"id" json:"id"`
	ClinicID  uuid.UUID            `db:"clinic_id" json:"clinic_id"`
	OwnerID   uuid.UUID            `db:"owner_id" json:"owner_id"`
	FirstName string               `db:"first_name" json:"first_name"`
	LastName  string               `db:"last_name" json:"last_name"`
	Email     string               `db:"email" json:"email"`
	Phone     string               `db:"phone" json:"phone"`
	Date      string               `db:"date" json:"date"`
	Start     scheduling.TimeOfDay `db:"start_minute" json:"start"`
	End       scheduling.TimeOfDay `db:"end_minute" json:"end"`
	Reason    *string              `db:"reason" json:"reason,omitempty"`
	IsVirtual bool                 `db:"is_virtual" json:"is_virtual"`
	Status    string               `db:"status" json:"status"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt time.Time            `db:"updated_at" json:"updated_at"`
}

func (r *BookingRequest) Interval() scheduling.Interval {
	return scheduling.Interval{Date: r.Date, Start: r.Start, End: r.End}
}
