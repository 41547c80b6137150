package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Cancelled appointments release their slot; completed
// and no-show ones still occupy it, since they record real clinic time.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Appointment maps to the appointment table. One appointment occupies exactly
// one interval on one clinic-day; all queries are scoped by OwnerID.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OwnerID    uuid.UUID `db:"owner_id" json:"owner_id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Date       string    `db:"date" json:"date"`
	Start      TimeOfDay `db:"start_minute" json:"start"`
	End        TimeOfDay `db:"end_minute" json:"end"`
	Status     string    `db:"status" json:"status"`
	IsVirtual  bool      `db:"is_virtual" json:"is_virtual"`
	MeetingRef *string   `db:"meeting_ref" json:"meeting_ref,omitempty"`
	Note       *string   `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Interval returns the appointment's occupied time range.
func (a *Appointment) Interval() Interval {
	return Interval{Date: a.Date, Start: a.Start, End: a.End}
}

// Blocks reports whether the appointment occupies its slot for availability
// purposes.
func (a *Appointment) Blocks() bool {
	return a.Status != StatusCancelled
}

// SlotMark is one grid cell in a day's availability, in chronological order.
type SlotMark struct {
	Interval
	Available bool `json:"available"`
}
