package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a booking record. It is write-once: there are no update or
// delete operations. UserID is always the identity that created it.
type Reservation struct {
	ID          uuid.UUID
	Destination string
	Date        string // locale-rendered, no machine format enforced
	Type        string
	UserID      uuid.UUID
	CreatedAt   time.Time
}

// ReservationDraft is the form state for a reservation.
type ReservationDraft struct {
	Destination string
	Date        string
	Type        string
}
