package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle state of a spot application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsValid checks if a status is one of the enumerated values
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// String returns the string representation of the status
func (s ApplicationStatus) String() string {
	return string(s)
}

// Application binds exactly one account to one spot. The composite unique
// index on (account_id, spot_id) is the authority for the at-most-one
// invariant; concurrent submits for the same pair cannot both land.
type Application struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID         `json:"accountId" gorm:"type:uuid;not null;uniqueIndex:idx_applications_account_spot"`
	SpotID    uuid.UUID         `json:"spotId" gorm:"type:uuid;not null;uniqueIndex:idx_applications_account_spot"`
	Status    ApplicationStatus `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	// Spot is resolved at read time for display. It stays nil when the
	// catalog entry has been removed; the application itself is never
	// hidden because of a missing spot.
	Spot *Spot `json:"spot,omitempty" gorm:"-"`
}

// StatusCounts aggregates an account's applications by status.
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}
