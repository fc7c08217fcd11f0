package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// StringList is a jsonb-backed list of plain strings, used for guest dietary tags.
type StringList []string

func (a StringList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringList) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_PUBLISHED EventStatus = "published"
	EVENT_CANCELED  EventStatus = "canceled"
	EVENT_ARCHIVED  EventStatus = "archived"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_REJECTED  BookingStatus = "rejected"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type InvitationStatus string

const (
	INVITATION_SENT     InvitationStatus = "sent"
	INVITATION_ACCEPTED InvitationStatus = "accepted"
	INVITATION_DECLINED InvitationStatus = "declined"
)

type LocationKind string

const (
	LOCATION_OWN    LocationKind = "own"
	LOCATION_RENTAL LocationKind = "rental"
)

type Severity string

const (
	SEVERITY_LOW    Severity = "low"
	SEVERITY_MEDIUM Severity = "medium"
	SEVERITY_HIGH   Severity = "high"
)

// Rank orders severities so aggregations can keep the worst one seen.
func (s Severity) Rank() int {
	switch s {
	case SEVERITY_HIGH:
		return 3
	case SEVERITY_MEDIUM:
		return 2
	case SEVERITY_LOW:
		return 1
	}
	return 0
}

const (
	ROLE_CLIENT   = "client"
	ROLE_PROVIDER = "provider"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegistrationConflictURIParams struct {
	ID             uint `uri:"id" binding:"required"`
	RegistrationID uint `uri:"rid" binding:"required"`
}

type EstimateRequestBody struct {
	Services   []uint `json:"services" binding:"required,min=1"`
	GuestCount *uint  `json:"guest_count,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	NewStatus BookingStatus `json:"new_status" binding:"required,oneof=confirmed rejected completed"`
}

type GuestRegistrationRequestBody struct {
	FullName    string   `json:"full_name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	Allergies   string   `json:"allergies,omitempty"`
	PlusOne     bool     `json:"plus_one,omitempty"`
	PlusOneName string   `json:"plus_one_name,omitempty"`
	Attending   *bool    `json:"attending" binding:"required"`
}
