package models

import (
	"evp/src/types"
	"time"
)

type Event struct {
	ID              uint               `gorm:"primarykey" json:"id"`
	Name            string             `json:"name,omitempty"`
	Type            string             `gorm:"default:'general'" json:"type,omitempty"`
	About           *string            `json:"about,omitempty"`
	Slug            string             `gorm:"index" json:"slug,omitempty"`
	Date            *time.Time         `json:"date,omitempty"`
	StartTime       string             `json:"start_time,omitempty"`
	EndTime         string             `json:"end_time,omitempty"`
	LocationKind    types.LocationKind `gorm:"default:'own'" json:"location_kind,omitempty"`
	VenueID         *uint              `json:"venue_id,omitempty"`
	Address         string             `json:"address,omitempty"`
	GuestCount      *uint              `json:"guest_count,omitempty"`
	TargetAudience  string             `json:"target_audience,omitempty"`
	IsPrivate       bool               `gorm:"default:true" json:"is_private"`
	IsAdultsOnly    bool               `json:"is_adults_only"`
	SpecialRequests string             `json:"special_requests,omitempty"`
	SplitCosts      bool               `json:"split_costs"`
	EstimatedTotal  float32            `json:"estimated_total"`
	Status          types.EventStatus  `gorm:"default:'draft'" json:"status,omitempty"`
	OrganizerID     uint               `json:"organizer,omitempty"`

	Organizer       User                `gorm:"foreignKey:organizer_id" json:"-"`
	Services        []EventService      `gorm:"foreignKey:event_id" json:"services,omitempty"`
	Bookings        []Booking           `gorm:"foreignKey:event_id" json:"bookings,omitempty"`
	Invitations     []Invitation        `gorm:"foreignKey:event_id" json:"invitations,omitempty"`
	Registrations   []GuestRegistration `gorm:"foreignKey:event_id" json:"registrations,omitempty"`
	DietaryRecords  []DietaryRecord     `gorm:"foreignKey:event_id" json:"dietary_records,omitempty"`
	PerGuestItems   []PerGuestItem      `gorm:"foreignKey:event_id" json:"per_guest_items,omitempty"`
	GiftSuggestions []GiftSuggestion    `gorm:"foreignKey:event_id" json:"gift_suggestions,omitempty"`

	types.Timestamps
}

// EventService links an event to a selected catalog item. Position keeps the
// organizer's display order; the cost engine does not depend on it.
type EventService struct {
	ID        uint `gorm:"primarykey" json:"id"`
	EventID   uint `json:"event_id,omitempty"`
	ServiceID uint `json:"service_id,omitempty"`
	Position  uint `json:"position"`

	Event Event `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}
