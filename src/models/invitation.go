package models

import "evp/src/types"

type Invitation struct {
	ID         uint                   `gorm:"primarykey" json:"id"`
	EventID    uint                   `json:"event_id,omitempty"`
	GuestEmail string                 `json:"guest_email,omitempty"`
	Code       string                 `gorm:"uniqueIndex" json:"code,omitempty"`
	Status     types.InvitationStatus `gorm:"default:'sent'" json:"status,omitempty"`

	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
