package models

import "evp/src/types"

type GuestRegistration struct {
	ID                  uint             `gorm:"primarykey" json:"id"`
	EventID             uint             `gorm:"uniqueIndex:idx_registrations_event_email" json:"event_id,omitempty"`
	Email               string           `gorm:"uniqueIndex:idx_registrations_event_email" json:"email,omitempty"`
	InvitationCode      *string          `json:"invitation_code,omitempty"`
	FullName            string           `json:"full_name,omitempty"`
	DietaryTags         types.StringList `gorm:"type:jsonb" json:"dietary_tags,omitempty"`
	Allergies           *string          `json:"allergies,omitempty"`
	PlusOneName         *string          `json:"plus_one_name,omitempty"`
	AttendanceConfirmed bool             `json:"attendance_confirmed"`

	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
