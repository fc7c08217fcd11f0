package models

import "evp/src/types"

// DietaryRecord is an organizer-entered condition captured during event
// composition, either a predefined condition or a custom one.
type DietaryRecord struct {
	ID       uint           `gorm:"primarykey" json:"id"`
	EventID  uint           `json:"event_id,omitempty"`
	Label    string         `json:"label,omitempty"`
	Category string         `json:"category,omitempty"`
	Severity types.Severity `gorm:"default:'low'" json:"severity,omitempty"`

	Event *Event `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}
