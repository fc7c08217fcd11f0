package models

import "evp/src/types"

// PerGuestItem and GiftSuggestion are ordered auxiliary rows shown on the
// event page; neither feeds the cost engine.

type PerGuestItem struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	EventID  uint   `json:"event_id,omitempty"`
	Label    string `json:"label,omitempty"`
	Position uint   `json:"position"`

	Event *Event `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}

type GiftSuggestion struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	EventID  uint   `json:"event_id,omitempty"`
	Label    string `json:"label,omitempty"`
	Position uint   `json:"position"`

	Event *Event `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}
