package models

import "evp/src/types"

// Provider is the vendor fulfilling one catalog service. Exactly one provider
// row is expected per service id; booking creation resolves through it.
type Provider struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	UserID    uint   `json:"user_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Category  string `json:"category,omitempty"`
	ServiceID uint   `gorm:"index" json:"service_id,omitempty"`

	User     *User     `gorm:"foreignKey:user_id" json:"-"`
	Bookings []Booking `gorm:"foreignKey:provider_id" json:"bookings,omitempty"`

	types.Timestamps
}
