package models

import "evp/src/types"

type Booking struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	EventID    uint                `json:"event_id,omitempty"`
	ServiceID  uint                `json:"service_id,omitempty"`
	ProviderID uint                `json:"provider_id,omitempty"`
	Status     types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Event    *Event    `gorm:"foreignKey:event_id" json:"event,omitempty"`
	Provider *Provider `gorm:"foreignKey:provider_id" json:"provider,omitempty"`

	types.Timestamps
}

// CanTransition reports whether a provider may move a booking to the given
// status. Rejected and completed are terminal.
func (b Booking) CanTransition(next types.BookingStatus) bool {
	switch b.Status {
	case types.BOOKING_PENDING:
		return next == types.BOOKING_CONFIRMED || next == types.BOOKING_REJECTED
	case types.BOOKING_CONFIRMED:
		return next == types.BOOKING_COMPLETED
	}
	return false
}
