package models

import (
	"evp/src/lib"
	"evp/src/types"
	"log"

	"github.com/google/uuid"
)

// Notification is one row of the organizer-facing feed. High-severity dietary
// declarations land here the moment a guest registers.
type Notification struct {
	ID          uuid.UUID      `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	EventID     uint           `gorm:"index" json:"event_id,omitempty"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Severity    types.Severity `json:"severity,omitempty"`
	Type        string         `json:"type,omitempty"`
	Body        *types.JSONB   `gorm:"type:jsonb" json:"body,omitempty"`

	types.Timestamps
}

func OrganizerNotificationProducer(eventId uint, payload map[string]any) error {
	err := lib.KafkaProduceMessage("organizer_notifications_producer", "organizer-notifications", payload)
	if err != nil {
		log.Printf("Error on producing message: %s\n", err.Error())
		return err
	}
	return nil
}
