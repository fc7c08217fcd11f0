package guests

import (
	"context"
	"fmt"
	"time"

	"evp/src/db"
	"evp/src/dietary"
	"evp/src/lib"
	"evp/src/models"
	"evp/src/types"
)

// GormStore persists registrations in postgres with a redis fast path in
// front of the duplicate check. The composite unique index stays the source
// of truth; losing the redis key only costs one extra insert attempt.
type GormStore struct{}

func NewGormStore() *GormStore {
	return &GormStore{}
}

func registrationKey(eventId uint, email string) string {
	return fmt.Sprintf("evp:registration:%d:%s", eventId, email)
}

func (s *GormStore) RegistrationExists(ctx context.Context, eventId uint, email string) (bool, error) {
	if rd := lib.GetRedisClient(); rd != nil {
		hit, err := rd.Exists(ctx, registrationKey(eventId, email)).Result()
		if err == nil && hit > 0 {
			return true, nil
		}
	}
	var count int64
	err := db.GetDb().
		WithContext(ctx).
		Model(&models.GuestRegistration{}).
		Where(&models.GuestRegistration{EventID: eventId, Email: email}).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) CreateRegistration(ctx context.Context, registration *models.GuestRegistration) error {
	err := db.GetDb().WithContext(ctx).Create(registration).Error
	if err != nil {
		return err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		rd.SetEx(ctx, registrationKey(registration.EventID, registration.Email), "1", 24*time.Hour)
	}
	return nil
}

var _ Store = (*GormStore)(nil)

// FeedNotifier writes an organizer feed row and mirrors it onto the broker so
// an open dashboard picks it up without polling.
type FeedNotifier struct{}

func NewFeedNotifier() *FeedNotifier {
	return &FeedNotifier{}
}

func (n *FeedNotifier) HighSeverityDeclared(ctx context.Context, eventId uint, guestName string, condition dietary.Condition) error {
	description := fmt.Sprintf("%s declared %s (%s severity)", guestName, condition.Label, condition.Severity)
	notification := models.Notification{
		EventID:     eventId,
		Title:       "High-severity dietary condition declared",
		Description: &description,
		Severity:    condition.Severity,
		Type:        "dietary",
		Body: &types.JSONB{
			"guest":     guestName,
			"condition": condition.Label,
			"severity":  string(condition.Severity),
		},
	}
	if err := db.GetDb().WithContext(ctx).Create(&notification).Error; err != nil {
		return err
	}
	return models.OrganizerNotificationProducer(eventId, map[string]any{
		"event_id":  eventId,
		"guest":     guestName,
		"condition": condition.Label,
		"severity":  string(condition.Severity),
	})
}

var _ Notifier = (*FeedNotifier)(nil)
