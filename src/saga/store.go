package saga

import (
	"context"

	"evp/src/db"
	"evp/src/models"
)

// GormStore backs the saga with postgres through gorm. Deliberately no
// db.Transaction wrapper anywhere here: the saga's contract is one write per
// call, each succeeding or failing on its own.
type GormStore struct{}

func NewGormStore() *GormStore {
	return &GormStore{}
}

func (s *GormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	return db.GetDb().WithContext(ctx).Create(event).Error
}

func (s *GormStore) CreateEventService(ctx context.Context, link *models.EventService) error {
	return db.GetDb().WithContext(ctx).Create(link).Error
}

func (s *GormStore) ResolveProvider(ctx context.Context, serviceId uint) (uint, error) {
	var provider models.Provider
	err := db.GetDb().
		WithContext(ctx).
		Model(&models.Provider{}).
		Where(&models.Provider{ServiceID: serviceId}).
		First(&provider).
		Error
	if err != nil {
		return 0, err
	}
	return provider.ID, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return db.GetDb().WithContext(ctx).Create(booking).Error
}

func (s *GormStore) CreateDietaryRecords(ctx context.Context, records []models.DietaryRecord) error {
	return db.GetDb().WithContext(ctx).Create(&records).Error
}

func (s *GormStore) CreatePerGuestItems(ctx context.Context, items []models.PerGuestItem) error {
	return db.GetDb().WithContext(ctx).Create(&items).Error
}

func (s *GormStore) CreateGiftSuggestions(ctx context.Context, items []models.GiftSuggestion) error {
	return db.GetDb().WithContext(ctx).Create(&items).Error
}

func (s *GormStore) CreateInvitation(ctx context.Context, invitation *models.Invitation) error {
	return db.GetDb().WithContext(ctx).Create(invitation).Error
}

var _ Store = (*GormStore)(nil)
