package boot

import (
	"evp/src/catalog"
	"evp/src/db"
	"evp/src/lib"
	"evp/src/models"
	"log"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Event{},
		&models.EventService{},
		&models.Booking{},
		&models.Invitation{},
		&models.GuestRegistration{},
		&models.DietaryRecord{},
		&models.PerGuestItem{},
		&models.GiftSuggestion{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// SeedProviders guarantees one provider row per catalog service so booking
// resolution has something to find on a fresh database.
func SeedProviders() {
	db := db.GetDb()
	for _, item := range catalog.Default().Items() {
		var count int64
		if err := db.
			Model(&models.Provider{}).
			Where(&models.Provider{ServiceID: item.ID}).
			Count(&count).
			Error; err != nil {
			log.Printf("Error checking provider for service %d: %s\n", item.ID, err.Error())
			continue
		}
		if count > 0 {
			continue
		}
		provider := models.Provider{
			Name:      item.Name + " Provider",
			Category:  item.Category,
			ServiceID: item.ID,
		}
		if err := db.Create(&provider).Error; err != nil {
			log.Printf("Error seeding provider for service %d: %s\n", item.ID, err.Error())
		}
	}
}

func InitBroker() {
	go lib.KafkaCreateTopics("organizer-notifications")
}
