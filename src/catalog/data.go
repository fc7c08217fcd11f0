package catalog

const (
	CATEGORY_CATERING     = "Catering & Food"
	CATEGORY_BAKERY       = "Specialty Bakery"
	CATEGORY_MUSIC        = "Music & Entertainment"
	CATEGORY_PHOTOGRAPHY  = "Photography & Video"
	CATEGORY_DECORATION   = "Decoration & Styling"
	CATEGORY_BAR          = "Bar & Beverages"
	CATEGORY_VENUE        = "Venue Rental"
	CATEGORY_TRANSPORT    = "Transport & Logistics"
	CATEGORY_COORDINATION = "Planning & Coordination"
)

// defaultItems is the reference price table. It is refreshed out of band; the
// core only ever reads it.
var defaultItems = []Item{
	{ID: 1, Category: CATEGORY_CATERING, Name: "CateringPremium", UnitPrice: 45, PricingMode: PER_PERSON},
	{ID: 2, Category: CATEGORY_CATERING, Name: "CateringStandard", UnitPrice: 28, PricingMode: PER_PERSON},
	{ID: 3, Category: CATEGORY_CATERING, Name: "CateringFingerFood", UnitPrice: 16.5, PricingMode: PER_PERSON},
	{ID: 4, Category: CATEGORY_BAKERY, Name: "BakeryCustomCake", UnitPrice: 180, PricingMode: PER_EVENT},
	{ID: 5, Category: CATEGORY_BAKERY, Name: "BakeryDessertTable", UnitPrice: 6.5, PricingMode: PER_PERSON},
	{ID: 6, Category: CATEGORY_MUSIC, Name: "DJProfessional", UnitPrice: 600, PricingMode: PER_EVENT},
	{ID: 7, Category: CATEGORY_MUSIC, Name: "LiveBand", UnitPrice: 1400, PricingMode: PER_EVENT},
	{ID: 8, Category: CATEGORY_PHOTOGRAPHY, Name: "PhotographerFullDay", UnitPrice: 850, PricingMode: PER_EVENT},
	{ID: 9, Category: CATEGORY_PHOTOGRAPHY, Name: "VideographerHighlights", UnitPrice: 700, PricingMode: PER_EVENT},
	{ID: 10, Category: CATEGORY_DECORATION, Name: "DecorFloral", UnitPrice: 320, PricingMode: PER_EVENT},
	{ID: 11, Category: CATEGORY_DECORATION, Name: "DecorLighting", UnitPrice: 240, PricingMode: PER_EVENT},
	{ID: 12, Category: CATEGORY_BAR, Name: "OpenBarService", UnitPrice: 18, PricingMode: PER_PERSON},
	{ID: 13, Category: CATEGORY_VENUE, Name: "VenueGardenHall", UnitPrice: 2500, PricingMode: PER_EVENT},
	{ID: 14, Category: CATEGORY_TRANSPORT, Name: "GuestShuttle", UnitPrice: 9, PricingMode: PER_PERSON},
	{ID: 15, Category: CATEGORY_COORDINATION, Name: "DayOfCoordinator", UnitPrice: 450, PricingMode: PER_EVENT},
}

var defaultCatalog = New(defaultItems)

func Default() *Catalog {
	return defaultCatalog
}
