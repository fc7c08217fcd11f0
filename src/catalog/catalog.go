// Package catalog holds the sellable service table and the cost engine that
// turns a selection plus a guest count into an estimated total.
package catalog

type PricingMode string

const (
	PER_EVENT  PricingMode = "per-event"
	PER_PERSON PricingMode = "per-person"
)

type Item struct {
	ID          uint        `json:"id"`
	Category    string      `json:"category"`
	Name        string      `json:"name"`
	UnitPrice   float32     `json:"unit_price"`
	PricingMode PricingMode `json:"pricing_mode"`
}

type Catalog struct {
	items []Item
	byId  map[uint]Item
}

func New(items []Item) *Catalog {
	byId := make(map[uint]Item, len(items))
	for _, item := range items {
		byId[item.ID] = item
	}
	return &Catalog{items: items, byId: byId}
}

func (c *Catalog) Items() []Item {
	return c.items
}

func (c *Catalog) Lookup(id uint) (Item, bool) {
	item, ok := c.byId[id]
	return item, ok
}

// Category resolves a service id to its category. Unknown ids report ok=false
// rather than an error; callers treat them as non-matching.
func (c *Catalog) Category(id uint) (string, bool) {
	item, ok := c.byId[id]
	if !ok {
		return "", false
	}
	return item.Category, true
}

// Estimate computes the total for a selection. Per-event items contribute
// their unit price once; per-person items contribute unit price times guest
// count. A nil guest count previews as zero guests; the wizard blocks
// submission before a nil count can become a final total. Unknown service ids
// contribute nothing. Pure and order-independent.
func (c *Catalog) Estimate(serviceIds []uint, guestCount *uint) float32 {
	var guests float32
	if guestCount != nil {
		guests = float32(*guestCount)
	}
	var total float32
	for _, id := range serviceIds {
		item, ok := c.byId[id]
		if !ok {
			continue
		}
		switch item.PricingMode {
		case PER_PERSON:
			total += item.UnitPrice * guests
		default:
			total += item.UnitPrice
		}
	}
	return total
}

// RequiresGuestCount is true iff at least one selected item is priced
// per-person.
func (c *Catalog) RequiresGuestCount(serviceIds []uint) bool {
	for _, id := range serviceIds {
		if item, ok := c.byId[id]; ok && item.PricingMode == PER_PERSON {
			return true
		}
	}
	return false
}
