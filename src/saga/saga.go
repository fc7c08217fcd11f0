// Package saga executes the multi-entity commit that turns a submitted draft
// into stored records. The storage collaborator offers no multi-record
// transaction, so the sequence is an ordered best-effort saga: only the
// initial event insert is fatal, every later write records its own failure
// and the remaining items still proceed.
package saga

import (
	"context"
	"fmt"
	"log"
	"time"

	"evp/src/catalog"
	"evp/src/config"
	"evp/src/models"
	"evp/src/types"
	"evp/src/utils"
	"evp/src/wizard"
)

// Store is the persistence collaborator. Each call is a single record write
// with its own success or failure; implementations must not batch calls into
// a shared transaction.
type Store interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	CreateEventService(ctx context.Context, link *models.EventService) error
	ResolveProvider(ctx context.Context, serviceId uint) (uint, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	CreateDietaryRecords(ctx context.Context, records []models.DietaryRecord) error
	CreatePerGuestItems(ctx context.Context, items []models.PerGuestItem) error
	CreateGiftSuggestions(ctx context.Context, items []models.GiftSuggestion) error
	CreateInvitation(ctx context.Context, invitation *models.Invitation) error
}

// ItemFailure is one failed non-critical write, reported back to the caller
// so the organizer can follow up. Failures are never only logged.
type ItemFailure struct {
	Step  string `json:"step"`
	Ref   string `json:"ref"`
	Error string `json:"error"`
}

type Result struct {
	EventID         uint          `json:"event_id"`
	Slug            string        `json:"slug,omitempty"`
	EstimatedTotal  float32       `json:"estimated_total"`
	BookingIDs      []uint        `json:"booking_ids"`
	InvitationCodes []string      `json:"invitation_codes"`
	Failures        []ItemFailure `json:"failures,omitempty"`
}

// FatalError means the event record itself could not be created; nothing
// downstream ran and the whole submission must be retried.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("event could not be created: %s", e.Err.Error())
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// PartialFailure accompanies a Result whose Failures list is non-empty: the
// event exists, some sub-items did not make it.
type PartialFailure struct {
	Items []ItemFailure
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%d of the submitted items failed", len(e.Items))
}

type Orchestrator struct {
	store Store
	cat   *catalog.Catalog
}

func NewOrchestrator(store Store, cat *catalog.Catalog) *Orchestrator {
	return &Orchestrator{store: store, cat: cat}
}

// Submit runs the commit sequence for a validated draft. On success the
// returned error is nil; a non-nil *PartialFailure still carries a usable
// Result. There is no cancellation once the event insert succeeded.
func (o *Orchestrator) Submit(ctx context.Context, organizerId uint, d wizard.Draft) (*Result, error) {
	event := o.buildEvent(organizerId, d)
	if err := o.store.CreateEvent(ctx, event); err != nil {
		log.Printf("Fatal: could not create event for organizer %d: %s\n", organizerId, err.Error())
		return nil, &FatalError{Err: err}
	}

	result := &Result{
		EventID:         event.ID,
		Slug:            event.Slug,
		EstimatedTotal:  event.EstimatedTotal,
		BookingIDs:      []uint{},
		InvitationCodes: []string{},
	}

	o.bookServices(ctx, event.ID, d, result)
	o.persistExtras(ctx, event.ID, d, result)
	o.createInvitations(ctx, event.ID, d, result)

	if len(result.Failures) > 0 {
		return result, &PartialFailure{Items: result.Failures}
	}
	return result, nil
}

func (o *Orchestrator) buildEvent(organizerId uint, d wizard.Draft) *models.Event {
	event := &models.Event{
		Name:            d.Name,
		Type:            d.Type,
		Slug:            utils.EventSlug(d.Name),
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		LocationKind:    d.Location.Kind,
		Address:         d.Location.Address,
		GuestCount:      d.GuestCount,
		TargetAudience:  d.TargetAudience,
		IsPrivate:       d.IsPrivate,
		IsAdultsOnly:    d.IsAdultsOnly,
		SpecialRequests: d.SpecialRequests,
		SplitCosts:      d.SplitCosts,
		EstimatedTotal:  o.cat.Estimate(d.Services, d.GuestCount),
		Status:          types.EVENT_PUBLISHED,
		OrganizerID:     organizerId,
	}
	if d.Description != "" {
		event.About = &d.Description
	}
	if d.Location.Kind == types.LOCATION_RENTAL {
		venueId := d.Location.VenueID
		event.VenueID = &venueId
	}
	if date, err := time.Parse(config.DATE_PARSE_FORMAT, d.Date); err == nil {
		event.Date = &date
	}
	return event
}

// bookServices links each selected service and opens one pending booking with
// its resolved provider. A failed link, lookup or insert is recorded and the
// remaining services still proceed; a partial booking set is an accepted
// outcome.
func (o *Orchestrator) bookServices(ctx context.Context, eventId uint, d wizard.Draft, result *Result) {
	for position, serviceId := range d.Services {
		ref := fmt.Sprintf("service %d", serviceId)
		link := &models.EventService{EventID: eventId, ServiceID: serviceId, Position: uint(position)}
		if err := o.store.CreateEventService(ctx, link); err != nil {
			log.Printf("Could not link service %d to event %d: %s\n", serviceId, eventId, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "services", Ref: ref, Error: err.Error()})
			continue
		}
		providerId, err := o.store.ResolveProvider(ctx, serviceId)
		if err != nil {
			log.Printf("Could not resolve provider for service %d: %s\n", serviceId, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "bookings", Ref: ref, Error: err.Error()})
			continue
		}
		booking := &models.Booking{
			EventID:    eventId,
			ServiceID:  serviceId,
			ProviderID: providerId,
			Status:     types.BOOKING_PENDING,
		}
		if err := o.store.CreateBooking(ctx, booking); err != nil {
			log.Printf("Could not create booking for service %d: %s\n", serviceId, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "bookings", Ref: ref, Error: err.Error()})
			continue
		}
		result.BookingIDs = append(result.BookingIDs, booking.ID)
	}
}

// persistExtras batches dietary declarations, per-guest items and gift
// suggestions. Failures are recorded and never roll anything back.
func (o *Orchestrator) persistExtras(ctx context.Context, eventId uint, d wizard.Draft, result *Result) {
	if len(d.Dietary) > 0 {
		records := make([]models.DietaryRecord, 0, len(d.Dietary))
		for _, declaration := range d.Dietary {
			records = append(records, models.DietaryRecord{
				EventID:  eventId,
				Label:    declaration.Label,
				Category: declaration.Category,
				Severity: declaration.Severity,
			})
		}
		if err := o.store.CreateDietaryRecords(ctx, records); err != nil {
			log.Printf("Could not persist dietary records for event %d: %s\n", eventId, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "dietary", Ref: "dietary records", Error: err.Error()})
		}
	}
	if len(d.PerGuestItems) > 0 {
		items := make([]models.PerGuestItem, 0, len(d.PerGuestItems))
		for position, label := range d.PerGuestItems {
			items = append(items, models.PerGuestItem{EventID: eventId, Label: label, Position: uint(position)})
		}
		if err := o.store.CreatePerGuestItems(ctx, items); err != nil {
			log.Printf("Could not persist per-guest items for event %d: %s\n", eventId, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "per_guest_items", Ref: "per-guest items", Error: err.Error()})
		}
	}
	if len(d.GiftSuggestions) > 0 {
		items := make([]models.GiftSuggestion, 0, len(d.GiftSuggestions))
		for position, label := range d.GiftSuggestions {
			items = append(items, models.GiftSuggestion{EventID: eventId, Label: label, Position: uint(position)})
		}
		if err := o.store.CreateGiftSuggestions(ctx, items); err != nil {
			log.Printf("Could not persist gift suggestions for event %d: %s\n", eventId, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "gift_suggestions", Ref: "gift suggestions", Error: err.Error()})
		}
	}
}

// createInvitations writes one invitation per normalized email. Codes combine
// the event id, a timestamp and a random suffix; collisions are statistically
// negligible and the unique index on the code column catches the remainder as
// one recorded per-email failure.
func (o *Orchestrator) createInvitations(ctx context.Context, eventId uint, d wizard.Draft, result *Result) {
	for _, email := range d.NormalizedInviteEmails() {
		invitation := &models.Invitation{
			EventID:    eventId,
			GuestEmail: email,
			Code:       utils.GenerateInvitationCode(eventId),
			Status:     types.INVITATION_SENT,
		}
		if err := o.store.CreateInvitation(ctx, invitation); err != nil {
			log.Printf("Could not create invitation for %s: %s\n", email, err.Error())
			result.Failures = append(result.Failures, ItemFailure{Step: "invitations", Ref: email, Error: err.Error()})
			continue
		}
		result.InvitationCodes = append(result.InvitationCodes, invitation.Code)
	}
}
