// Package wizard drives the multi-step event composition flow. The draft is
// an explicit value object: transitions take a draft in and hand a draft
// back, so every step rule can be exercised without any session or storage.
package wizard

import (
	"fmt"
	"strings"
	"time"

	"evp/src/catalog"
	"evp/src/config"
	"evp/src/types"

	"github.com/go-playground/validator/v10"
)

type Variant string

const (
	VARIANT_CLASSIC   Variant = "classic"
	VARIANT_OPTIMIZED Variant = "optimized"
)

const (
	classicSteps   = 4
	optimizedSteps = 5
)

type Location struct {
	Kind    types.LocationKind `json:"kind,omitempty"`
	VenueID uint               `json:"venue_id,omitempty"`
	Address string             `json:"address,omitempty"`
}

type Declaration struct {
	Label    string         `json:"label"`
	Category string         `json:"category,omitempty"`
	Severity types.Severity `json:"severity,omitempty"`
}

type Draft struct {
	Name            string        `json:"name,omitempty"`
	Type            string        `json:"type,omitempty"`
	Description     string        `json:"description,omitempty"`
	Date            string        `json:"date,omitempty"`
	StartTime       string        `json:"start_time,omitempty"`
	EndTime         string        `json:"end_time,omitempty"`
	Location        Location      `json:"location,omitempty"`
	GuestCount      *uint         `json:"guest_count,omitempty"`
	TargetAudience  string        `json:"target_audience,omitempty"`
	IsPrivate       bool          `json:"is_private"`
	IsAdultsOnly    bool          `json:"is_adults_only"`
	Services        []uint        `json:"services,omitempty"`
	GiftSuggestions []string      `json:"gift_suggestions,omitempty"`
	PerGuestItems   []string      `json:"per_guest_items,omitempty"`
	Dietary         []Declaration `json:"dietary,omitempty"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	SplitCosts      bool          `json:"split_costs"`
	InviteEmails    []string      `json:"invite_emails,omitempty"`
	CurrentStep     int           `json:"current_step"`
}

func NewDraft() Draft {
	return Draft{IsPrivate: true, CurrentStep: 1}
}

// DedupedServices preserves the organizer's selection order while dropping
// repeated ids.
func (d Draft) DedupedServices() []uint {
	var out []uint
	seen := map[uint]bool{}
	for _, id := range d.Services {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

var validate = validator.New()

// NormalizedInviteEmails lowercases, trims and de-duplicates the invite list,
// dropping entries that do not look like an address.
func (d Draft) NormalizedInviteEmails() []string {
	var out []string
	seen := map[string]bool{}
	for _, raw := range d.InviteEmails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" || seen[email] || validate.Var(email, "email") != nil {
			continue
		}
		out = append(out, email)
		seen[email] = true
	}
	return out
}

type Preview struct {
	EstimatedTotal     float32 `json:"estimated_total"`
	RequiresGuestCount bool    `json:"requires_guest_count"`
}

// ValidationError reports a failed step rule. It is recoverable: the draft is
// handed back unchanged and the caller may retry after fixing the field.
type ValidationError struct {
	Step   int    `json:"step"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s: %s", e.Step, e.Field, e.Reason)
}

type Machine struct {
	variant Variant
	cat     *catalog.Catalog
}

func NewMachine(variant Variant, cat *catalog.Catalog) Machine {
	if variant != VARIANT_OPTIMIZED {
		variant = VARIANT_CLASSIC
	}
	return Machine{variant: variant, cat: cat}
}

func (m Machine) Variant() Variant {
	return m.variant
}

func (m Machine) Steps() int {
	if m.variant == VARIANT_OPTIMIZED {
		return optimizedSteps
	}
	return classicSteps
}

// RequiresGuestCount holds iff at least one selected item is priced
// per-person. The wizard never allows submission while this is true and the
// guest count is still nil.
func (m Machine) RequiresGuestCount(d Draft) bool {
	return m.cat.RequiresGuestCount(d.Services)
}

func (m Machine) Preview(d Draft) Preview {
	return Preview{
		EstimatedTotal:     m.cat.Estimate(d.DedupedServices(), d.GuestCount),
		RequiresGuestCount: m.RequiresGuestCount(d),
	}
}

// Next validates the current step and, only if it passes, advances the draft
// one step. A failed validation leaves the step unchanged.
func (m Machine) Next(d Draft) (Draft, Preview, error) {
	if d.CurrentStep < 1 {
		d.CurrentStep = 1
	}
	if d.CurrentStep >= m.Steps() {
		return d, m.Preview(d), &ValidationError{Step: d.CurrentStep, Field: "current_step", Reason: "already at the confirmation step"}
	}
	if err := m.validateStep(d, d.CurrentStep); err != nil {
		return d, m.Preview(d), err
	}
	d.Services = d.DedupedServices()
	d.CurrentStep++
	return d, m.Preview(d), nil
}

// Previous always succeeds and never re-validates.
func (m Machine) Previous(d Draft) Draft {
	if d.CurrentStep > 1 {
		d.CurrentStep--
	}
	return d
}

// Submit re-runs every step's validation from the confirmation step, so a
// draft with a forged current_step gains nothing, then returns the draft
// normalized for the orchestrator.
func (m Machine) Submit(d Draft) (Draft, error) {
	if d.CurrentStep != m.Steps() {
		return d, &ValidationError{Step: d.CurrentStep, Field: "current_step", Reason: "submit is only available from the confirmation step"}
	}
	for step := 1; step < m.Steps(); step++ {
		if err := m.validateStep(d, step); err != nil {
			return d, err
		}
	}
	if m.RequiresGuestCount(d) && d.GuestCount == nil {
		return d, &ValidationError{Step: m.Steps(), Field: "guest_count", Reason: "a per-person service was selected, guest count is required"}
	}
	d.Services = d.DedupedServices()
	d.InviteEmails = d.NormalizedInviteEmails()
	return d, nil
}

func (m Machine) validateStep(d Draft, step int) error {
	if m.variant == VARIANT_OPTIMIZED {
		switch step {
		case 1:
			return m.validateServices(d, step)
		case 2:
			if d.Type == "" {
				return &ValidationError{Step: step, Field: "type", Reason: "event type is required"}
			}
		case 3:
			if err := m.validateBasics(d, step); err != nil {
				return err
			}
			if m.RequiresGuestCount(d) && d.GuestCount == nil {
				return &ValidationError{Step: step, Field: "guest_count", Reason: "a per-person service was selected, guest count is required"}
			}
		case 4:
			return m.validateLocation(d, step)
		}
		return nil
	}
	switch step {
	case 1:
		if err := m.validateBasics(d, step); err != nil {
			return err
		}
		if d.Type == "" {
			return &ValidationError{Step: step, Field: "type", Reason: "event type is required"}
		}
		return m.validateLocation(d, step)
	case 2:
		if d.GuestCount == nil {
			return &ValidationError{Step: step, Field: "guest_count", Reason: "guest count is required"}
		}
		if d.TargetAudience == "" {
			return &ValidationError{Step: step, Field: "target_audience", Reason: "target audience is required"}
		}
	case 3:
		return m.validateServices(d, step)
	}
	return nil
}

func (m Machine) validateBasics(d Draft, step int) error {
	if d.Name == "" {
		return &ValidationError{Step: step, Field: "name", Reason: "event name is required"}
	}
	if d.Date == "" {
		return &ValidationError{Step: step, Field: "date", Reason: "event date is required"}
	}
	date, err := time.Parse(config.DATE_PARSE_FORMAT, d.Date)
	if err != nil {
		return &ValidationError{Step: step, Field: "date", Reason: "date must be formatted as " + config.DATE_PARSE_FORMAT}
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		return &ValidationError{Step: step, Field: "date", Reason: "event date must not be in the past"}
	}
	if d.StartTime == "" {
		return &ValidationError{Step: step, Field: "start_time", Reason: "start time is required"}
	}
	start, err := time.Parse(config.CLOCK_PARSE_FORMAT, d.StartTime)
	if err != nil {
		return &ValidationError{Step: step, Field: "start_time", Reason: "start time must be formatted as " + config.CLOCK_PARSE_FORMAT}
	}
	if d.EndTime != "" {
		end, err := time.Parse(config.CLOCK_PARSE_FORMAT, d.EndTime)
		if err != nil {
			return &ValidationError{Step: step, Field: "end_time", Reason: "end time must be formatted as " + config.CLOCK_PARSE_FORMAT}
		}
		if !end.After(start) {
			return &ValidationError{Step: step, Field: "end_time", Reason: "end time must be after start time"}
		}
	}
	return nil
}

func (m Machine) validateLocation(d Draft, step int) error {
	switch d.Location.Kind {
	case types.LOCATION_OWN:
		if d.Location.Address == "" {
			return &ValidationError{Step: step, Field: "location", Reason: "address is required for an own venue"}
		}
	case types.LOCATION_RENTAL:
		if d.Location.VenueID == 0 {
			return &ValidationError{Step: step, Field: "location", Reason: "a rental venue must be selected"}
		}
	default:
		return &ValidationError{Step: step, Field: "location", Reason: "location kind must be own or rental"}
	}
	return nil
}

func (m Machine) validateServices(d Draft, step int) error {
	services := d.DedupedServices()
	if len(services) == 0 {
		return &ValidationError{Step: step, Field: "services", Reason: "select at least one service"}
	}
	for _, id := range services {
		if _, ok := m.cat.Lookup(id); !ok {
			return &ValidationError{Step: step, Field: "services", Reason: fmt.Sprintf("unknown service id %d", id)}
		}
	}
	return nil
}
