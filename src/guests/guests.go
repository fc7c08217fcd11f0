// Package guests processes guest registrations arriving through invitation
// links and aggregates their dietary declarations for the organizer view.
package guests

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"evp/src/dietary"
	"evp/src/models"
	"evp/src/types"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrDuplicateRegistration is returned when an (event, email) pair already
// registered. Not retried automatically.
var ErrDuplicateRegistration = errors.New("this email is already registered for the event")

type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type Submission struct {
	InvitationCode      string
	FullName            string
	Email               string
	DietaryTags         []string
	Allergies           string
	PlusOne             bool
	PlusOneName         string
	AttendanceConfirmed bool
}

// Store persists registrations. The unique index on (event_id, email) is the
// authoritative duplicate guard; RegistrationExists is only the fast path.
type Store interface {
	RegistrationExists(ctx context.Context, eventId uint, email string) (bool, error)
	CreateRegistration(ctx context.Context, registration *models.GuestRegistration) error
}

// Notifier flags the organizer feed. High-severity conditions are flagged the
// moment the registration lands, with no batching delay.
type Notifier interface {
	HighSeverityDeclared(ctx context.Context, eventId uint, guestName string, condition dietary.Condition) error
}

type Processor struct {
	store    Store
	notifier Notifier
}

func NewProcessor(store Store, notifier Notifier) *Processor {
	return &Processor{store: store, notifier: notifier}
}

var validate = validator.New()

// Register validates and persists one guest submission. Two near-simultaneous
// submissions for the same email cannot both succeed: the losing insert hits
// the unique index and is reported as a duplicate.
func (p *Processor) Register(ctx context.Context, eventId uint, submission Submission) (*models.GuestRegistration, error) {
	if strings.TrimSpace(submission.FullName) == "" {
		return nil, &ValidationError{Field: "full_name", Reason: "full name is required"}
	}
	email := strings.ToLower(strings.TrimSpace(submission.Email))
	if validate.Var(email, "required,email") != nil {
		return nil, &ValidationError{Field: "email", Reason: "a valid email address is required"}
	}
	if submission.PlusOne && strings.TrimSpace(submission.PlusOneName) == "" {
		return nil, &ValidationError{Field: "plus_one_name", Reason: "plus-one name is required when bringing a plus-one"}
	}

	exists, err := p.store.RegistrationExists(ctx, eventId, email)
	if err != nil {
		log.Printf("Could not check existing registration for %s: %s\n", email, err.Error())
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRegistration
	}

	registration := &models.GuestRegistration{
		EventID:             eventId,
		Email:               email,
		FullName:            strings.TrimSpace(submission.FullName),
		DietaryTags:         types.StringList(submission.DietaryTags),
		AttendanceConfirmed: submission.AttendanceConfirmed,
	}
	if submission.InvitationCode != "" {
		code := submission.InvitationCode
		registration.InvitationCode = &code
	}
	if submission.Allergies != "" {
		allergies := submission.Allergies
		registration.Allergies = &allergies
	}
	if submission.PlusOne {
		name := strings.TrimSpace(submission.PlusOneName)
		registration.PlusOneName = &name
	}
	if err := p.store.CreateRegistration(ctx, registration); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRegistration
		}
		log.Printf("Could not create registration for %s: %s\n", email, err.Error())
		return nil, err
	}

	p.flagHighSeverity(ctx, eventId, registration)
	return registration, nil
}

func (p *Processor) flagHighSeverity(ctx context.Context, eventId uint, registration *models.GuestRegistration) {
	if p.notifier == nil {
		return
	}
	for _, label := range registration.DietaryTags {
		condition, ok := dietary.LookupCondition(label)
		if !ok || condition.Severity != types.SEVERITY_HIGH {
			continue
		}
		if err := p.notifier.HighSeverityDeclared(ctx, eventId, registration.FullName, condition); err != nil {
			log.Printf("Could not flag organizer feed for event %d: %s\n", eventId, err.Error())
		}
	}
}

// AggregateForOrganizer groups declared conditions across all registrations
// of an event for the summary view.
func AggregateForOrganizer(registrations []models.GuestRegistration) map[string]dietary.ConditionCount {
	tagLists := make([][]string, 0, len(registrations))
	for _, registration := range registrations {
		tagLists = append(tagLists, registration.DietaryTags)
	}
	return dietary.Aggregate(tagLists)
}
