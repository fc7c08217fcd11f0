package guests

import (
	"context"
	"errors"
	"testing"

	"evp/src/dietary"
	"evp/src/models"
	"evp/src/types"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStore struct {
	existing  map[string]bool
	created   []*models.GuestRegistration
	existsErr error
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{existing: map[string]bool{}}
}

func (s *fakeStore) RegistrationExists(ctx context.Context, eventId uint, email string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[email], nil
}

func (s *fakeStore) CreateRegistration(ctx context.Context, registration *models.GuestRegistration) error {
	if s.createErr != nil {
		return s.createErr
	}
	registration.ID = uint(len(s.created) + 1)
	s.created = append(s.created, registration)
	s.existing[registration.Email] = true
	return nil
}

type fakeNotifier struct {
	flagged []dietary.Condition
	err     error
}

func (n *fakeNotifier) HighSeverityDeclared(ctx context.Context, eventId uint, guestName string, condition dietary.Condition) error {
	n.flagged = append(n.flagged, condition)
	return n.err
}

var (
	_ Store    = (*fakeStore)(nil)
	_ Notifier = (*fakeNotifier)(nil)
)

func validSubmission() Submission {
	return Submission{
		InvitationCode:      "12-18f2a-9ab3",
		FullName:            "Ana Silva",
		Email:               "Ana@Example.com",
		DietaryTags:         []string{"Vegan"},
		AttendanceConfirmed: true,
	}
}

func TestRegisterHappyPath(t *testing.T) {
	store := newFakeStore()
	p := NewProcessor(store, nil)

	registration, err := p.Register(context.Background(), 12, validSubmission())
	assert.NoError(t, err)
	assert.Len(t, store.created, 1)
	assert.Equal(t, "ana@example.com", registration.Email)
	assert.Equal(t, "Ana Silva", registration.FullName)
	assert.True(t, registration.AttendanceConfirmed)
	if assert.NotNil(t, registration.InvitationCode) {
		assert.Equal(t, "12-18f2a-9ab3", *registration.InvitationCode)
	}
	assert.Nil(t, registration.PlusOneName)
}

func TestRegisterValidation(t *testing.T) {
	p := NewProcessor(newFakeStore(), nil)
	tests := []struct {
		name   string
		mutate func(*Submission)
		field  string
	}{
		{"missing name", func(s *Submission) { s.FullName = "  " }, "full_name"},
		{"bad email", func(s *Submission) { s.Email = "not-an-email" }, "email"},
		{"plus one without name", func(s *Submission) { s.PlusOne = true }, "plus_one_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submission := validSubmission()
			tt.mutate(&submission)
			_, err := p.Register(context.Background(), 12, submission)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRegisterDuplicateFastPath(t *testing.T) {
	store := newFakeStore()
	store.existing["ana@example.com"] = true
	p := NewProcessor(store, nil)

	_, err := p.Register(context.Background(), 12, validSubmission())
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Empty(t, store.created)
}

func TestRegisterDuplicateLosesInsertRace(t *testing.T) {
	// The fast path saw nothing; the insert still hits the unique index.
	store := newFakeStore()
	store.createErr = gorm.ErrDuplicatedKey
	p := NewProcessor(store, nil)

	_, err := p.Register(context.Background(), 12, validSubmission())
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
}

func TestRegisterPropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.existsErr = errors.New("redis down")
	p := NewProcessor(store, nil)

	_, err := p.Register(context.Background(), 12, validSubmission())
	assert.ErrorContains(t, err, "redis down")
}

func TestRegisterFlagsHighSeverity(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	p := NewProcessor(store, notifier)

	submission := validSubmission()
	submission.DietaryTags = []string{"Vegan", "Celiac", "Homemade Only"}
	_, err := p.Register(context.Background(), 12, submission)
	assert.NoError(t, err)

	// Only the high-severity predefined condition is flagged.
	if assert.Len(t, notifier.flagged, 1) {
		assert.Equal(t, "Celiac", notifier.flagged[0].Label)
	}
}

func TestRegisterNotifierErrorDoesNotFailRegistration(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{err: errors.New("kafka down")}
	p := NewProcessor(store, notifier)

	submission := validSubmission()
	submission.DietaryTags = []string{"Nut Allergy"}
	registration, err := p.Register(context.Background(), 12, submission)
	assert.NoError(t, err)
	assert.NotNil(t, registration)
}

func TestAggregateForOrganizer(t *testing.T) {
	registrations := []models.GuestRegistration{
		{DietaryTags: types.StringList{"Vegan", "Celiac"}},
		{DietaryTags: types.StringList{"Vegan"}},
		{},
	}
	agg := AggregateForOrganizer(registrations)
	assert.Equal(t, 2, agg["Vegan"].Count)
	assert.Equal(t, types.SEVERITY_HIGH, agg["Celiac"].MaxSeverity)
	assert.True(t, dietary.HasHighSeverity(agg))
}
