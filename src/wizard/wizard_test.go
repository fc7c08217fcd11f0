package wizard

import (
	"errors"
	"testing"
	"time"

	"evp/src/catalog"
	"evp/src/config"
	"evp/src/types"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint {
	return &v
}

func futureDate() string {
	return time.Now().AddDate(0, 1, 0).Format(config.DATE_PARSE_FORMAT)
}

func classicDraft() Draft {
	d := NewDraft()
	d.Name = "Garden Birthday"
	d.Type = "birthday"
	d.Date = futureDate()
	d.StartTime = "14:00"
	d.EndTime = "19:00"
	d.Location = Location{Kind: types.LOCATION_OWN, Address: "12 Rose Lane"}
	return d
}

func TestNewMachineFallsBackToClassic(t *testing.T) {
	m := NewMachine("banana", catalog.Default())
	assert.Equal(t, VARIANT_CLASSIC, m.Variant())
	assert.Equal(t, 4, m.Steps())

	o := NewMachine(VARIANT_OPTIMIZED, catalog.Default())
	assert.Equal(t, 5, o.Steps())
}

func TestClassicHappyPath(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()

	d, _, err := m.Next(d)
	assert.NoError(t, err)
	assert.Equal(t, 2, d.CurrentStep)

	d.GuestCount = uintPtr(30)
	d.TargetAudience = "family"
	d, _, err = m.Next(d)
	assert.NoError(t, err)
	assert.Equal(t, 3, d.CurrentStep)

	d.Services = []uint{1, 6, 1}
	d, preview, err := m.Next(d)
	assert.NoError(t, err)
	assert.Equal(t, 4, d.CurrentStep)
	assert.Equal(t, []uint{1, 6}, d.Services)
	assert.Equal(t, float32(45*30+600), preview.EstimatedTotal)

	d, err = m.Submit(d)
	assert.NoError(t, err)
	assert.Equal(t, []uint{1, 6}, d.Services)
}

func TestNextLeavesStepOnValidationFailure(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := NewDraft()

	got, _, err := m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Step)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, d, got)
}

func TestNextRejectsPastDate(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()
	d.Date = "2020-01-01"

	_, _, err := m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestNextRejectsEndBeforeStart(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()
	d.EndTime = "13:00"

	_, _, err := m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_time", verr.Field)
}

func TestNextStopsAtConfirmationStep(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()
	d.CurrentStep = 4

	_, _, err := m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "current_step", verr.Field)
}

func TestPreviousAlwaysSucceeds(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := NewDraft()
	d.CurrentStep = 3

	d = m.Previous(d)
	assert.Equal(t, 2, d.CurrentStep)
	d = m.Previous(d)
	d = m.Previous(d)
	assert.Equal(t, 1, d.CurrentStep)
}

func TestSubmitOnlyFromConfirmationStep(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()
	d.CurrentStep = 2

	_, err := m.Submit(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "current_step", verr.Field)
}

func TestSubmitRevalidatesEarlierSteps(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()
	d.Services = []uint{6}
	// Forged confirmation step with step 2 never completed.
	d.CurrentStep = 4

	_, err := m.Submit(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.Step)
	assert.Equal(t, "guest_count", verr.Field)
}

func TestOptimizedPerEventOnlySkipsGuestCount(t *testing.T) {
	m := NewMachine(VARIANT_OPTIMIZED, catalog.Default())
	d := NewDraft()
	d.Services = []uint{6}
	d.Type = "party"
	d.Name = "Rooftop Party"
	d.Date = futureDate()
	d.StartTime = "20:00"
	d.Location = Location{Kind: types.LOCATION_RENTAL, VenueID: 3}

	var err error
	for step := 1; step < m.Steps(); step++ {
		d, _, err = m.Next(d)
		assert.NoError(t, err)
	}
	assert.Equal(t, 5, d.CurrentStep)

	d, err = m.Submit(d)
	assert.NoError(t, err)
	assert.Nil(t, d.GuestCount)
}

func TestOptimizedPerPersonRequiresGuestCount(t *testing.T) {
	m := NewMachine(VARIANT_OPTIMIZED, catalog.Default())
	d := NewDraft()
	d.Services = []uint{1}
	d.Type = "wedding"
	d.Name = "Vineyard Wedding"
	d.Date = futureDate()
	d.StartTime = "16:00"

	d, _, err := m.Next(d)
	assert.NoError(t, err)
	d, _, err = m.Next(d)
	assert.NoError(t, err)

	_, _, err = m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, verr.Step)
	assert.Equal(t, "guest_count", verr.Field)

	d.GuestCount = uintPtr(80)
	d, _, err = m.Next(d)
	assert.NoError(t, err)
	assert.Equal(t, 4, d.CurrentStep)
}

func TestValidateServicesRejectsUnknownId(t *testing.T) {
	m := NewMachine(VARIANT_OPTIMIZED, catalog.Default())
	d := NewDraft()
	d.Services = []uint{9999}

	_, _, err := m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "services", verr.Field)
}

func TestValidateLocation(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := classicDraft()
	d.Location = Location{Kind: types.LOCATION_RENTAL}

	_, _, err := m.Next(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "location", verr.Field)
}

func TestPreviewWithoutGuestCount(t *testing.T) {
	m := NewMachine(VARIANT_CLASSIC, catalog.Default())
	d := NewDraft()
	d.Services = []uint{1, 6}

	preview := m.Preview(d)
	assert.Equal(t, float32(600), preview.EstimatedTotal)
	assert.True(t, preview.RequiresGuestCount)
}

func TestNormalizedInviteEmails(t *testing.T) {
	d := Draft{InviteEmails: []string{" Ana@Example.com ", "ana@example.com", "not-an-email", "", "bo@example.com"}}
	assert.Equal(t, []string{"ana@example.com", "bo@example.com"}, d.NormalizedInviteEmails())
}

func TestValidationErrorMessage(t *testing.T) {
	err := error(&ValidationError{Step: 2, Field: "guest_count", Reason: "guest count is required"})
	assert.Equal(t, "step 2: guest_count: guest count is required", err.Error())
	assert.True(t, errors.As(err, new(*ValidationError)))
}
