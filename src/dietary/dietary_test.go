package dietary

import (
	"testing"

	"evp/src/catalog"
	"evp/src/types"

	"github.com/stretchr/testify/assert"
)

func TestDetectCeliacAgainstCatering(t *testing.T) {
	d := NewDetector(catalog.Default())
	// Service 1 is CateringPremium.
	assert.True(t, d.Detect([]string{"Celiac"}, []uint{1}))
}

func TestDetectNoConflict(t *testing.T) {
	d := NewDetector(catalog.Default())
	// Service 6 is DJProfessional, nothing edible about it.
	assert.False(t, d.Detect([]string{"Vegan"}, []uint{6}))
}

func TestDetectFailsOpen(t *testing.T) {
	d := NewDetector(catalog.Default())
	assert.False(t, d.Detect([]string{"Fear of Clowns"}, []uint{1}))
	assert.False(t, d.Detect([]string{"Celiac"}, []uint{9999}))
	assert.False(t, d.Detect(nil, []uint{1}))
	assert.False(t, d.Detect([]string{"Celiac"}, nil))
}

func TestDetectIdempotent(t *testing.T) {
	d := NewDetector(catalog.Default())
	labels := []string{"Celiac", "Vegan"}
	services := []uint{1, 4, 6}
	first := d.Detect(labels, services)
	second := d.Detect(labels, services)
	assert.Equal(t, first, second)
	assert.True(t, first)
}

func TestConflictingCategories(t *testing.T) {
	d := NewDetector(catalog.Default())
	// 1 = catering, 4 = bakery, 6 = music. Celiac clashes with the first two.
	got := d.ConflictingCategories([]string{"Celiac"}, []uint{1, 4, 6})
	assert.Equal(t, []string{catalog.CATEGORY_CATERING, catalog.CATEGORY_BAKERY}, got)
}

func TestConflictingCategoriesDeduped(t *testing.T) {
	d := NewDetector(catalog.Default())
	got := d.ConflictingCategories([]string{"Celiac", "Vegan"}, []uint{1, 2, 1})
	assert.Equal(t, []string{catalog.CATEGORY_CATERING}, got)
}

func TestConflictingCategoriesEmptyWhenClean(t *testing.T) {
	d := NewDetector(catalog.Default())
	assert.Empty(t, d.ConflictingCategories([]string{"Vegan"}, []uint{6, 13}))
}

func TestLookupCondition(t *testing.T) {
	cond, ok := LookupCondition("Nut Allergy")
	assert.True(t, ok)
	assert.Equal(t, types.SEVERITY_HIGH, cond.Severity)

	_, ok = LookupCondition("Unknown")
	assert.False(t, ok)
}

func TestAggregate(t *testing.T) {
	agg := Aggregate([][]string{
		{"Vegan", "Celiac"},
		{"Vegan"},
		{"Homemade Only"},
	})
	assert.Equal(t, 2, agg["Vegan"].Count)
	assert.Equal(t, types.SEVERITY_LOW, agg["Vegan"].MaxSeverity)
	assert.Equal(t, 1, agg["Celiac"].Count)
	assert.Equal(t, types.SEVERITY_HIGH, agg["Celiac"].MaxSeverity)
	// Custom labels aggregate as low severity.
	assert.Equal(t, types.SEVERITY_LOW, agg["Homemade Only"].MaxSeverity)
}

func TestHasHighSeverity(t *testing.T) {
	assert.True(t, HasHighSeverity(Aggregate([][]string{{"Celiac"}})))
	assert.False(t, HasHighSeverity(Aggregate([][]string{{"Vegan", "Diabetes"}})))
	assert.False(t, HasHighSeverity(nil))
}
