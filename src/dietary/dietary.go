// Package dietary flags guests whose declared conditions clash with the
// catering-like services an event booked. The mapping is a coarse
// category-level heuristic: it never inspects individual menu items, so a
// reported conflict means "worth a conversation", not "unsafe", and the
// absence of one is no guarantee either way.
package dietary

import (
	"evp/src/catalog"
	"evp/src/types"
)

type Condition struct {
	Label    string         `json:"label"`
	Category string         `json:"category"`
	Severity types.Severity `json:"severity"`
}

// Predefined conditions offered in the composition flow. Organizers and
// guests may still enter custom labels; those are simply unknown to the
// conflict map.
var Predefined = []Condition{
	{Label: "Celiac", Category: "allergen", Severity: types.SEVERITY_HIGH},
	{Label: "Nut Allergy", Category: "allergen", Severity: types.SEVERITY_HIGH},
	{Label: "Shellfish Allergy", Category: "allergen", Severity: types.SEVERITY_HIGH},
	{Label: "Gluten Intolerance", Category: "intolerance", Severity: types.SEVERITY_MEDIUM},
	{Label: "Lactose Intolerance", Category: "intolerance", Severity: types.SEVERITY_MEDIUM},
	{Label: "Diabetes", Category: "medical", Severity: types.SEVERITY_MEDIUM},
	{Label: "Vegan", Category: "preference", Severity: types.SEVERITY_LOW},
	{Label: "Vegetarian", Category: "preference", Severity: types.SEVERITY_LOW},
	{Label: "Halal", Category: "preference", Severity: types.SEVERITY_LOW},
	{Label: "Kosher", Category: "preference", Severity: types.SEVERITY_LOW},
}

// conflictMap pairs a condition label with the catalog categories considered
// unsafe for it. Severity is informational only and never changes detection.
var conflictMap = map[string][]string{
	"Celiac":              {catalog.CATEGORY_CATERING, catalog.CATEGORY_BAKERY},
	"Gluten Intolerance":  {catalog.CATEGORY_CATERING, catalog.CATEGORY_BAKERY},
	"Nut Allergy":         {catalog.CATEGORY_CATERING, catalog.CATEGORY_BAKERY},
	"Lactose Intolerance": {catalog.CATEGORY_CATERING, catalog.CATEGORY_BAKERY},
	"Shellfish Allergy":   {catalog.CATEGORY_CATERING},
	"Diabetes":            {catalog.CATEGORY_BAKERY, catalog.CATEGORY_BAR},
	"Vegan":               {catalog.CATEGORY_CATERING},
	"Vegetarian":          {catalog.CATEGORY_CATERING},
	"Halal":               {catalog.CATEGORY_CATERING, catalog.CATEGORY_BAR},
	"Kosher":              {catalog.CATEGORY_CATERING},
}

func LookupCondition(label string) (Condition, bool) {
	for _, c := range Predefined {
		if c.Label == label {
			return c, true
		}
	}
	return Condition{}, false
}

type Detector struct {
	cat *catalog.Catalog
}

func NewDetector(cat *catalog.Catalog) *Detector {
	return &Detector{cat: cat}
}

// Detect reports whether any declared condition conflicts with any selected
// service's category, short-circuiting on the first match. Unknown condition
// labels and unknown service ids are treated as non-conflicting.
func (d *Detector) Detect(conditionLabels []string, serviceIds []uint) bool {
	categories := d.resolveCategories(serviceIds)
	if len(categories) == 0 {
		return false
	}
	for _, label := range conditionLabels {
		unsafe, ok := conflictMap[label]
		if !ok {
			continue
		}
		for _, cat := range unsafe {
			if categories[cat] {
				return true
			}
		}
	}
	return false
}

// ConflictingCategories lists every selected-service category that clashes
// with at least one declared condition, in catalog category order.
func (d *Detector) ConflictingCategories(conditionLabels []string, serviceIds []uint) []string {
	categories := d.resolveCategories(serviceIds)
	flagged := map[string]bool{}
	for _, label := range conditionLabels {
		for _, cat := range conflictMap[label] {
			if categories[cat] {
				flagged[cat] = true
			}
		}
	}
	var out []string
	seen := map[string]bool{}
	for _, id := range serviceIds {
		cat, ok := d.cat.Category(id)
		if ok && flagged[cat] && !seen[cat] {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	return out
}

func (d *Detector) resolveCategories(serviceIds []uint) map[string]bool {
	categories := map[string]bool{}
	for _, id := range serviceIds {
		if cat, ok := d.cat.Category(id); ok {
			categories[cat] = true
		}
	}
	return categories
}

type ConditionCount struct {
	Count       int            `json:"count"`
	MaxSeverity types.Severity `json:"max_severity"`
}

// Aggregate groups declared condition labels across all guest submissions of
// an event. Labels unknown to the predefined list aggregate with low
// severity.
func Aggregate(tagLists [][]string) map[string]ConditionCount {
	out := map[string]ConditionCount{}
	for _, tags := range tagLists {
		for _, label := range tags {
			severity := types.SEVERITY_LOW
			if cond, ok := LookupCondition(label); ok {
				severity = cond.Severity
			}
			entry := out[label]
			entry.Count++
			if severity.Rank() > entry.MaxSeverity.Rank() {
				entry.MaxSeverity = severity
			}
			out[label] = entry
		}
	}
	return out
}

// HasHighSeverity decides whether the organizer summary shows the warning
// banner.
func HasHighSeverity(agg map[string]ConditionCount) bool {
	for _, entry := range agg {
		if entry.MaxSeverity == types.SEVERITY_HIGH {
			return true
		}
	}
	return false
}
