// Package filter selects certification records matching a set of typed
// predicates. All predicates are AND-combined.
package filter

import (
	"math"
	"strings"
	"time"

	"agricert/internal/models"
)

// Range is inclusive at both ends.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v *float64) bool {
	if v == nil {
		return false
	}
	return *v >= r.Min && *v <= r.Max
}

// Criteria holds the current filter values. Empty text filters and zero
// dates are unrestricted; ranges always apply.
type Criteria struct {
	Province  models.Province
	Address   string
	Product   string
	Category  models.Category
	Certifier string
	Area      Range
	Plan      Range
	StartFrom time.Time
	EndUntil  time.Time
}

// Bounds are the data-derived limits used to initialise the controls.
type Bounds struct {
	Area      Range
	Plan      Range
	StartFrom time.Time
	EndUntil  time.Time
}

// Apply returns the records satisfying every predicate of c, in source order.
// The input slice is never modified.
func Apply(records []models.Record, c Criteria) []models.Record {
	province := strings.ToLower(string(c.Province))
	address := strings.ToLower(c.Address)
	product := strings.ToLower(c.Product)
	category := strings.ToLower(string(c.Category))
	certifier := strings.ToLower(c.Certifier)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !contains(r.Province, province) ||
			!contains(r.Address, address) ||
			!contains(r.Product, product) ||
			!contains(r.Category, category) ||
			!contains(r.Certifier, certifier) {
			continue
		}
		if !c.Area.Contains(r.Area) || !c.Plan.Contains(r.Plan) {
			continue
		}
		// Start and end are bounded independently; this is not an overlap test.
		if !c.StartFrom.IsZero() && r.CertStart.Before(c.StartFrom) {
			continue
		}
		if !c.EndUntil.IsZero() && r.CertEnd.After(c.EndUntil) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// contains expects needle already lowercased. A nil field only matches the
// empty needle.
func contains(field *string, needle string) bool {
	if needle == "" {
		return true
	}
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), needle)
}

// BoundsOf computes the control limits over records. Numeric limits are
// widened to whole numbers so every record stays inside the default range.
func BoundsOf(records []models.Record) Bounds {
	var b Bounds
	areaSeen, planSeen := false, false

	for _, r := range records {
		if r.Area != nil {
			if !areaSeen || *r.Area < b.Area.Min {
				b.Area.Min = *r.Area
			}
			if !areaSeen || *r.Area > b.Area.Max {
				b.Area.Max = *r.Area
			}
			areaSeen = true
		}
		if r.Plan != nil {
			if !planSeen || *r.Plan < b.Plan.Min {
				b.Plan.Min = *r.Plan
			}
			if !planSeen || *r.Plan > b.Plan.Max {
				b.Plan.Max = *r.Plan
			}
			planSeen = true
		}
		if !r.CertStart.IsZero() && (b.StartFrom.IsZero() || r.CertStart.Before(b.StartFrom)) {
			b.StartFrom = r.CertStart
		}
		if r.CertEnd.After(b.EndUntil) {
			b.EndUntil = r.CertEnd
		}
	}

	b.Area = Range{Min: math.Floor(b.Area.Min), Max: math.Ceil(b.Area.Max)}
	b.Plan = Range{Min: math.Floor(b.Plan.Min), Max: math.Ceil(b.Plan.Max)}
	return b
}

// Default returns the unrestricted criteria for b.
func Default(b Bounds) Criteria {
	return Criteria{
		Area:      b.Area,
		Plan:      b.Plan,
		StartFrom: b.StartFrom,
		EndUntil:  b.EndUntil,
	}
}

// Certifiers lists distinct certifying bodies in first-seen order.
func Certifiers(records []models.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.Certifier == nil || seen[*r.Certifier] {
			continue
		}
		seen[*r.Certifier] = true
		out = append(out, *r.Certifier)
	}
	return out
}
