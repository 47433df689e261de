package tui

import (
	"agricert/internal/aggregate"
	"agricert/internal/filter"
	"agricert/internal/models"
)

// Dashboard is the state shared by every screen: the immutable source table,
// the current criteria and the filtered view recomputed from them.
type Dashboard struct {
	records    []models.Record
	bounds     filter.Bounds
	certifiers []string
	criteria   filter.Criteria
	filtered   []models.Record
}

func NewDashboard(records []models.Record) *Dashboard {
	bounds := filter.BoundsOf(records)
	d := &Dashboard{
		records:    records,
		bounds:     bounds,
		certifiers: filter.Certifiers(records),
	}
	d.SetCriteria(filter.Default(bounds))
	return d
}

// SetCriteria replaces the criteria and recomputes the filtered view.
func (d *Dashboard) SetCriteria(c filter.Criteria) {
	d.criteria = c
	d.filtered = filter.Apply(d.records, c)
}

func (d *Dashboard) Reset() {
	d.SetCriteria(filter.Default(d.bounds))
}

func (d *Dashboard) Records() []models.Record  { return d.records }
func (d *Dashboard) Filtered() []models.Record { return d.filtered }
func (d *Dashboard) Criteria() filter.Criteria { return d.criteria }
func (d *Dashboard) Bounds() filter.Bounds     { return d.bounds }
func (d *Dashboard) Certifiers() []string      { return d.certifiers }

// Regions lists the provinces present in the filtered view.
func (d *Dashboard) Regions() []string {
	return aggregate.Provinces(d.filtered)
}
