package aggregate

import (
	"sort"

	"agricert/internal/models"
)

// TopN is the number of products kept before collapsing the rest.
const TopN = 5

// OtherLabel names the synthetic group holding everything past the top N.
const OtherLabel = "기타"

type Measure int

const (
	Area Measure = iota
	Plan
)

func (m Measure) Of(r models.Record) float64 {
	switch m {
	case Area:
		return models.Number(r.Area)
	case Plan:
		return models.Number(r.Plan)
	}
	return 0
}

func (m Measure) Label() string {
	switch m {
	case Area:
		return models.ColArea
	case Plan:
		return models.ColPlan
	}
	return ""
}

type Group struct {
	Key   string
	Value float64
	Count int
}

// SumByProvince sums measure per observed province, sorted by province name.
// Records without a province are left out; nil values add nothing.
func SumByProvince(records []models.Record, measure Measure) []Group {
	return sumBy(records, measure, func(r models.Record) *string { return r.Province }, func(g []Group) {
		sort.SliceStable(g, func(i, j int) bool { return g[i].Key < g[j].Key })
	})
}

// TopProducts sums planned quantity per product within province, sorted by
// value descending with ties ordered by product name. Past n groups the
// remainder collapses into a single OtherLabel group.
func TopProducts(records []models.Record, province string, n int) []Group {
	regional := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Province != nil && *r.Province == province {
			regional = append(regional, r)
		}
	}

	groups := sumBy(regional, Plan, func(r models.Record) *string { return r.Product }, func(g []Group) {
		sort.SliceStable(g, func(i, j int) bool {
			if g[i].Value != g[j].Value {
				return g[i].Value > g[j].Value
			}
			return g[i].Key < g[j].Key
		})
	})

	if n < 0 || len(groups) <= n {
		return groups
	}

	other := Group{Key: OtherLabel}
	for _, g := range groups[n:] {
		other.Value += g.Value
		other.Count += g.Count
	}
	return append(groups[:n:n], other)
}

// Provinces lists distinct provinces in first-seen order.
func Provinces(records []models.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.Province == nil || seen[*r.Province] {
			continue
		}
		seen[*r.Province] = true
		out = append(out, *r.Province)
	}
	return out
}

func Total(records []models.Record, measure Measure) float64 {
	var total float64
	for _, r := range records {
		total += measure.Of(r)
	}
	return total
}

func sumBy(records []models.Record, measure Measure, key func(models.Record) *string, order func([]Group)) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range records {
		k := key(r)
		if k == nil {
			continue
		}
		i, ok := index[*k]
		if !ok {
			i = len(groups)
			index[*k] = i
			groups = append(groups, Group{Key: *k})
		}
		groups[i].Value += measure.Of(r)
		groups[i].Count++
	}
	order(groups)
	return groups
}
