package cmd

import (
	"fmt"
	"time"

	"agricert/internal/filter"
	"agricert/internal/models"

	"github.com/spf13/cobra"
)

// filterFlags mirrors the dashboard controls for non-interactive commands.
// Unset range and date flags default to the bounds of the loaded data.
type filterFlags struct {
	province  string
	address   string
	product   string
	category  string
	certifier string
	areaMin   float64
	areaMax   float64
	planMin   float64
	planMax   float64
	start     string
	end       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.province, "province", "", "Province (시도), e.g. 서울 or 경상북도")
	flags.StringVar(&f.address, "address", "", "Detail address substring")
	flags.StringVar(&f.product, "product", "", "Representative product substring")
	flags.StringVar(&f.category, "category", "", "Certification category: 유기농 or 무농약")
	flags.StringVar(&f.certifier, "certifier", "", "Certifying body substring")
	flags.Float64Var(&f.areaMin, "area-min", 0, "Minimum cultivated area in m² (default: data minimum)")
	flags.Float64Var(&f.areaMax, "area-max", 0, "Maximum cultivated area in m² (default: data maximum)")
	flags.Float64Var(&f.planMin, "plan-min", 0, "Minimum planned quantity in kg (default: data minimum)")
	flags.Float64Var(&f.planMax, "plan-max", 0, "Maximum planned quantity in kg (default: data maximum)")
	flags.StringVar(&f.start, "start", "", "Earliest certification start, YYYY.M.D (default: data minimum)")
	flags.StringVar(&f.end, "end", "", "Latest certification end, YYYY.M.D (default: data maximum)")
}

// criteria resolves the flags against the bounds of records.
func (f *filterFlags) criteria(cmd *cobra.Command, records []models.Record) (filter.Criteria, error) {
	c := filter.Default(filter.BoundsOf(records))

	province := models.Province(f.province)
	if !province.Valid() {
		return c, fmt.Errorf("unknown province %q", f.province)
	}
	category := models.Category(f.category)
	if !category.Valid() {
		return c, fmt.Errorf("unknown category %q", f.category)
	}
	c.Province = province
	c.Category = category
	c.Address = f.address
	c.Product = f.product
	c.Certifier = f.certifier

	changed := cmd.Flags().Changed
	if changed("area-min") {
		c.Area.Min = f.areaMin
	}
	if changed("area-max") {
		c.Area.Max = f.areaMax
	}
	if changed("plan-min") {
		c.Plan.Min = f.planMin
	}
	if changed("plan-max") {
		c.Plan.Max = f.planMax
	}

	var err error
	if f.start != "" {
		if c.StartFrom, err = time.Parse(models.PeriodLayout, f.start); err != nil {
			return c, fmt.Errorf("invalid --start %q: %w", f.start, err)
		}
	}
	if f.end != "" {
		if c.EndUntil, err = time.Parse(models.PeriodLayout, f.end); err != nil {
			return c, fmt.Errorf("invalid --end %q: %w", f.end, err)
		}
	}
	return c, nil
}
