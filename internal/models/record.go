package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Column headers of the certification spreadsheet.
const (
	ColAddress   = "주소"
	ColRegion    = "지역"
	ColProduct   = "대표품목"
	ColCategory  = "인증분류"
	ColCertifier = "인증기관"
	ColArea      = "재배면적(제곱미터)"
	ColPlan      = "인증계획량(kg)"
	ColPeriod    = "인증기간"

	ColProvince  = "시도"
	ColTownship  = "읍면"
	ColVillage   = "리동"
	ColCertStart = "인증시작"
	ColCertEnd   = "인증끝"
)

// PeriodLayout accepts both "2021.03.05" and "2021.3.5".
const PeriodLayout = "2006.1.2"

const periodSeparator = " ~ "

var ErrMalformedPeriod = errors.New("malformed certification period")

// Record is one certification entry. Text and numeric source fields are
// nullable; derived fields are filled by Derive.
type Record struct {
	Address   *string  `bson:"address"`
	Region    *string  `bson:"region,omitempty"`
	Product   *string  `bson:"product"`
	Category  *string  `bson:"category"`
	Certifier *string  `bson:"certifier"`
	Area      *float64 `bson:"area"`
	Plan      *float64 `bson:"plan"`
	Period    string   `bson:"period"`

	Province  *string   `bson:"-"`
	Township  *string   `bson:"-"`
	Village   *string   `bson:"-"`
	CertStart time.Time `bson:"-"`
	CertEnd   time.Time `bson:"-"`
}

// Derive fills the address parts and the certification dates.
func (r *Record) Derive() error {
	r.Province, r.Township, r.Village = SplitAddress(r.Address)

	start, end, err := ParsePeriod(r.Period)
	if err != nil {
		return err
	}
	r.CertStart = start
	r.CertEnd = end
	return nil
}

// SplitAddress splits on single spaces with at most two splits, so the
// village part keeps any remaining spaces. Missing parts are nil.
func SplitAddress(address *string) (province, township, village *string) {
	if address == nil {
		return nil, nil, nil
	}
	parts := strings.SplitN(*address, " ", 3)
	out := make([]*string, 3)
	for i, p := range parts {
		p := p
		out[i] = &p
	}
	return out[0], out[1], out[2]
}

// ParsePeriod splits "start ~ end" into two dates.
func ParsePeriod(period string) (time.Time, time.Time, error) {
	tokens := strings.Split(period, periodSeparator)
	if len(tokens) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q has %d part(s)", ErrMalformedPeriod, period, len(tokens))
	}

	start, err := time.Parse(PeriodLayout, strings.TrimSpace(tokens[0]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q: %v", ErrMalformedPeriod, tokens[0], err)
	}
	end, err := time.Parse(PeriodLayout, strings.TrimSpace(tokens[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q: %v", ErrMalformedPeriod, tokens[1], err)
	}
	return start, end, nil
}

// Text returns the value of a nullable text field, or "" for nil.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Number returns the value of a nullable numeric field, or 0 for nil.
func Number(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func StringPtr(s string) *string {
	return &s
}

func FloatPtr(f float64) *float64 {
	return &f
}
