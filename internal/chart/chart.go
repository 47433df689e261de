package chart

import (
	"fmt"
	"math"

	"agricert/internal/aggregate"
)

type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

var palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

type Point struct {
	Label string
	Value float64
	// Share of the chart total in [0,1].
	Share float64
	Color string
}

type Chart struct {
	Kind   Kind
	Title  string
	XAxis  string
	YAxis  string
	Points []Point
	Total  float64
	// Max is the largest point value, used to scale bars.
	Max float64
}

// Bar builds a bar chart from groups, preserving their order.
func Bar(title, xAxis, yAxis string, groups []aggregate.Group) *Chart {
	return build(KindBar, title, xAxis, yAxis, groups)
}

// Pie builds a pie chart from groups, preserving their order.
func Pie(title string, groups []aggregate.Group) *Chart {
	return build(KindPie, title, "", "", groups)
}

// AreaByProvince is the 시도별 재배면적 합계 chart.
func AreaByProvince(groups []aggregate.Group) *Chart {
	return Bar("시도별 재배면적 합계", "시도", aggregate.Area.Label(), groups)
}

// PlanByProvince is the 시도별 인증계획량 합계 chart.
func PlanByProvince(groups []aggregate.Group) *Chart {
	return Bar("시도별 인증계획량 합계", "시도", aggregate.Plan.Label(), groups)
}

// ProductShare is the per-province planned quantity distribution.
func ProductShare(province string, groups []aggregate.Group) *Chart {
	return Pie(fmt.Sprintf("%s 지역의 인증계획량 분포", province), groups)
}

func build(kind Kind, title, xAxis, yAxis string, groups []aggregate.Group) *Chart {
	if len(groups) == 0 {
		return nil
	}

	c := &Chart{
		Kind:   kind,
		Title:  title,
		XAxis:  xAxis,
		YAxis:  yAxis,
		Points: make([]Point, 0, len(groups)),
	}
	for _, g := range groups {
		c.Total += g.Value
		if g.Value > c.Max {
			c.Max = g.Value
		}
	}
	for i, g := range groups {
		p := Point{
			Label: g.Key,
			Value: roundTo2(g.Value),
			Color: palette[i%len(palette)],
		}
		if c.Total != 0 {
			p.Share = g.Value / c.Total
		}
		c.Points = append(c.Points, p)
	}
	return c
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
