package tui

import (
	"github.com/dustin/go-humanize"
)

func formatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func formatPercent(share float64) string {
	return humanize.FtoaWithDigits(share*100, 1) + "%"
}
