package services

import "math"

type Severity struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	SeverityLow      = Severity{Label: "Low", Color: "bg-green-500"}
	SeverityModerate = Severity{Label: "Moderate", Color: "bg-yellow-500"}
	SeverityHigh     = Severity{Label: "High", Color: "bg-red-500"}
)

const (
	moderateThreshold = 0.3
	highThreshold     = 0.7
)

// Classify buckets a stress index. Lower bounds are inclusive, so 0.3 is
// Moderate and 0.7 is High.
func Classify(value float64) Severity {
	if value < moderateThreshold {
		return SeverityLow
	}
	if value < highThreshold {
		return SeverityModerate
	}
	return SeverityHigh
}

// StressPercent renders a stress index as a whole percentage.
func StressPercent(value float64) int {
	return int(math.Round(value * 100))
}
