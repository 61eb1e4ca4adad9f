package rating

import (
	"fmt"
	"math"
	"strings"
)

const (
	MinValue = 1
	MaxValue = 5

	// MaxStars is the fixed width of a rendered star row.
	MaxStars = 5

	NoRatingsLabel = "No ratings"
)

const (
	FullGlyph  = "★"
	HalfGlyph  = "⯪"
	EmptyGlyph = "☆"
)

// Stars is the glyph breakdown of an average. Full+Half+Empty is always MaxStars.
type Stars struct {
	Full  int
	Half  int
	Empty int
}

func (s Stars) String() string {
	return strings.Repeat(FullGlyph, s.Full) +
		strings.Repeat(HalfGlyph, s.Half) +
		strings.Repeat(EmptyGlyph, s.Empty)
}

type Summary struct {
	Average float64
	Count   int64
	Stars   Stars
	Label   string
}

func ValidValue(v int) bool {
	return v >= MinValue && v <= MaxValue
}

// Average returns the arithmetic mean of values rounded half-up to one
// decimal place. An empty slice averages to 0.
func Average(values []int) float64 {
	var total int64
	for _, v := range values {
		total += int64(v)
	}
	return AverageOf(int64(len(values)), total)
}

// AverageOf computes the same rounding as Average from a precomputed count
// and sum, so stores can aggregate in SQL without losing exactness.
func AverageOf(count, total int64) float64 {
	if count <= 0 {
		return 0
	}
	// round(total/count, 1) == floor((20*total + count) / (2*count)) / 10
	tenths := (20*total + count) / (2 * count)
	return float64(tenths) / 10
}

// Render converts an average into its star breakdown: floor(avg) full stars,
// one half star when the fractional part is at least .5, the rest empty.
func Render(avg float64) Stars {
	if avg <= 0 || math.IsNaN(avg) {
		return Stars{Empty: MaxStars}
	}
	if avg >= MaxStars {
		return Stars{Full: MaxStars}
	}

	full := int(math.Floor(avg))
	half := 0
	// values come from AverageOf so they sit on one-decimal boundaries
	if avg-float64(full) >= 0.5-1e-9 {
		half = 1
	}
	return Stars{Full: full, Half: half, Empty: MaxStars - full - half}
}

func Summarize(count, total int64) Summary {
	avg := AverageOf(count, total)
	s := Summary{
		Average: avg,
		Count:   count,
		Stars:   Render(avg),
	}
	switch count {
	case 0:
		s.Label = NoRatingsLabel
	case 1:
		s.Label = fmt.Sprintf("%.1f (1 rating)", avg)
	default:
		s.Label = fmt.Sprintf("%.1f (%d ratings)", avg, count)
	}
	return s
}
