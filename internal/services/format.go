package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

// Format renders a KPI value. Numbers are scaled to B/M/K above a thousand,
// shown with four decimals below one and comma-grouped with two decimals
// otherwise. Booleans count as 1 and 0. nil, NaN and infinities render as
// "NA". Anything else that is not a number is returned as its display text.
func Format(v any) string {
	if v == nil {
		return "NA"
	}
	f, ok := formatFloat(v)
	if !ok {
		return fmt.Sprint(v)
	}

	abs := math.Abs(f)
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return "NA"
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", f/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", f/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", f/1e3)
	case abs < 1:
		return fmt.Sprintf("%.4f", f)
	default:
		return humanize.FormatFloat("#,###.##", f)
	}
}

func formatFloat(v any) (float64, bool) {
	switch x := models.NormalizeValue(v).(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return models.ToFloat(x)
	}
}
