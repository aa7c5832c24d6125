package layout

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how a natural-size picture is fitted into a target box.
type Mode string

const (
	None     Mode = "none"
	Uniform  Mode = "uniform"
	Fill     Mode = "fill"
	ExactFit Mode = "exactfit"
)

// ParseMode accepts a case-insensitive mode name. Empty means Uniform.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return Uniform, nil
	case None, Uniform, Fill, ExactFit:
		return m, nil
	default:
		return "", fmt.Errorf("unknown stretch mode %q", s)
	}
}

// Box is the rendered picture size and its offset inside the target.
type Box struct {
	Width, Height int
	X, Y          int
}

// Stretch fits a naturalW x naturalH picture into width x height. It reports
// false when the natural size is unknown, in which case the box covers the
// whole target.
func Stretch(mode Mode, width, height, naturalW, naturalH int) (Box, bool) {
	full := Box{Width: width, Height: height}
	if width <= 0 || height <= 0 || naturalW <= 0 || naturalH <= 0 {
		return full, false
	}

	xs := float64(width) / float64(naturalW)
	ys := float64(height) / float64(naturalH)

	var sx, sy float64
	switch mode {
	case None:
		sx, sy = 1, 1
	case Fill:
		sx = math.Max(xs, ys)
		sy = sx
	case ExactFit:
		return full, true
	default:
		sx = math.Min(xs, ys)
		sy = sx
	}

	w := int(math.Round(float64(naturalW) * sx))
	h := int(math.Round(float64(naturalH) * sy))
	return Box{Width: w, Height: h, X: (width - w) / 2, Y: (height - h) / 2}, true
}
