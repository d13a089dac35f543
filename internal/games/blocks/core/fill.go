package core

import "strings"

// Fill is the marker stored in an occupied cell. It only carries a color
// identity; FillNone means the cell is empty.
type Fill uint8

const (
	FillNone Fill = iota
	FillRed
	FillOrange
	FillYellow
	FillGreen
	FillCyan
	FillBlue
	FillPurple
	fillCount // Sentinel value for iteration
)

// DefaultFill is substituted for unrecognized color names.
const DefaultFill = FillBlue

var fillNames = [fillCount]string{
	FillNone:   "none",
	FillRed:    "red",
	FillOrange: "orange",
	FillYellow: "yellow",
	FillGreen:  "green",
	FillCyan:   "cyan",
	FillBlue:   "blue",
	FillPurple: "purple",
}

// String returns the stable serialized name of the fill.
func (f Fill) String() string {
	if f >= fillCount {
		return "unknown"
	}
	return fillNames[f]
}

// Char returns a single character for ASCII dumps.
func (f Fill) Char() rune {
	switch f {
	case FillNone:
		return '.'
	case FillRed:
		return 'R'
	case FillOrange:
		return 'O'
	case FillYellow:
		return 'Y'
	case FillGreen:
		return 'G'
	case FillCyan:
		return 'C'
	case FillBlue:
		return 'B'
	case FillPurple:
		return 'P'
	default:
		return '?'
	}
}

// Valid reports whether f belongs to the closed vocabulary.
func (f Fill) Valid() bool {
	return f < fillCount
}

// ParseFill converts a color name to a Fill.
// Returns DefaultFill and false if the name is not recognized.
func ParseFill(s string) (Fill, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fillNames {
		if n == name {
			return Fill(f), true
		}
	}
	return DefaultFill, false
}

// AllFills returns every non-empty fill.
func AllFills() []Fill {
	return []Fill{FillRed, FillOrange, FillYellow, FillGreen, FillCyan, FillBlue, FillPurple}
}
