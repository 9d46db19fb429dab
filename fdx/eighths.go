package fdx

import (
	"strconv"
	"strings"
)

// Scene lengths travel in FDX as "eighths of a page" strings: a bare page
// count ("2"), a fraction ("4/8") or both ("1 2/8"). Internally we keep a
// single integer count of eighths, zero meaning unknown.

// NormalizeLength converts an FDX Length attribute to eighths. Empty,
// malformed or zero-total input yields 0 (unknown) - a real scene cannot
// have zero length.
func NormalizeLength(raw string) int {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0
	}

	whole := 0
	fraction := text
	if before, after, found := strings.Cut(text, " "); found {
		v, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return 0
		}
		whole = v
		fraction = strings.TrimSpace(after)
	}

	if num, den, found := strings.Cut(fraction, "/"); found {
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return 0
		}
		d, err := strconv.Atoi(strings.TrimSpace(den))
		if err != nil || d == 0 {
			return 0
		}
		return whole*8 + (n*8)/d
	}

	// no fraction part - the whole string is a page count
	v, err := strconv.Atoi(fraction)
	if err != nil {
		return 0
	}
	return (whole + v) * 8
}

// FormatLength renders eighths back to the FDX display form.
func FormatLength(eighths int) string {
	if eighths <= 0 {
		return "0"
	}
	whole, rem := eighths/8, eighths%8
	switch {
	case whole == 0:
		return strconv.Itoa(rem) + "/8"
	case rem == 0:
		return strconv.Itoa(whole)
	default:
		return strconv.Itoa(whole) + " " + strconv.Itoa(rem) + "/8"
	}
}
