package score

import (
	"strconv"
	"strings"
)

// splitLevels parses s as exactly len(suffixes) '/'-separated components,
// each a signed integer literal immediately followed by suffixes[i]. No
// internal whitespace is tolerated; leading/trailing whitespace around the
// whole string is trimmed by the caller.
func splitLevels(s, original string, suffixes []string) ([]int64, error) {
	parts := strings.Split(s, "/")
	if len(parts) != len(suffixes) {
		return nil, parseErr(original, s, "wrong number of score levels")
	}
	out := make([]int64, len(parts))
	for i, part := range parts {
		suffix := suffixes[i]
		if !strings.HasSuffix(part, suffix) {
			return nil, parseErr(original, part, "missing \""+suffix+"\" suffix")
		}
		numeral := strings.TrimSuffix(part, suffix)
		if numeral == "" || strings.ContainsAny(numeral, " \t\n") {
			return nil, parseErr(original, part, "missing integer literal")
		}
		v, err := strconv.ParseInt(numeral, 10, 64)
		if err != nil {
			return nil, parseErr(original, part, "invalid integer literal")
		}
		out[i] = v
	}
	return out, nil
}

// splitDecimalLevels is splitLevels for BigDecimal variants: each component
// is a signed decimal literal (e.g. "-3.5"), returned pre-scaled by
// scaleFactor and rounded half away from zero.
func splitDecimalLevels(s, original string, suffixes []string) ([]int64, error) {
	parts := strings.Split(s, "/")
	if len(parts) != len(suffixes) {
		return nil, parseErr(original, s, "wrong number of score levels")
	}
	out := make([]int64, len(parts))
	for i, part := range parts {
		suffix := suffixes[i]
		if !strings.HasSuffix(part, suffix) {
			return nil, parseErr(original, part, "missing \""+suffix+"\" suffix")
		}
		numeral := strings.TrimSuffix(part, suffix)
		if numeral == "" || strings.ContainsAny(numeral, " \t\n") {
			return nil, parseErr(original, part, "missing decimal literal")
		}
		f, err := strconv.ParseFloat(numeral, 64)
		if err != nil {
			return nil, parseErr(original, part, "invalid decimal literal")
		}
		out[i] = roundHalfAwayFromZero(f * decimalScale)
	}
	return out, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// formatLevel renders an integer level with its suffix, e.g. formatLevel(-3,
// "hard") -> "-3hard".
func formatLevel(v int64, suffix string) string {
	return strconv.FormatInt(v, 10) + suffix
}

// formatDecimalLevel renders a scaled integer level as a decimal literal
// with trailing zeros (and a trailing '.') stripped, e.g. scaled=-150000,
// scale=100000 -> "-1.5hard".
func formatDecimalLevel(scaled int64, suffix string) string {
	neg := scaled < 0
	if neg {
		scaled = -scaled
	}
	whole := scaled / decimalScale
	frac := scaled % decimalScale
	digits := strconv.FormatInt(frac, 10)
	for len(digits) < decimalDigits {
		digits = "0" + digits
	}
	digits = strings.TrimRight(digits, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(whole, 10))
	if digits != "" {
		b.WriteByte('.')
		b.WriteString(digits)
	}
	b.WriteString(suffix)
	return b.String()
}
