// Package contract parses and encodes compact option contract keys of
// the form SYMBOL + YYMMDD + C/P + STRIKE, e.g. AAPL240119C00150000.
// Several legacy trailing widths circulate in snapshot feeds, so
// parsing is a ladder of strategies and never fails hard: an
// unparseable key yields a zero strike and an empty date, which
// callers treat as "use defaults".
package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Rights of a contract key.
const (
	RightCall = "call"
	RightPut  = "put"
)

// Key is the decoded form of a contract key. Zero-value fields mean
// the corresponding part could not be recovered.
type Key struct {
	Underlying string
	Expiration string // YYYY-MM-DD, empty when unparseable
	Strike     float64
	Right      string
}

// Parse decodes a raw contract key. It never returns an error; missing
// parts come back as zero values and Strike is always >= 0.
func Parse(raw string) Key {
	k := Key{Strike: ParseStrike(raw)}
	k.Expiration, k.Underlying, k.Right = parseDateParts(raw)
	return k
}

// ParseStrike recovers the decimal strike price from a contract key.
// Canonical keys carry the strike as the last 8 digits in thousandths
// of a dollar; shorter 7- and 6-digit encodings are tried next, then a
// trailing digit run scaled by inferred magnitude. Returns 0 when
// nothing matches.
func ParseStrike(raw string) float64 {
	if len(raw) >= 15 {
		for _, width := range []int{8, 7, 6} {
			part := raw[len(raw)-width:]
			if v, err := strconv.ParseUint(part, 10, 32); err == nil {
				return float64(v) / 1000.0
			}
		}
	}

	run := trailingDigits(raw)
	if run == "" {
		return 0
	}
	v, err := strconv.ParseUint(run, 10, 32)
	if err != nil {
		return 0
	}
	switch {
	case v > 1_000_000:
		return float64(v) / 1000.0
	case v > 10_000:
		return float64(v) / 100.0
	default:
		return float64(v)
	}
}

// ParseExpiration recovers the expiration date as YYYY-MM-DD, or an
// empty string when no plausible YYMMDD sequence is present.
func ParseExpiration(raw string) string {
	date, _, _ := parseDateParts(raw)
	return date
}

// parseDateParts locates the YYMMDD block and derives everything that
// hangs off its position: the formatted date, the underlying prefix,
// and the right marker immediately after the date.
func parseDateParts(raw string) (date, underlying, right string) {
	// Trailing-width layouts observed in the wild. Each pair is
	// (total suffix length, characters after the date block).
	layouts := [][2]int{{15, 9}, {14, 8}, {13, 7}, {12, 6}}
	for _, l := range layouts {
		total, skip := l[0], l[1]
		if len(raw) < total {
			continue
		}
		start := len(raw) - total
		end := len(raw) - skip
		if d, ok := formatDate(raw[start:end]); ok {
			return d, raw[:start], rightAt(raw, end)
		}
	}

	// Last resort: any 6-digit window that validates as a date.
	for i := 0; i+6 <= len(raw); i++ {
		if d, ok := formatDate(raw[i : i+6]); ok {
			return d, raw[:i], rightAt(raw, i+6)
		}
	}
	return "", "", ""
}

// DaysUntil returns the whole days from now until an expiration date
// in YYYY-MM-DD form. The second return is false when the date is
// empty or malformed.
func DaysUntil(expiration string, now time.Time) (float64, bool) {
	if expiration == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", expiration)
	if err != nil {
		return 0, false
	}
	return t.Sub(now).Hours() / 24.0, true
}

// Encode builds a canonical 15-trailing-character contract key:
// YYMMDD date, single right marker, strike in thousandths padded to 8
// digits.
func Encode(symbol string, expiration time.Time, right string, strike float64) string {
	marker := "C"
	if strings.EqualFold(right, RightPut) || strings.EqualFold(right, "P") {
		marker = "P"
	}
	thousandths := int64(strike*1000.0 + 0.5)
	if thousandths < 0 {
		thousandths = 0
	}
	return fmt.Sprintf("%s%s%s%08d", symbol, expiration.Format("060102"), marker, thousandths)
}

func formatDate(part string) (string, bool) {
	if len(part) != 6 {
		return "", false
	}
	for _, c := range part {
		if !unicode.IsDigit(c) {
			return "", false
		}
	}
	yy, _ := strconv.Atoi(part[0:2])
	mm, _ := strconv.Atoi(part[2:4])
	dd, _ := strconv.Atoi(part[4:6])
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", 2000+yy, mm, dd), true
}

func rightAt(raw string, pos int) string {
	if pos >= len(raw) {
		return ""
	}
	switch raw[pos] {
	case 'C', 'c':
		return RightCall
	case 'P', 'p':
		return RightPut
	}
	return ""
}

func trailingDigits(raw string) string {
	end := len(raw)
	start := end
	for start > 0 && raw[start-1] >= '0' && raw[start-1] <= '9' {
		start--
	}
	return raw[start:end]
}
