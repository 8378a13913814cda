package services

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// permanentLiterals are the only values accepted as "permanent storage". The
// flag arrives as a form checkbox ("on"), a stringified boolean or a JSON bool.
var permanentLiterals = map[string]struct{}{
	"true": {},
	"on":   {},
}

// ParsePermanent reports whether v is one of the recognized true literals.
// Anything else, including absence, is false.
func ParsePermanent(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case *bool:
		return t != nil && *t
	case string:
		_, ok := permanentLiterals[t]
		return ok
	case *string:
		return t != nil && ParsePermanent(*t)
	default:
		return false
	}
}

// ParseInteger reads a loosely-typed integer. Strings yield their leading
// integer: whitespace and a sign are allowed in front, a 0x prefix switches to
// hex and anything after the digits is ignored, so "12abc" is 12 and "1e3" is
// 1. Numbers are truncated toward zero. Booleans, NaN, infinities and values
// outside int64 are rejected.
func ParseInteger(v any) (int64, bool) {
	switch t := v.(type) {
	case nil, bool, *bool:
		return 0, false
	case *string:
		if t == nil {
			return 0, false
		}
		return parseLeadingInteger(*t)
	case string:
		return parseLeadingInteger(t)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseLeadingInteger(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	if sign == "+" {
		sign = ""
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, s = 16, s[2:]
	}

	end := strings.IndexFunc(s, func(r rune) bool { return !isDigit(r, base) })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(sign+s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigit(r rune, base int) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case base == 16:
		return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return false
	}
}

// resolvePrice returns the caller-supplied price or fallback when the value is
// absent, unparsable or not positive.
func resolvePrice(field string, v any, fallback int64) int64 {
	n, ok := ParseInteger(v)
	if !ok {
		if v != nil {
			log.WithFields(log.Fields{"field": field, "value": v}).Debug("unparsable price, using default")
		}
		return fallback
	}
	if n <= 0 {
		log.WithFields(log.Fields{"field": field, "value": n, "default": fallback}).Warn("non-positive price, using default")
		return fallback
	}
	return n
}
