package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// MaxPlaceNameRunes bounds how much of an upstream place name is displayed.
const MaxPlaceNameRunes = 80

var (
	reValidTZ    = regexp.MustCompile(`^[A-Za-z0-9_\-+/]+$`)
	reMultiSlash = regexp.MustCompile(`/+`)
)

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func truncateRunes(limit int) Strategy {
	return func(s string) string {
		runes := []rune(s)
		if len(runes) <= limit {
			return s
		}
		return strings.TrimSpace(string(runes[:limit]))
	}
}

// NormalizePlaceName cleans a city, region or country name reported by the
// geolocation service.
func NormalizePlaceName(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
		truncateRunes(MaxPlaceNameRunes),
	}
	return p.Apply(input)
}

// NormalizeTimezone returns a cleaned IANA identifier, or "" when the input
// cannot be one.
func NormalizeTimezone(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	s = reMultiSlash.ReplaceAllString(s, "/")
	s = strings.Trim(s, "/")
	if !reValidTZ.MatchString(s) {
		return ""
	}
	return s
}
