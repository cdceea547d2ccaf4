package region

import (
	"fmt"
	"strings"
)

type Region string

const (
	Northern Region = "northern"
	Southern Region = "southern"
	Eastern  Region = "eastern"
	Western  Region = "western"
)

// Regions lists every region in the order cards are laid out.
var Regions = []Region{Northern, Southern, Eastern, Western}

func (r Region) Valid() bool {
	switch r {
	case Northern, Southern, Eastern, Western:
		return true
	}
	return false
}

func (r Region) String() string {
	return string(r)
}

func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown region %q", s)
	}
	return r, nil
}

type TimePeriod string

const (
	Day   TimePeriod = "day"
	Night TimePeriod = "night"
)

var Periods = []TimePeriod{Day, Night}

func (p TimePeriod) Valid() bool {
	return p == Day || p == Night
}

func (p TimePeriod) String() string {
	return string(p)
}

func ParsePeriod(s string) (TimePeriod, error) {
	p := TimePeriod(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown time period %q", s)
	}
	return p, nil
}

// Combination is one region/time cell of the catalog.
type Combination struct {
	Region Region     `json:"region"`
	Period TimePeriod `json:"time"`
}

func (c Combination) Key() string {
	return string(c.Region) + "-" + string(c.Period)
}

// ParseCombination parses the "<region>-<period>" form produced by Key.
func ParseCombination(key string) (Combination, error) {
	regionPart, periodPart, ok := strings.Cut(key, "-")
	if !ok {
		return Combination{}, fmt.Errorf("malformed combination %q", key)
	}
	r, err := ParseRegion(regionPart)
	if err != nil {
		return Combination{}, err
	}
	p, err := ParsePeriod(periodPart)
	if err != nil {
		return Combination{}, err
	}
	return Combination{Region: r, Period: p}, nil
}

// Combinations returns all region/time pairs, regions outermost.
func Combinations() []Combination {
	out := make([]Combination, 0, len(Regions)*len(Periods))
	for _, r := range Regions {
		for _, p := range Periods {
			out = append(out, Combination{Region: r, Period: p})
		}
	}
	return out
}
