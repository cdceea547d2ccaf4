package region

import "fmt"

type ImageEntry struct {
	Path  string `json:"path"`
	Label string `json:"label,omitempty"`
}

// Pair is the two images shown for one combination, in display order.
type Pair [2]ImageEntry

type Catalog map[Region]map[TimePeriod]Pair

// DefaultCatalog is the image table served with the page. Paths are relative
// to the assets directory and match the bundled file names.
var DefaultCatalog = Catalog{
	Northern: {
		Day: {
			{Path: "northern/day mt rainer.png", Label: "Mount Rainier"},
			{Path: "northern/day yellowstone .png", Label: "Yellowstone"},
		},
		Night: {
			{Path: "northern/night mt rainer.jpg", Label: "Mount Rainier"},
			{Path: "northern/night yellostone.png", Label: "Yellowstone"},
		},
	},
	Southern: {
		Day: {
			{Path: "southern/day miami.jpg", Label: "Miami"},
			{Path: "southern/day western .png", Label: "Southwest"},
		},
		Night: {
			{Path: "southern/night miami .png", Label: "Miami"},
			{Path: "southern/night western.jpeg", Label: "Southwest"},
		},
	},
	Eastern: {
		Day: {
			{Path: "eastern/day new york.jpg", Label: "New York"},
			{Path: "eastern/day white house .jpg", Label: "The White House"},
		},
		Night: {
			{Path: "eastern/night nyc.png", Label: "New York"},
			{Path: "eastern/night white house.png", Label: "The White House"},
		},
	},
	Western: {
		Day: {
			{Path: "western/day golden gate.jpg", Label: "Golden Gate Bridge"},
			{Path: "western/day santa monica.jpg", Label: "Santa Monica"},
		},
		Night: {
			{Path: "western/night golden gate.png", Label: "Golden Gate Bridge"},
			{Path: "western/night santa monica.png", Label: "Santa Monica"},
		},
	},
}

// Lookup returns the pair for a combination. It only fails for values that
// did not come from the classifiers or the parse functions.
func (c Catalog) Lookup(r Region, p TimePeriod) (Pair, error) {
	periods, ok := c[r]
	if !ok {
		return Pair{}, fmt.Errorf("catalog has no region %q", r)
	}
	pair, ok := periods[p]
	if !ok {
		return Pair{}, fmt.Errorf("catalog has no period %q for region %q", p, r)
	}
	return pair, nil
}

// Preview is the first image of a combination, used as the browse card
// background.
func (c Catalog) Preview(r Region, p TimePeriod) (ImageEntry, error) {
	pair, err := c.Lookup(r, p)
	if err != nil {
		return ImageEntry{}, err
	}
	return pair[0], nil
}

// Validate checks that every region/period combination has two non-empty
// paths.
func (c Catalog) Validate() error {
	for _, combo := range Combinations() {
		pair, err := c.Lookup(combo.Region, combo.Period)
		if err != nil {
			return err
		}
		for i, img := range pair {
			if img.Path == "" {
				return fmt.Errorf("catalog entry %s image %d has an empty path", combo.Key(), i+1)
			}
		}
	}
	return nil
}

// Size counts image entries.
func (c Catalog) Size() int {
	n := 0
	for _, periods := range c {
		for range periods {
			n += len(Pair{})
		}
	}
	return n
}
