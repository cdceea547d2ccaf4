package region

// Latitude bands of the classifier.
const (
	NorthernLatitude = 42.0
	SouthernLatitude = 35.0
	WesternLongitude = -100.0

	// DefaultEasternThreshold separates eastern from western inside the
	// middle latitude band. Earlier page variants used -95 and -80; -95 is
	// the canonical value.
	DefaultEasternThreshold = -95.0
)

// Classifier maps coordinates to a Region.
type Classifier struct {
	EasternThreshold float64
}

func NewClassifier(easternThreshold float64) Classifier {
	return Classifier{EasternThreshold: easternThreshold}
}

// Classify evaluates the bands in priority order; the first match wins.
// Every pair of real coordinates maps to one of the four regions.
func (c Classifier) Classify(latitude, longitude float64) Region {
	switch {
	case latitude > NorthernLatitude:
		return Northern
	case latitude < SouthernLatitude:
		return Southern
	case longitude < WesternLongitude:
		return Western
	case longitude > c.EasternThreshold:
		return Eastern
	default:
		return Western
	}
}

// Classify uses DefaultEasternThreshold.
func Classify(latitude, longitude float64) Region {
	return Classifier{EasternThreshold: DefaultEasternThreshold}.Classify(latitude, longitude)
}
