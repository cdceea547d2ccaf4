package display

// Slot numbers the two image positions on the page.
type Slot int

const (
	First Slot = iota
	Second
)

// Surface is the set of page elements the renderer writes into.
type Surface interface {
	SetImage(slot Slot, path string)
	SetLabel(slot Slot, label string)
	SetIndicator(text string)
	SetSubtitle(text string)
}

// Committer is implemented by surfaces that track completed renders. The
// renderer calls Commit once after all fields of a render are written.
type Committer interface {
	Commit()
}

// Recorder is an in-memory Surface. The page view model embeds it and tests
// inspect it directly.
type Recorder struct {
	Images    [2]string `json:"images"`
	Labels    [2]string `json:"labels"`
	Indicator string    `json:"indicator"`
	Subtitle  string    `json:"subtitle"`
	Renders   int       `json:"-"`
}

func (r *Recorder) SetImage(slot Slot, path string) {
	r.Images[slot] = path
}

func (r *Recorder) SetLabel(slot Slot, label string) {
	r.Labels[slot] = label
}

func (r *Recorder) SetIndicator(text string) {
	r.Indicator = text
}

func (r *Recorder) SetSubtitle(text string) {
	r.Subtitle = text
}

func (r *Recorder) Commit() {
	r.Renders++
}
