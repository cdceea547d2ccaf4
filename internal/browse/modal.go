package browse

import (
	"fmt"

	"regionview/internal/display"
	"regionview/internal/region"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Card is one selectable region/time tile in the modal.
type Card struct {
	region.Combination
	Preview string
	Label   string
}

// Bindings holds the modal's page elements. It is built once at startup
// from the catalog and handed to every Modal.
type Bindings struct {
	catalog region.Catalog
	cards   []Card
}

func NewBindings(catalog region.Catalog) (*Bindings, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	cards := make([]Card, 0, len(region.Regions)*len(region.Periods))
	for _, combo := range region.Combinations() {
		cards = append(cards, Card{Combination: combo})
	}
	return &Bindings{catalog: catalog, cards: cards}, nil
}

// Modal is the browse dialog state for one page.
type Modal struct {
	bindings *Bindings
	state    State
	cards    []Card
}

func NewModal(b *Bindings) *Modal {
	cards := make([]Card, len(b.cards))
	copy(cards, b.cards)
	return &Modal{bindings: b, state: Closed, cards: cards}
}

func (m *Modal) State() State {
	return m.state
}

func (m *Modal) IsOpen() bool {
	return m.state == Open
}

func (m *Modal) Cards() []Card {
	return m.cards
}

// Open shows the modal and fills every card with the first image of its
// combination.
func (m *Modal) Open() {
	for i := range m.cards {
		preview, err := m.bindings.catalog.Preview(m.cards[i].Region, m.cards[i].Period)
		if err != nil {
			// Bindings validated the catalog; a miss here is a programming error.
			panic(err)
		}
		m.cards[i].Preview = preview.Path
		m.cards[i].Label = preview.Label
	}
	m.state = Open
}

func (m *Modal) Close() {
	m.state = Closed
}

// Target is where a click inside the open modal landed.
type Target string

const (
	TargetBackdrop Target = "backdrop"
	TargetContent  Target = "content"
)

// Click closes the modal only when the click landed on the backdrop itself.
func (m *Modal) Click(target Target) {
	if m.state == Open && target == TargetBackdrop {
		m.Close()
	}
}

// Select renders the card's combination without a location and closes the
// modal. Cards can only be selected while the modal is open.
func (m *Modal) Select(combo region.Combination, renderer *display.Renderer, surface display.Surface) (display.State, error) {
	if m.state != Open {
		return display.State{}, fmt.Errorf("cannot select %s while the modal is %s", combo.Key(), m.state)
	}
	if !m.hasCard(combo) {
		return display.State{}, fmt.Errorf("no card for %s", combo.Key())
	}
	if err := renderer.Render(surface, combo.Region, combo.Period, nil); err != nil {
		return display.State{}, err
	}
	m.Close()
	return display.State{
		Region: combo.Region,
		Period: combo.Period,
		Source: display.SourceManual,
	}, nil
}

func (m *Modal) hasCard(combo region.Combination) bool {
	for _, c := range m.cards {
		if c.Combination == combo {
			return true
		}
	}
	return false
}
