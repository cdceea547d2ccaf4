package browse

import (
	"fmt"
	"net/url"

	"regionview/internal/display"
	"regionview/internal/region"
)

type EventKind string

const (
	EventNone   EventKind = ""
	EventOpen   EventKind = "open"
	EventClose  EventKind = "close"
	EventClick  EventKind = "click"
	EventSelect EventKind = "select"
)

// Event is one user interaction with the modal controls.
type Event struct {
	Kind      EventKind
	Target    Target
	Selection region.Combination
}

// Query parameters carrying modal state and events on the page URL. ParamModal
// is the state the page was in; the others are the interaction on top of it.
const (
	ParamModal  = "modal"
	ParamAction = "action"
	ParamClick  = "click"
	ParamSelect = "select"
)

// ParseState reports whether the page the event came from had the modal open.
func ParseState(q url.Values) State {
	if q.Get(ParamModal) == Open.String() {
		return Open
	}
	return Closed
}

// ParseEvent reads at most one modal event from a page query. Select wins
// over click, click over open/close.
func ParseEvent(q url.Values) (Event, error) {
	if key := q.Get(ParamSelect); key != "" {
		combo, err := region.ParseCombination(key)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventSelect, Selection: combo}, nil
	}

	if target := q.Get(ParamClick); target != "" {
		switch Target(target) {
		case TargetBackdrop, TargetContent:
			return Event{Kind: EventClick, Target: Target(target)}, nil
		default:
			return Event{}, fmt.Errorf("unknown click target %q", target)
		}
	}

	switch q.Get(ParamAction) {
	case "":
		return Event{Kind: EventNone}, nil
	case string(EventOpen):
		return Event{Kind: EventOpen}, nil
	case string(EventClose):
		return Event{Kind: EventClose}, nil
	default:
		return Event{}, fmt.Errorf("unknown modal action %q", q.Get(ParamAction))
	}
}

// Restore puts a fresh modal into the state the page was in.
func (m *Modal) Restore(s State) {
	if s == Open {
		m.Open()
	}
}

// Dispatch applies an event to the modal. It returns the manual display state when the event selected a card.
func (m *Modal) Dispatch(ev Event, renderer *display.Renderer, surface display.Surface) (*display.State, error) {
	switch ev.Kind {
	case EventOpen:
		m.Open()
	case EventClose:
		m.Close()
	case EventClick:
		m.Click(ev.Target)
	case EventSelect:
		state, err := m.Select(ev.Selection, renderer, surface)
		if err != nil {
			return nil, err
		}
		return &state, nil
	}
	return nil, nil
}
