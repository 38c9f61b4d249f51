package router

// Location owns the current fragment, the routing signal of the
// application. Implementations notify the subscriber on every change,
// including changes replayed from history.
type Location interface {
	Fragment() string
	SetFragment(fragment string)
	Back()
	Subscribe(onChange func(fragment string))
}

// MemoryLocation is an in-process Location with a bounded history stack so
// back-navigation behaves like a browser's.
type MemoryLocation struct {
	fragment string
	history  []string
	onChange func(fragment string)
}

// NewMemoryLocation returns a MemoryLocation starting at the given
// fragment. No change notification fires for the initial value; callers
// dispatch the first route explicitly, matching first-load semantics.
func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{fragment: initial}
}

// Fragment returns the current fragment.
func (l *MemoryLocation) Fragment() string {
	return l.fragment
}

// SetFragment records the new fragment, pushes the previous one onto the
// history stack, and notifies the subscriber. Setting the current fragment
// again still notifies, so a re-navigation re-renders the active view.
func (l *MemoryLocation) SetFragment(fragment string) {
	if fragment != l.fragment {
		l.history = append(l.history, l.fragment)
		if len(l.history) > maxHistory {
			l.history = l.history[1:]
		}
	}
	l.fragment = fragment
	l.notify()
}

// Back pops the most recent history entry into the current fragment and
// notifies the subscriber. With no history it is a no-op.
func (l *MemoryLocation) Back() {
	if len(l.history) == 0 {
		return
	}
	l.fragment = l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]
	l.notify()
}

// Subscribe registers the change callback. Only one subscriber is
// supported; the router is the sole consumer.
func (l *MemoryLocation) Subscribe(onChange func(fragment string)) {
	l.onChange = onChange
}

func (l *MemoryLocation) notify() {
	if l.onChange != nil {
		l.onChange(l.fragment)
	}
}

const maxHistory = 64
