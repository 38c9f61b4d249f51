package router

import "strings"

const (
	// FragmentLibrary is the route key for the collection list view.
	FragmentLibrary = "#library"
	// RouteBook is the route key for the parametrized book detail view.
	// Fragments of the form "#book-<id>" resolve to it with the trailing
	// identifier as the handler argument.
	RouteBook = "#book"

	bookFragmentPrefix = RouteBook + "-"
)

// BookFragment builds the detail fragment for a book identifier.
func BookFragment(id string) string {
	return bookFragmentPrefix + id
}

// Handler receives the parametrized remainder of the fragment; exact-match
// routes are invoked with an empty argument.
type Handler func(arg string)

// Router resolves location fragments to handlers. It is driven from a
// single goroutine, mirroring the event-loop model it was designed for.
type Router struct {
	routes   map[string]Handler
	location Location
}

// New returns a Router bound to the given location. Fragment changes on the
// location re-invoke the matching handler.
func New(location Location) *Router {
	r := &Router{
		routes:   make(map[string]Handler),
		location: location,
	}
	if location != nil {
		location.Subscribe(r.HandleRoute)
	}
	return r
}

// AddRoute registers a handler for an exact route key ("#library") or a
// parametrized key (RouteBook).
func (r *Router) AddRoute(key string, handler Handler) {
	r.routes[key] = handler
}

// HandleRoute resolves a fragment and invokes its handler. Unknown and
// empty fragments fall back to the library handler.
func (r *Router) HandleRoute(fragment string) {
	if strings.HasPrefix(fragment, bookFragmentPrefix) {
		if handler := r.routes[RouteBook]; handler != nil {
			handler(strings.TrimPrefix(fragment, bookFragmentPrefix))
			return
		}
	}
	handler := r.routes[fragment]
	if handler == nil {
		handler = r.routes[FragmentLibrary]
	}
	if handler != nil {
		handler("")
	}
}

// Navigate mutates the location fragment; handler invocation follows from
// the location's change notification.
func (r *Router) Navigate(fragment string) {
	if r.location == nil {
		r.HandleRoute(fragment)
		return
	}
	r.location.SetFragment(fragment)
}

// Back rewinds the location history by one entry when possible.
func (r *Router) Back() {
	if r.location == nil {
		return
	}
	r.location.Back()
}

// Current returns the location's current fragment.
func (r *Router) Current() string {
	if r.location == nil {
		return ""
	}
	return r.location.Fragment()
}
