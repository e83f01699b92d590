package watch

// Responder runs the escalation for one affected path.
type Responder interface {
	Respond(path string, kind Kind)
}

// Router is the single consumer of the detection event stream. It
// filters access-only noise and spawns one independent response task per
// affected path. There is deliberately no coalescing, debounce or
// deduplication: a burst of N qualifying events covering the same path
// yields N independent response invocations.
type Router struct {
	events    <-chan Event
	responder Responder
}

// NewRouter binds an event stream to a responder.
func NewRouter(events <-chan Event, r Responder) *Router {
	return &Router{events: events, responder: r}
}

// Run blocks consuming events until the stream closes. Response work is
// offloaded to its own goroutine per path; the receive loop itself never
// blocks on response work.
func (r *Router) Run() {
	for ev := range r.events {
		if ev.Kind == KindAccess {
			continue
		}
		for _, path := range ev.Paths {
			go r.responder.Respond(path, ev.Kind)
		}
	}
}
