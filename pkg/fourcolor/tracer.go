package fourcolor

// Tracer observes events as the search appends them to its trace. The
// search calls Trace synchronously from its inner loop, so
// implementations should return quickly and must not retain e beyond
// the call if they mutate it.
type Tracer interface {
	Trace(e Event)
}
