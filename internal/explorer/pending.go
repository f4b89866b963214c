package explorer

// PendingTracker records which subtopics have a resource fetch in flight.
// Absent keys read as false. Same confinement rules as ResourceCache.
type PendingTracker struct {
	inFlight map[string]bool
}

// NewPendingTracker creates an empty tracker.
func NewPendingTracker() *PendingTracker {
	return &PendingTracker{inFlight: make(map[string]bool)}
}

// SetPending marks or clears the in-flight flag for title.
// Clearing deletes the key.
func (p *PendingTracker) SetPending(title string, pending bool) {
	if pending {
		p.inFlight[title] = true
		return
	}
	delete(p.inFlight, title)
}

// IsPending reports whether a fetch for title is in flight.
func (p *PendingTracker) IsPending(title string) bool {
	return p.inFlight[title]
}

// Clear drops every flag.
func (p *PendingTracker) Clear() {
	p.inFlight = make(map[string]bool)
}

// Len returns the number of fetches in flight.
func (p *PendingTracker) Len() int {
	return len(p.inFlight)
}
