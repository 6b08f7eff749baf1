package water

// DefaultWindowSize matches the dashboard's 24h view of two-hourly samples.
const DefaultWindowSize = 10

// Window is a fixed-capacity sliding window of readings, oldest first.
// It is not safe for concurrent use; stores guard it.
type Window struct {
	points   []Reading
	capacity int
}

// NewWindow creates a window holding at most capacity readings.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Window{
		points:   make([]Reading, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a reading, evicting the oldest one when the window is full.
func (w *Window) Push(r Reading) {
	if len(w.points) >= w.capacity {
		copy(w.points, w.points[1:])
		w.points[len(w.points)-1] = r
		return
	}
	w.points = append(w.points, r)
}

// Latest returns the newest reading.
func (w *Window) Latest() (Reading, bool) {
	if len(w.points) == 0 {
		return Reading{}, false
	}
	return w.points[len(w.points)-1], true
}

// Snapshot returns a copy of the window contents, oldest first.
func (w *Window) Snapshot() []Reading {
	out := make([]Reading, len(w.points))
	copy(out, w.points)
	return out
}

// Len reports how many readings are held.
func (w *Window) Len() int { return len(w.points) }

// Cap reports the window capacity.
func (w *Window) Cap() int { return w.capacity }
