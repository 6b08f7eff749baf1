package monitor

import (
	"sync"

	"github.com/yanqian/salinity-watch/internal/domain/water"
)

const subscriberBuffer = 16

// hub fans ingested readings out to live subscribers. Slow subscribers miss
// readings rather than block ingestion.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan water.Reading
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan water.Reading)}
}

func (h *hub) subscribe() (<-chan water.Reading, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan water.Reading, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

// publish reports how many subscribers were skipped.
func (h *hub) publish(r water.Reading) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	dropped := 0
	for _, ch := range h.subs {
		select {
		case ch <- r:
		default:
			dropped++
		}
	}
	return dropped
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
