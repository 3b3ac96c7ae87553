package questiongen

import (
	"sync"

	"github.com/abhisek/az104/internal/quiz"
)

// History remembers the most recently asked question texts so the next
// batch can be told to avoid them. It is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	max   int
	texts []string
}

// NewHistory returns a History holding at most max texts.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add records the texts of qs, evicting the oldest beyond the limit.
func (h *History) Add(qs []quiz.Question) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, q := range qs {
		h.texts = append(h.texts, q.Text)
	}
	if h.max > 0 && len(h.texts) > h.max {
		h.texts = append([]string(nil), h.texts[len(h.texts)-h.max:]...)
	}
}

// Recent returns a copy of the remembered texts, oldest first.
func (h *History) Recent() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.texts...)
}
