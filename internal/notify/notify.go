package notify

import (
	"sync"

	"go.uber.org/zap"
)

const VariantDestructive = "destructive"

// Toast is a user-facing notification. Variant is empty for successes and
// VariantDestructive for errors.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

type Notifier interface {
	Notify(Toast)
}

// Feed is a bounded in-memory toast queue the UI drains over HTTP. Every
// toast is also logged. Oldest entries are dropped once the cap is hit.
type Feed struct {
	log *zap.Logger
	cap int

	mu     sync.Mutex
	toasts []Toast
}

const defaultFeedCap = 50

func NewFeed(log *zap.Logger) *Feed {
	return &Feed{log: log, cap: defaultFeedCap}
}

func (f *Feed) Notify(t Toast) {
	if t.Variant == VariantDestructive {
		f.log.Warn("toast", zap.String("title", t.Title), zap.String("description", t.Description))
	} else {
		f.log.Info("toast", zap.String("title", t.Title), zap.String("description", t.Description))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, t)
	if len(f.toasts) > f.cap {
		f.toasts = f.toasts[len(f.toasts)-f.cap:]
	}
}

// Drain returns all pending toasts and clears the feed.
func (f *Feed) Drain() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.toasts
	f.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}
