package draft

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fitness-intake-backend/internal/models"
)

// Flusher re-saves dirty drafts on a fixed interval as a safety net behind
// the save-on-mutation path.
type Flusher struct {
	store    *Store
	interval time.Duration

	mu      sync.Mutex
	pending map[string]pendingSave
}

type pendingSave struct {
	draft models.AnswerDraft
	steps []int
}

func NewFlusher(store *Store, interval time.Duration) *Flusher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Flusher{
		store:    store,
		interval: interval,
		pending:  make(map[string]pendingSave),
	}
}

// Mark queues a draft for the next flush. A later Mark for the same client
// replaces the queued entry.
func (f *Flusher) Mark(clientID string, draft models.AnswerDraft, completedSteps []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[clientID] = pendingSave{draft: draft, steps: completedSteps}
}

// Forget drops any queued entry for the client. Callers must invoke it when
// the draft is cleared, or a later flush would write the stale copy back.
func (f *Flusher) Forget(clientID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, clientID)
}

// Run flushes on each tick until the context is cancelled. Errors are logged,
// never fatal; the next save-on-mutation covers the same data.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.Flush()
			return
		case <-ticker.C:
			f.Flush()
		}
	}
}

// Flush writes all pending drafts immediately.
func (f *Flusher) Flush() {
	f.mu.Lock()
	batch := f.pending
	f.pending = make(map[string]pendingSave)
	f.mu.Unlock()

	for clientID, p := range batch {
		if err := f.store.Save(clientID, p.draft, p.steps); err != nil {
			logrus.WithError(err).WithField("client_id", clientID).Warn("periodic draft flush failed")
		}
	}
}
