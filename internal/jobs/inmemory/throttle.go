package inmemory

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

// userThrottle counts task executions per user inside a rolling one-minute
// window. State lives only in memory; after a restart every user simply
// starts a fresh window.
type userThrottle struct {
	mu        sync.Mutex
	perMinute int
	users     map[uuid.UUID]*userWindow
}

type userWindow struct {
	windowStart time.Time
	count       int
}

func newUserThrottle(perMinute int) *userThrottle {
	return &userThrottle{
		perMinute: perMinute,
		users:     make(map[uuid.UUID]*userWindow),
	}
}

// allow records one execution for the user and reports whether it fits in
// the current window.
func (t *userThrottle) allow(userID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	w, ok := t.users[userID]
	if !ok || now.Sub(w.windowStart) >= time.Minute {
		t.users[userID] = &userWindow{windowStart: now, count: 1}
		return true
	}

	if w.count >= t.perMinute {
		return false
	}
	w.count++
	return true
}

// retryAfter is how long a throttled task waits before re-entering the queue.
func (t *userThrottle) retryAfter() time.Duration {
	return 5 * time.Second
}
