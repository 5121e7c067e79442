// Package countdown provides cancellable timers for driving quiz sessions.
package countdown

import (
	"sync"
	"time"
)

// Handle is a scheduled callback that can be cancelled.
type Handle interface {
	// Stop prevents further calls. It reports whether the callback was still
	// live. A callback already running when Stop is called may still complete.
	Stop() bool
}

// Scheduler schedules callbacks.
type Scheduler interface {
	// Every calls fn once per interval until the handle is stopped.
	Every(interval time.Duration, fn func()) Handle
	// After calls fn once after delay unless the handle is stopped first.
	After(delay time.Duration, fn func()) Handle
}

// RealScheduler runs callbacks on wall-clock timers.
type RealScheduler struct{}

func NewRealScheduler() RealScheduler {
	return RealScheduler{}
}

func (RealScheduler) Every(interval time.Duration, fn func()) Handle {
	t := &ticker{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (RealScheduler) After(delay time.Duration, fn func()) Handle {
	return afterHandle{timer: time.AfterFunc(delay, fn)}
}

type ticker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *ticker) run(fn func()) {
	for {
		select {
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		case <-t.done:
			return
		}
	}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}

type afterHandle struct {
	timer *time.Timer
}

func (h afterHandle) Stop() bool {
	return h.timer.Stop()
}
