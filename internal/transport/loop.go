// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"sync"
)

// Loop is the single logical thread completion callbacks run on. Remote
// calls complete on their own goroutines and queue their callbacks here;
// Drain runs them one at a time on the caller's goroutine, so state touched
// only from callbacks needs no locking.
type Loop struct {
	mu       sync.Mutex
	inflight int
	queue    []func()
	wake     chan struct{}
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// begin records a call in flight.
func (l *Loop) begin() {
	l.mu.Lock()
	l.inflight++
	l.mu.Unlock()
}

// finish retires an in-flight call and queues its callback, if any, in one
// step so Drain never observes an idle loop with a callback still to come.
func (l *Loop) finish(cb func()) {
	l.mu.Lock()
	l.inflight--
	if cb != nil {
		l.queue = append(l.queue, cb)
	}
	l.mu.Unlock()
	l.signal()
}

// Post queues a callback without an associated call.
func (l *Loop) Post(cb func()) {
	l.mu.Lock()
	l.queue = append(l.queue, cb)
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending reports calls in flight plus callbacks waiting to run.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight + len(l.queue)
}

// Drain runs queued callbacks until nothing is in flight and the queue is
// empty, or ctx is done. Callbacks may start further calls; those are waited
// for too. Drain must not be called from inside a callback.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			cb := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()
			cb()
			continue
		}
		idle := l.inflight == 0
		l.mu.Unlock()

		if idle {
			return nil
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
