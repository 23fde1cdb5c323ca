// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"

	"github.com/apex/log"
)

// Future is the completion of one Send. It resolves after the success
// callback has run, or right after a failure has been logged.
type Future struct {
	Function string

	done chan struct{}
	resp Response
	ok   bool
}

func newFuture(fn string) *Future {
	return &Future{Function: fn, done: make(chan struct{})}
}

func (f *Future) resolve(resp Response, ok bool) {
	f.resp = resp
	f.ok = ok
	close(f.done)
}

// Refused returns a Future for a call that was never sent. It is already
// resolved as failed.
func Refused(fn string) *Future {
	f := newFuture(fn)
	f.resolve(nil, false)
	return f
}

// Done is closed once the call has completed either way.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Ok reports whether the call succeeded. Only meaningful after Done.
func (f *Future) Ok() bool {
	<-f.done
	return f.ok
}

// Response is the raw body of a successful call, nil otherwise.
func (f *Future) Response() Response {
	<-f.done
	return f.resp
}

// Shim is the fire-and-forget front of a Caller.
type Shim struct {
	caller Caller
	loop   *Loop
}

func NewShim(caller Caller, loop *Loop) *Shim {
	return &Shim{caller: caller, loop: loop}
}

// Loop returns the loop callbacks are queued on.
func (s *Shim) Loop() *Loop {
	return s.loop
}

// Send calls fn with payload in the background and returns immediately. On
// success onSuccess runs on the loop with the raw response. On failure the
// error is logged and nothing else happens: no retry, no callback, and no
// error for the caller.
func (s *Shim) Send(ctx context.Context, fn string, payload any, onSuccess func(Response)) *Future {
	f := newFuture(fn)
	s.loop.begin()

	go func() {
		resp, err := s.caller.Call(ctx, fn, payload)
		if err != nil {
			log.WithError(err).WithField("fn", fn).Error("response failed")
			f.resolve(nil, false)
			s.loop.finish(nil)
			return
		}

		log.WithField("fn", fn).Debugf("response: %s", resp)
		s.loop.finish(func() {
			if onSuccess != nil {
				onSuccess(resp)
			}
			f.resolve(resp, true)
		})
	}()

	return f
}
