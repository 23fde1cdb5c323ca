// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaller answers from a table and can hold calls until released.
type fakeCaller struct {
	mu      sync.Mutex
	replies map[string]string
	fail    map[string]bool
	gate    chan struct{}
	calls   []string
}

func (f *fakeCaller) Call(ctx context.Context, fn string, payload any) (Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fn)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[fn] {
		return nil, ErrTransport
	}
	return Response(f.replies[fn]), nil
}

func TestLoop_DrainIdle(t *testing.T) {
	l := NewLoop()
	assert.NoError(t, l.Drain(context.Background()))
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_PostRunsInOrder(t *testing.T) {
	l := NewLoop()
	var got []int
	for i := range 5 {
		l.Post(func() { got = append(got, i) })
	}
	assert.Equal(t, 5, l.Pending())

	require.NoError(t, l.Drain(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, l.Pending())
}

func TestShim_SendSuccess(t *testing.T) {
	caller := &fakeCaller{replies: map[string]string{"getHandle": "alice"}}
	s := NewShim(caller, NewLoop())

	var got string
	f := s.Send(context.Background(), "getHandle", "abc", func(r Response) {
		got = r.Text()
	})

	require.NoError(t, s.Loop().Drain(context.Background()))
	assert.Equal(t, "alice", got)
	assert.True(t, f.Ok())
	assert.Equal(t, "alice", f.Response().String())
	assert.Equal(t, "getHandle", f.Function)
}

func TestShim_SendFailureRunsNoCallback(t *testing.T) {
	caller := &fakeCaller{fail: map[string]bool{"post": true}}
	s := NewShim(caller, NewLoop())

	called := false
	f := s.Send(context.Background(), "post", "x", func(Response) { called = true })

	require.NoError(t, s.Loop().Drain(context.Background()))
	assert.False(t, called)
	assert.False(t, f.Ok())
	assert.Nil(t, f.Response())
}

func TestRefused(t *testing.T) {
	f := Refused("post")

	select {
	case <-f.Done():
	default:
		t.Fatal("refused future not resolved")
	}
	assert.Equal(t, "post", f.Function)
	assert.False(t, f.Ok())
	assert.Nil(t, f.Response())
}

func TestShim_CallbacksChainAndSerialize(t *testing.T) {
	caller := &fakeCaller{replies: map[string]string{
		"appProperty": "abc",
		"getHandle":   "alice",
	}}
	s := NewShim(caller, NewLoop())
	ctx := context.Background()

	var (
		active  int
		overlap bool
		order   []string
	)
	enter := func(name string) {
		active++
		if active > 1 {
			overlap = true
		}
		order = append(order, name)
		time.Sleep(time.Millisecond)
		active--
	}

	s.Send(ctx, "appProperty", "App_Agent_Hash", func(r Response) {
		enter("appProperty")
		for range 3 {
			s.Send(ctx, "getHandle", r.Text(), func(Response) { enter("getHandle") })
		}
	})

	require.NoError(t, s.Loop().Drain(ctx))
	assert.False(t, overlap)
	assert.Equal(t, []string{"appProperty", "getHandle", "getHandle", "getHandle"}, order)
	assert.Equal(t, 0, s.Loop().Pending())
}

func TestShim_DrainHonorsContext(t *testing.T) {
	caller := &fakeCaller{gate: make(chan struct{})}
	s := NewShim(caller, NewLoop())

	callCtx, cancelCalls := context.WithCancel(context.Background())
	defer cancelCalls()
	f := s.Send(callCtx, "getPostsBy", "abc", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Loop().Drain(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	// Cancelling the call's context turns it into a logged failure.
	cancelCalls()
	require.NoError(t, s.Loop().Drain(context.Background()))
	assert.False(t, f.Ok())
}
