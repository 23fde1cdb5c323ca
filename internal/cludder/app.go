// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cludder

import (
	"context"
	"time"

	"github.com/staranto/cludder/internal/cache"
	"github.com/staranto/cludder/internal/page"
	"github.com/staranto/cludder/internal/transport"
)

// Remote function names.
const (
	FnAppProperty = "appProperty"
	FnGetHandle   = "getHandle"
	FnPost        = "post"
	FnFollow      = "follow"
	FnGetPostsBy  = "getPostsBy"
	FnGet         = "get"
)

// DefaultProperty is the app property holding the agent's session id.
const DefaultProperty = "App_Agent_Hash"

// App owns the session state for one page lifetime.
type App struct {
	shim  *transport.Shim
	cache *cache.Cache
	page  *page.Document

	property string
	now      func() time.Time

	session string
	nick    string
}

type Option func(*App)

// WithProperty changes the app property resolved into the session id.
func WithProperty(name string) Option {
	return func(a *App) {
		if name != "" {
			a.property = name
		}
	}
}

// WithClock replaces time.Now for post stamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func NewApp(shim *transport.Shim, opts ...Option) *App {
	a := &App{
		shim:     shim,
		cache:    cache.New(),
		page:     page.New(),
		property: DefaultProperty,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Cache() *cache.Cache { return a.cache }
func (a *App) Page() *page.Document { return a.page }

// Nick is the signed-in user's handle, empty until LoadProfile completes.
func (a *App) Nick() string { return a.nick }

// Session is the id the handle was resolved from.
func (a *App) Session() string { return a.session }

// Wait runs completion callbacks until every call, including the ones the
// callbacks start, has finished.
func (a *App) Wait(ctx context.Context) error {
	return a.shim.Loop().Drain(ctx)
}
