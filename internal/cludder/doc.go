// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cludder is the action layer. Each action gathers its input, makes
// a remote call and, once the call succeeds, updates the cache and the page.
//
// Actions return as soon as the call is sent. Completion callbacks run on
// the transport loop when the caller drains it with App.Wait, so the cache,
// the page and the session nickname are only ever touched by one goroutine
// at a time. A failed call is logged by the transport and the action has no
// further effect.
package cludder
