// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package transport calls the backend's remote functions. Client performs a
// single synchronous POST; Shim wraps it in the fire-and-forget contract the
// action layer uses, where a success runs a callback on the Loop and a
// failure is only logged.
package transport
