// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache keeps the posts, users and follows a session has seen. The
// three maps only grow or overwrite; nothing is ever evicted.
package cache
