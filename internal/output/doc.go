// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output turns the state left behind by an action into what the
// command prints: the page document, or a filtered dataset rendered as a
// table, JSON or YAML.
package output
