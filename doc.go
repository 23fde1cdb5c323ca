// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// cludder is the main package for the cludder command line client. It wires
// the CLI, delegates to internal packages, and serves as the entry point.
package main
