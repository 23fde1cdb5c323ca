// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cludder/internal/config"
)

func TestMangleArguments(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("internal", "config", "testdata", "nested.yaml"))
	require.NoError(t, err)
	t.Setenv("CLUDDER_CFG", path)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted after command",
			args: []string{"cludder", "posts", "sid-bob"},
			want: []string{"cludder", "posts", "--color", "--titles", "sid-bob"},
		},
		{
			name: "scalar set split into fields",
			args: []string{"cludder", "users"},
			want: []string{"cludder", "users", "--output", "json"},
		},
		{
			name: "no set configured",
			args: []string{"cludder", "follows", "bob"},
			want: []string{"cludder", "follows", "bob"},
		},
		{
			name: "named set replaces defaults",
			args: []string{"cludder", "posts", "@missing", "-o", "json"},
			want: []string{"cludder", "posts", "-o", "json"},
		},
		{
			name: "help keeps preamble only",
			args: []string{"cludder", "posts", "x", "-h"},
			want: []string{"cludder", "posts", "--help"},
		},
		{
			name: "global flag untouched",
			args: []string{"cludder", "--version"},
			want: []string{"cludder", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}

func TestCacheCleanHours(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "unset uses default", body: "host: x\n", want: defaultCacheClean},
		{name: "configured", body: "cache:\n  clean: 6\n", want: 6},
		{name: "zero keeps entries", body: "cache:\n  clean: 0\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cludder.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			t.Setenv("CLUDDER_CFG", path)
			config.Config = config.Type{}
			t.Cleanup(func() { config.Config = config.Type{} })

			assert.Equal(t, tt.want, cacheCleanHours())
		})
	}
}
