// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const followDoc = "# cludder follow\n\n" +
	"Short description\n\nFollow another user.\n\n" +
	"Quick examples\n\n```\n# Follow bob\ncludder follow bob\n\n# Follow someone, listing as JSON\ncludder follow   <nick> -o json\n```\n"

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(followDoc)
	assert.Equal(t, "cludder follow", title)
	assert.Equal(t, "Follow another user.", short)

	title, short = extractTitleAndShortDesc("# only a title\n")
	assert.Equal(t, "only a title", title)
	assert.Equal(t, "only a title.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	got := extractQuickExamples(followDoc)
	assert.Equal(t, []example{
		{Desc: "Follow bob", Cmd: "cludder follow bob"},
		{Desc: "Follow someone, listing as JSON", Cmd: "cludder follow   <nick> -o json"},
	}, got)

	assert.Nil(t, extractQuickExamples("# no examples\n"))
}

func TestBuildTLDR(t *testing.T) {
	_, tldr := renderPages("follow", []byte(followDoc))
	want := "# cludder-follow\n\n" +
		"> Follow another user.\n" +
		"> More information: https://github.com/staranto/cludder.\n\n" +
		"- Follow bob:\n\n`cludder follow bob`\n\n" +
		"- Follow someone, listing as JSON:\n\n`cludder follow {{nick}} -o json`\n"
	assert.Equal(t, want, string(tldr))
}

func TestBuildTLDR_NoExamples(t *testing.T) {
	got := buildTLDR("users", "", "", nil)
	assert.Contains(t, got, "> cludder users\n")
	assert.Contains(t, got, "`cludder users --help`")
}

func TestRenderPages_Man(t *testing.T) {
	man, _ := renderPages("follow", []byte(followDoc))
	assert.Contains(t, string(man), "Follow another user.")
}
