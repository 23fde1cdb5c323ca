// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package page

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_List(t *testing.T) {
	d := New()
	d.Append("b")
	d.Append("c")
	d.Prepend("a")
	assert.Equal(t, []string{"a", "b", "c"}, d.Fragments())

	got := d.Fragments()
	got[0] = "mutated"
	assert.Equal(t, "a", d.Fragments()[0])

	d.Clear()
	assert.Empty(t, d.Fragments())
}

func TestDocument_HTML(t *testing.T) {
	d := New()
	d.SetNick("<alice>")
	d.SetInput(`say "hi"`)
	d.Append(`<div class="meow" id="1000alice"></div>`)

	out := d.HTML()
	assert.Contains(t, out, `<div id="nick">&lt;alice&gt;</div>`)
	assert.Contains(t, out, `value="say &#34;hi&#34;"`)
	assert.Contains(t, out, "<div id=\"meows\">\n<div class=\"meow\" id=\"1000alice\"></div>\n</div>")
	assert.Equal(t, "<alice>", d.Nick())
	assert.Equal(t, `say "hi"`, d.Input())
}

func TestDocument_WriteTo(t *testing.T) {
	d := New()
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, d.HTML(), buf.String())
}
