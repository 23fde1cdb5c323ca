// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cludder/internal/cache"
	"github.com/staranto/cludder/internal/config"
	"github.com/staranto/cludder/internal/model"
	"github.com/staranto/cludder/internal/page"
	"github.com/staranto/cludder/internal/render"
)

var now = time.UnixMilli(3_600_000)

func fixture() (*cache.Cache, *page.Document) {
	c := cache.New()
	c.CachePost(model.Post{Message: "one", Stamp: 1000, Key: "k1", Nick: "alice"}, "alice")
	c.CachePost(model.Post{Message: "two", Stamp: 2000, Key: "k2", Nick: "bob"}, "bob")
	c.CacheUser(model.User{Nick: "carol"})
	c.CacheUser(model.User{Nick: "bob"})
	c.CacheFollow(model.Follow{Whom: "bob", Key: "f1"})

	d := page.New()
	d.SetNick("alice")
	render.AllPosts(c, d)
	return c, d
}

func TestBuildDataset(t *testing.T) {
	c, _ := fixture()

	posts, err := BuildDataset(c, KindPosts, now)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "2000bob", posts[0]["key"])
	assert.Equal(t, "k2", posts[0]["id"])
	assert.Equal(t, int64(2000), posts[0]["stamp"])
	assert.Equal(t, "59 minutes ago", posts[0]["age"])

	users, err := BuildDataset(c, KindUsers, now)
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{{"nick": "bob"}, {"nick": "carol"}}, users)

	follows, err := BuildDataset(c, KindFollows, now)
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{{"whom": "bob", "key": "f1"}}, follows)

	_, err = BuildDataset(c, Kind("nope"), now)
	assert.Error(t, err)
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{name: "empty", spec: "", want: nil},
		{
			name: "equals",
			spec: "nick=bob",
			want: []Filter{{Key: "nick", Operand: "=", Target: "bob"}},
		},
		{
			name: "negated",
			spec: "nick!=bob",
			want: []Filter{{Key: "nick", Negate: true, Operand: "=", Target: "bob"}},
		},
		{
			name: "several",
			spec: "message~HI,key^2000",
			want: []Filter{
				{Key: "message", Operand: "~", Target: "HI"},
				{Key: "key", Operand: "^", Target: "2000"},
			},
		},
		{
			name: "target keeps operators",
			spec: "message=a=b",
			want: []Filter{{Key: "message", Operand: "=", Target: "a=b"}},
		},
		{name: "malformed skipped", spec: "nick,=x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestBuildFilters_Delimiter(t *testing.T) {
	t.Setenv("CLUDDER_FILTER_DELIM", ";")
	got := BuildFilters("message~a,b;nick=bob")
	require.Len(t, got, 2)
	assert.Equal(t, "a,b", got[0].Target)
}

func TestFilterDataset(t *testing.T) {
	rows := []map[string]interface{}{
		{"key": "2000bob", "nick": "bob", "message": "Hello there", "stamp": int64(2000)},
		{"key": "1000alice", "nick": "alice", "message": "bye", "stamp": int64(1000)},
	}
	columns := Columns(KindPosts)

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "no filter", spec: "", want: []string{"2000bob", "1000alice"}},
		{name: "equals", spec: "nick=alice", want: []string{"1000alice"}},
		{name: "not equals", spec: "nick!=alice", want: []string{"2000bob"}},
		{name: "substring ignores case", spec: "message~hello", want: []string{"2000bob"}},
		{name: "prefix", spec: "key^1000", want: []string{"1000alice"}},
		{name: "numeric value", spec: "stamp=2000", want: []string{"2000bob"}},
		{name: "regex", spec: "message/^b.e$", want: []string{"1000alice"}},
		{name: "all must match", spec: "nick=bob,message~bye", want: nil},
		{name: "unknown key ignored", spec: "bogus=1", want: []string{"2000bob", "1000alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range FilterDataset(rows, columns, tt.spec) {
				got = append(got, r["key"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSliceDiceSpit_HTML(t *testing.T) {
	c, d := fixture()

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit(&buf, d, c, KindPosts, Options{Format: "html"}))
	assert.Equal(t, d.HTML(), buf.String())

	buf.Reset()
	require.NoError(t, SliceDiceSpit(&buf, d, c, KindUsers, Options{Format: "html"}))
	assert.Equal(t, "<div class=\"user\">bob</div>\n<div class=\"user\">carol</div>\n", buf.String())
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	c, d := fixture()

	var buf bytes.Buffer
	err := SliceDiceSpit(&buf, d, c, KindPosts, Options{Format: "json", Filter: "nick=alice", Now: now})
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1000alice", got[0]["key"])
	assert.Equal(t, "one", got[0]["message"])
}

func TestSliceDiceSpit_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit(&buf, page.New(), cache.New(), KindFollows, Options{Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	c, d := fixture()

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit(&buf, d, c, KindFollows, Options{Format: "yaml"}))

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]string{{"whom": "bob", "key": "f1"}}, got)
}

func TestSliceDiceSpit_Text(t *testing.T) {
	c, d := fixture()

	var buf bytes.Buffer
	err := SliceDiceSpit(&buf, d, c, KindPosts, Options{Format: "text", Titles: true, Color: true, Now: now})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "MESSAGE")
	assert.Contains(t, lines[1], "2000bob")
	assert.Contains(t, lines[2], "alice")
	// A buffer is not a terminal, so no escapes even with color on.
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestSliceDiceSpit_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit(&buf, page.New(), cache.New(), KindUsers, Options{Format: "text"}))
	assert.Empty(t, buf.String())
}

func TestSliceDiceSpit_UnknownFormat(t *testing.T) {
	err := SliceDiceSpit(&bytes.Buffer{}, page.New(), cache.New(), KindUsers, Options{Format: "xml"})
	assert.Error(t, err)
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(1700000000000), want: "1700000000000"},
		{name: "float64", value: 42.5, want: "42"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "zero value with custom empty", value: 0, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetColors(t *testing.T) {
	t.Setenv("CLUDDER_CFG", "/nonexistent/cludder.yaml")
	config.Config = config.Type{}
	header, even, odd := getColors("colors")
	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func BenchmarkFilterDataset(b *testing.B) {
	rows := []map[string]interface{}{
		{"key": "2000bob", "nick": "bob", "message": "hello"},
		{"key": "1000alice", "nick": "alice", "message": "bye"},
	}
	columns := Columns(KindPosts)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FilterDataset(rows, columns, "nick!=bob,message~b")
	}
}
