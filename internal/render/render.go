// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package render turns cached entities into HTML fragments.
package render

import (
	"html"
	"slices"
	"sort"

	"github.com/staranto/cludder/internal/cache"
	"github.com/staranto/cludder/internal/model"
)

// List is the post list a full render replaces.
type List interface {
	Clear()
	Append(fragment string)
}

// Post renders one post, tagged with its cache key as the element id.
func Post(key string, p model.Post) string {
	return `<div class="meow" id="` + html.EscapeString(key) + `">` +
		`<div class="user">` + html.EscapeString(p.Nick) + `</div>` +
		`<div class="message">` + html.EscapeString(p.Message) + `</div>` +
		`</div>`
}

func User(u model.User) string {
	return `<div class="user">` + html.EscapeString(u.Nick) + `</div>`
}

func Follow(f model.Follow) string {
	return `<div class="follow" id="` + html.EscapeString(f.Key) + `">` + html.EscapeString(f.Whom) + `</div>`
}

// SortedKeys returns the post keys newest first. Keys are stamp-prefixed, so
// a descending string sort stands in for recency.
func SortedKeys(c *cache.Cache) []string {
	keys := c.PostKeys()
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// AllPosts replaces the list with every cached post, newest first.
func AllPosts(c *cache.Cache, list List) {
	keys := SortedKeys(c)
	list.Clear()
	for _, k := range keys {
		p, _ := c.Post(k)
		list.Append(Post(k, p))
	}
}

// Users renders every cached user ordered by nick.
func Users(c *cache.Cache) []string {
	var nicks []string
	for nick := range c.Users() {
		nicks = append(nicks, nick)
	}
	slices.Sort(nicks)

	out := make([]string, 0, len(nicks))
	for _, nick := range nicks {
		u, _ := c.User(nick)
		out = append(out, User(u))
	}
	return out
}

// Follows renders every cached follow ordered by target.
func Follows(c *cache.Cache) []string {
	var whoms []string
	for whom := range c.Follows() {
		whoms = append(whoms, whom)
	}
	slices.Sort(whoms)

	out := make([]string, 0, len(whoms))
	for _, whom := range whoms {
		f, _ := c.Follow(whom)
		out = append(out, Follow(f))
	}
	return out
}
