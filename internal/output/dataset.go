// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/staranto/cludder/internal/cache"
	"github.com/staranto/cludder/internal/render"
)

// Kind names the dataset a command emits.
type Kind string

const (
	KindPosts   Kind = "posts"
	KindUsers   Kind = "users"
	KindFollows Kind = "follows"
)

// Column is one attribute of a dataset row. Columns that are not Included
// are still available to JSON, YAML and --filter but are left out of tables.
type Column struct {
	Key     string
	Include bool
}

// Columns returns the attributes of kind in display order.
func Columns(kind Kind) []Column {
	switch kind {
	case KindPosts:
		return []Column{
			{Key: "key", Include: true},
			{Key: "nick", Include: true},
			{Key: "message", Include: true},
			{Key: "age", Include: true},
			{Key: "id"},
			{Key: "stamp"},
		}
	case KindUsers:
		return []Column{{Key: "nick", Include: true}}
	case KindFollows:
		return []Column{
			{Key: "whom", Include: true},
			{Key: "key", Include: true},
		}
	default:
		return nil
	}
}

// BuildDataset flattens the cached entities of kind into rows. Posts come
// newest first, the same order the page shows them; users and follows are
// ordered by name. Ages are relative to now.
func BuildDataset(c *cache.Cache, kind Kind, now time.Time) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}

	switch kind {
	case KindPosts:
		for _, k := range render.SortedKeys(c) {
			p, _ := c.Post(k)
			rows = append(rows, map[string]interface{}{
				"key":     k,
				"id":      p.Key,
				"nick":    p.Nick,
				"message": p.Message,
				"stamp":   p.Stamp,
				"age":     humanize.RelTime(p.Time(), now, "ago", "from now"),
			})
		}
	case KindUsers:
		var nicks []string
		for nick := range c.Users() {
			nicks = append(nicks, nick)
		}
		slices.Sort(nicks)
		for _, nick := range nicks {
			rows = append(rows, map[string]interface{}{"nick": nick})
		}
	case KindFollows:
		var whoms []string
		for whom := range c.Follows() {
			whoms = append(whoms, whom)
		}
		slices.Sort(whoms)
		for _, whom := range whoms {
			f, _ := c.Follow(whom)
			rows = append(rows, map[string]interface{}{"whom": f.Whom, "key": f.Key})
		}
	default:
		return nil, fmt.Errorf("unknown dataset: %q", kind)
	}

	return rows, nil
}
